package quote_discount

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("quote_discount: service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("quote_discount: variant not found")

	// ErrInvalidConfiguration возвращается при некорректной настройке услуги
	ErrInvalidConfiguration = errors.New("quote_discount: invalid service configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_discount: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_discount: internal error")
)
