package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или выключена
	ErrServiceNotFound = errors.New("catalog: service not found")

	// ErrVariantNotFound возвращается, когда вариант не найден, выключен или принадлежит другой услуге
	ErrVariantNotFound = errors.New("catalog: variant not found")

	// ErrMalformedService возвращается для записи услуги с некорректной длительностью или вместимостью
	ErrMalformedService = errors.New("catalog: malformed service record")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
