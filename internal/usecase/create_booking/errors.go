package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("create_booking: variant not found")

	// ErrInvalidConfiguration возвращается при некорректной настройке услуги или расписания
	ErrInvalidConfiguration = errors.New("create_booking: invalid service configuration")

	// ErrSlotNotAvailable возвращается, когда в слоте не хватает мест
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом ни одного слота расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда начало слота уже наступило
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDiscountExhausted возвращается, когда лимит скидки исчерпан параллельным бронированием
	ErrDiscountExhausted = errors.New("create_booking: discount usage limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
