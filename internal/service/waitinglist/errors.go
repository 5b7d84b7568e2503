package waitinglist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись не найдена
	ErrEntryNotFound = errors.New("waitinglist: entry not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("waitinglist: service not found")

	// ErrWaitingListDisabled возвращается, когда у услуги выключен лист ожидания
	ErrWaitingListDisabled = errors.New("waitinglist: waiting list is disabled for this service")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("waitinglist: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitinglist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitinglist: internal error")
)
