package domain

import "errors"

var (
	// ErrInvalidDurationUnit возвращается для неизвестной единицы длительности
	// Запись услуги/варианта считается испорченной, молча приводить значение нельзя
	ErrInvalidDurationUnit = errors.New("domain: invalid duration unit")

	// ErrInvalidScheduleConfiguration возвращается для расписания с началом не раньше конца
	// или неположительным шагом слотов
	ErrInvalidScheduleConfiguration = errors.New("domain: invalid schedule configuration")

	// ErrInvalidService возвращается для услуги с некорректной длительностью или вместимостью
	ErrInvalidService = errors.New("domain: invalid service")

	// ErrInvalidBookingStatus возвращается для неизвестного статуса бронирования
	ErrInvalidBookingStatus = errors.New("domain: invalid booking status")

	// ErrInvalidWaitingListStatus возвращается для неизвестного статуса листа ожидания
	ErrInvalidWaitingListStatus = errors.New("domain: invalid waiting list status")
)
