package pricing

import "errors"

var (
	// ErrInvalidPeopleCount возвращается при неположительном количестве человек
	ErrInvalidPeopleCount = errors.New("pricing: people count must be positive")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
