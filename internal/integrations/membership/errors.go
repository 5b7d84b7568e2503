package membership

import "errors"

var (
	// ErrMembershipNotFound возвращается, когда у клиента нет членства в бизнесе
	ErrMembershipNotFound = errors.New("customer has no membership")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("membership client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("membership client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что сервис членств недоступен и скидки подбираются без уровня членства
	ErrServiceDegraded = errors.New("membership service unavailable: graceful degradation applied")
)
