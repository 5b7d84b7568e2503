package pricing

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DiscountRepository источник правил скидок бизнеса (репозиторий или кэш)
type DiscountRepository interface {
	ListActive(ctx context.Context, businessID int64) ([]*domain.Discount, error)
}

// MembershipClient интерфейс клиента сервиса членства
type MembershipClient interface {
	GetActiveTier(ctx context.Context, businessID int64, phone string, now time.Time) (*int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
