package quote_discount

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
)

// CatalogService интерфейс сервиса каталога услуг
type CatalogService interface {
	Resolve(ctx context.Context, businessID, serviceID int64, variantID *int64) (*catalog.Offer, error)
}

// PricingService интерфейс сервиса расчета стоимости
type PricingService interface {
	Quote(ctx context.Context, in pricing.Input) (*pricing.Quote, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
