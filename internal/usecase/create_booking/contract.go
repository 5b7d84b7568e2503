package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListByScope(ctx context.Context, scope domain.Scope) ([]*domain.OperatingSchedule, error)
}

// DiscountRepository интерфейс учета использований скидок
type DiscountRepository interface {
	IncrementUsage(ctx context.Context, businessID, discountID int64) error
}

// CatalogService интерфейс сервиса каталога услуг
type CatalogService interface {
	Resolve(ctx context.Context, businessID, serviceID int64, variantID *int64) (*catalog.Offer, error)
}

// PricingService интерфейс сервиса расчета стоимости
type PricingService interface {
	Quote(ctx context.Context, in pricing.Input) (*pricing.Quote, error)
}

// CodeGenerator интерфейс генератора кодов бронирования
type CodeGenerator interface {
	Generate(now time.Time) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	ObserveBookingCreated(status string)
	ObserveBookingRejected(reason string)
	ObserveDiscountApplied(name string)
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
