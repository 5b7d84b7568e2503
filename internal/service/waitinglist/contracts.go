package waitinglist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	waitingListRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
)

// EntryRepository интерфейс репозитория листа ожидания
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.WaitingListEntry) (*domain.WaitingListEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitingListEntry, error)
	List(ctx context.Context, filter waitingListRepo.Filter) ([]*domain.WaitingListEntry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WaitingListStatus, invitedAt *time.Time) error
}

// CatalogService интерфейс сервиса каталога услуг
type CatalogService interface {
	Resolve(ctx context.Context, businessID, serviceID int64, variantID *int64) (*catalog.Offer, error)
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
