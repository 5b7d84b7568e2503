package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для получения слотов услуги на дату
type UseCase struct {
	catalog      CatalogService
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс бизнеса, в котором интерпретируются дата и расписание
func NewUseCase(
	catalog CatalogService,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
// Отсутствие расписания на день недели не является ошибкой: возвращается пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := startOfDay(req.Date, uc.location)
	scope := domain.Scope{BusinessID: req.BusinessID, LocationID: req.LocationID, ResourceID: req.ResourceID}

	uc.logger.Info("GetAvailableSlots: service=%d, %s, date=%s",
		req.ServiceID, scope, date.Format(domain.DateFormat))

	// 2. Услуга и вариант
	offer, err := uc.catalog.Resolve(ctx, req.BusinessID, req.ServiceID, req.VariantID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	// 3. Расписания выбранного уровня
	schedules, err := uc.scheduleRepo.ListByScope(ctx, scope)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	// 4. Бронирования услуги, пересекающие этот день
	dayEnd := date.AddDate(0, 0, 1)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		BusinessID: req.BusinessID,
		ServiceID:  &req.ServiceID,
		LocationID: req.LocationID,
		ResourceID: req.ResourceID,
		From:       &date,
		To:         &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Вычисляем слоты
	timeSlots, err := availability.SlotsForDate(availability.SlotsQuery{
		Date:      date,
		Service:   offer.Service,
		Variant:   offer.Variant,
		Scope:     scope,
		Schedules: schedules,
		Bookings:  bookings,
		Now:       uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		if errors.Is(err, domain.ErrInvalidScheduleConfiguration) || errors.Is(err, domain.ErrInvalidDurationUnit) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(timeSlots))
	for _, s := range timeSlots {
		slots = append(slots, Slot{
			StartTime:         types.NewTimeString(s.StartAt),
			EndTime:           types.NewTimeString(s.EndAt),
			StartAt:           s.StartAt,
			EndAt:             s.EndAt,
			Available:         s.Available,
			RemainingCapacity: s.RemainingCapacity,
			TotalCapacity:     s.TotalCapacity,
		})
	}

	uc.metrics.ObserveSlotsServed(len(slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		VariantID:       req.VariantID,
		DurationMinutes: offer.DurationMinutes,
		Slots:           slots,
	}, nil
}

// startOfDay возвращает полночь календарной даты t в часовом поясе loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, catalog.ErrVariantNotFound):
		return ErrVariantNotFound
	case errors.Is(err, catalog.ErrMalformedService):
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
