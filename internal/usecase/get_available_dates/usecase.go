package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case для получения ближайших рабочих дат
type UseCase struct {
	scheduleRepo ScheduleRepository
	defaultCount int
	maxCount     int
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	defaultCount int,
	maxCount int,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		defaultCount: defaultCount,
		maxCount:     maxCount,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает до Count дат начиная с сегодняшнего дня, в которые у уровня есть активное расписание
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	count := req.Count
	if count == 0 {
		count = uc.defaultCount
	}

	scope := domain.Scope{BusinessID: req.BusinessID, LocationID: req.LocationID, ResourceID: req.ResourceID}
	uc.logger.Info("GetAvailableDates: %s, count=%d", scope, count)

	schedules, err := uc.scheduleRepo.ListByScope(ctx, scope)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get schedules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedules: %v", ErrInternal, err)
	}

	today := uc.timeProvider.Now().In(uc.location)

	dates := make([]time.Time, 0, count)
	for date := range availability.AvailableDates(schedules, today, count) {
		dates = append(dates, date)
	}

	uc.logger.Info("GetAvailableDates: found %d dates for %s", len(dates), scope)

	return &Response{
		BusinessID: req.BusinessID,
		Dates:      dates,
	}, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Count < 0 || req.Count > uc.maxCount {
		return fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, uc.maxCount)
	}
	return nil
}
