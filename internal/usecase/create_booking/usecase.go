package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	discountRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/discount"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/bookingcode"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// maxCodeAttempts количество попыток при коллизии кода бронирования
const maxCodeAttempts = 3

// Причины отказа для метрик
const (
	reasonInvalidSlot       = "invalid_slot"
	reasonTooLate           = "too_late"
	reasonSlotNotAvailable  = "slot_not_available"
	reasonDiscountExhausted = "discount_exhausted"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	discountRepo   DiscountRepository
	catalog        CatalogService
	pricing        PricingService
	codes          CodeGenerator
	txManager      TransactionManager
	metrics        Metrics
	location       *time.Location
	checkinBaseURL string
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	discountRepo DiscountRepository,
	catalog CatalogService,
	pricing PricingService,
	codes CodeGenerator,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	checkinBaseURL string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		discountRepo:   discountRepo,
		catalog:        catalog,
		pricing:        pricing,
		codes:          codes,
		txManager:      txManager,
		metrics:        metrics,
		location:       location,
		checkinBaseURL: checkinBaseURL,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота, вместимости и списание лимита скидки выполняются в одной
// сериализуемой транзакции, поэтому параллельные запросы не могут превысить вместимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	y, m, d := req.Date.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	scope := domain.Scope{BusinessID: req.BusinessID, LocationID: req.LocationID, ResourceID: req.ResourceID}

	uc.logger.Info("CreateBooking: service=%d, %s, date=%s, time=%s, people=%d",
		req.ServiceID, scope, date.Format(domain.DateFormat), req.StartTime, req.PeopleCount)

	// 2. Услуга и вариант
	offer, err := uc.catalog.Resolve(ctx, req.BusinessID, req.ServiceID, req.VariantID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	// 3. Цена и лучшая скидка
	quote, err := uc.pricing.Quote(ctx, pricing.Input{
		BusinessID:    req.BusinessID,
		Offer:         offer,
		LocationID:    req.LocationID,
		PeopleCount:   req.PeopleCount,
		CustomerPhone: req.CustomerPhone,
		VoucherCode:   req.VoucherCode,
		Now:           now,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to quote: %v", err)
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}

	// 4. Бронирование в сериализуемой транзакции, с повтором при коллизии кода
	var result *domain.Booking
	for attempt := 1; ; attempt++ {
		result, err = uc.book(ctx, req, offer, quote, scope, date, now)
		if err == nil {
			break
		}
		if errors.Is(err, bookingRepo.ErrDuplicateBookingCode) && attempt < maxCodeAttempts {
			uc.logger.Warn("CreateBooking: booking code collision, retrying (attempt %d)", attempt)
			continue
		}
		return nil, uc.reject(err)
	}

	uc.metrics.ObserveBookingCreated(string(result.Status))
	if quote.Discount.Applied() {
		uc.metrics.ObserveDiscountApplied(quote.Discount.RuleName)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s, status=%s",
		result.ID, result.BookingCode, result.Status)

	resp := &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		VariantID:       result.VariantID,
		LocationID:      result.LocationID,
		ResourceID:      result.ResourceID,
		StartAt:         result.StartAt,
		EndAt:           result.EndAt,
		Status:          string(result.Status),
		PeopleCount:     result.PeopleCount,
		BasePriceCents:  quote.BasePriceCents,
		DiscountCents:   result.DiscountCents,
		TotalPriceCents: result.TotalPriceCents,
		Currency:        result.Currency,
		BookingCode:     result.BookingCode,
		QRCodeData:      result.QRCodeData,
		CreatedAt:       result.CreatedAt,
	}
	if quote.Discount.Applied() {
		resp.DiscountName = ptr.Ptr(quote.Discount.RuleName)
	}

	return resp, nil
}

// book выполняет одну попытку создания бронирования в транзакции
func (uc *UseCase) book(
	ctx context.Context,
	req *Request,
	offer *catalog.Offer,
	quote *pricing.Quote,
	scope domain.Scope,
	date time.Time,
	now time.Time,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Расписание на день недели
		schedules, err := uc.scheduleRepo.ListByScope(txCtx, scope)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedules: %v", err)
			return fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
		}

		schedule := domain.SelectSchedule(schedules, date.Weekday())
		if schedule == nil {
			uc.logger.Warn("CreateBooking: no schedule for %s on %s", scope, date.Weekday())
			return fmt.Errorf("%w: no schedule on %s", ErrInvalidTimeSlot, date.Weekday())
		}

		// 4.2. Время должно совпадать с началом сгенерированного слота
		windows, err := availability.GenerateSlots(schedule, offer.DurationMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}

		startMinute, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
		}

		window, ok := availability.FindWindow(windows, startMinute)
		if !ok {
			uc.logger.Warn("CreateBooking: %s is not a slot start for schedule id=%d", req.StartTime, schedule.ID)
			return ErrInvalidTimeSlot
		}

		startAt, endAt := window.At(date)
		if !startAt.After(now) {
			uc.logger.Warn("CreateBooking: slot %s already started", startAt.Format(time.RFC3339))
			return ErrTooLateToBook
		}

		// 4.3. Активные бронирования слота с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			BusinessID: req.BusinessID,
			ServiceID:  &req.ServiceID,
			LocationID: req.LocationID,
			ResourceID: req.ResourceID,
			From:       &startAt,
			To:         &endAt,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.4. Проверяем оставшиеся места
		capacity := offer.Service.CapacityPerSlot
		remaining := availability.RemainingCapacity(req.ServiceID, scope, startAt, endAt, bookings, capacity)
		if req.PeopleCount > remaining {
			uc.logger.Warn("CreateBooking: slot not available, requested %d, remaining %d/%d",
				req.PeopleCount, remaining, capacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateBooking: slot available, remaining %d/%d", remaining, capacity)

		// 4.5. Списываем использование скидки
		var discountID *int64
		if quote.Discount.Applied() {
			err := uc.discountRepo.IncrementUsage(txCtx, req.BusinessID, quote.Discount.DiscountID)
			if err != nil {
				if errors.Is(err, discountRepo.ErrUsageLimitReached) {
					uc.logger.Warn("CreateBooking: discount id=%d exhausted", quote.Discount.DiscountID)
					return ErrDiscountExhausted
				}
				uc.logger.Error("CreateBooking: failed to increment discount usage: %v", err)
				return fmt.Errorf("%w: failed to increment discount usage: %w", ErrInternal, err)
			}
			discountID = ptr.Ptr(quote.Discount.DiscountID)
		}

		// 4.6. Создаем бронирование
		status := domain.StatusConfirmed
		if offer.Service.RequiresPaymentBeforeConfirmation {
			status = domain.StatusPendingPayment
		}

		code := uc.codes.Generate(now.In(uc.location))
		booking := &domain.Booking{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			VariantID:       req.VariantID,
			LocationID:      req.LocationID,
			ResourceID:      req.ResourceID,
			CustomerName:    req.CustomerName,
			CustomerPhone:   req.CustomerPhone,
			CustomerEmail:   req.CustomerEmail,
			StartAt:         startAt,
			EndAt:           endAt,
			Status:          status,
			PeopleCount:     req.PeopleCount,
			TotalPriceCents: quote.TotalCents,
			DiscountCents:   quote.Discount.AmountCents,
			DiscountID:      discountID,
			Currency:        quote.Currency,
			BookingCode:     code,
			QRCodeData:      bookingcode.CheckinPayload(uc.checkinBaseURL, code),
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBookingCode) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	return result, err
}

// reject учитывает отказ в метриках и приводит ошибку к ошибкам usecase
func (uc *UseCase) reject(err error) error {
	switch {
	case errors.Is(err, ErrInvalidTimeSlot):
		uc.metrics.ObserveBookingRejected(reasonInvalidSlot)
	case errors.Is(err, ErrTooLateToBook):
		uc.metrics.ObserveBookingRejected(reasonTooLate)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.ObserveBookingRejected(reasonSlotNotAvailable)
	case errors.Is(err, ErrDiscountExhausted):
		uc.metrics.ObserveBookingRejected(reasonDiscountExhausted)
	case errors.Is(err, ErrInvalidConfiguration), errors.Is(err, ErrInternal):
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return err
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
