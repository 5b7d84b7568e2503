package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	discountRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/discount"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

// Monday 2026-03-02 08:00 WIB
var now = time.Date(2026, 3, 2, 8, 0, 0, 0, jakarta)

type fakeBookings struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	duplicate int
	nextID    int64
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.duplicate > 0 {
		f.duplicate--
		return nil, fmt.Errorf("%w: %s", bookingRepo.ErrDuplicateBookingCode, b.BookingCode)
	}
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = now
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

type fakeSchedules struct{ schedules []*domain.OperatingSchedule }

func (f *fakeSchedules) ListByScope(context.Context, domain.Scope) ([]*domain.OperatingSchedule, error) {
	return f.schedules, nil
}

type fakeDiscounts struct {
	discounts []*domain.Discount
	exhausted bool
	increased []int64
}

func (f *fakeDiscounts) ListActive(context.Context, int64) ([]*domain.Discount, error) {
	return f.discounts, nil
}

func (f *fakeDiscounts) IncrementUsage(_ context.Context, _ int64, discountID int64) error {
	if f.exhausted {
		return discountRepo.ErrUsageLimitReached
	}
	f.increased = append(f.increased, discountID)
	return nil
}

type fakeCatalog struct{ offer *catalog.Offer }

func (f *fakeCatalog) Resolve(context.Context, int64, int64, *int64) (*catalog.Offer, error) {
	return f.offer, nil
}

// serialTx выполняет транзакции строго последовательно
type serialTx struct{ mu sync.Mutex }

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

type sequenceCodes struct {
	mu sync.Mutex
	n  int
}

func (c *sequenceCodes) Generate(now time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("GLW-%s-%04d", now.Format("20060102"), c.n)
}

type fakeMetrics struct {
	mu       sync.Mutex
	created  []string
	rejected []string
	applied  []string
}

func (m *fakeMetrics) ObserveBookingCreated(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, status)
}

func (m *fakeMetrics) ObserveBookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

func (m *fakeMetrics) ObserveDiscountApplied(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, name)
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookings
	discounts *fakeDiscounts
	metrics   *fakeMetrics
	service   *domain.Service
}

func newFixture(capacity int) *fixture {
	service := &domain.Service{
		ID:              5,
		BusinessID:      1,
		Name:            "Balinese massage",
		DurationValue:   90,
		DurationUnit:    domain.DurationUnitMinute,
		CapacityPerSlot: capacity,
		BasePriceCents:  30000000,
		Currency:        "IDR",
		IsActive:        true,
	}
	offer := &catalog.Offer{Service: service, Duration: service.Duration(), DurationMinutes: 90, PriceCents: 30000000}
	schedule := &domain.OperatingSchedule{
		ID:              1,
		BusinessID:      1,
		Weekday:         time.Monday,
		StartTime:       "09:00",
		EndTime:         "18:00",
		SlotSizeMinutes: 60,
		IsActive:        true,
	}

	f := &fixture{
		bookings:  &fakeBookings{},
		discounts: &fakeDiscounts{},
		metrics:   &fakeMetrics{},
		service:   service,
	}
	pricingSvc := pricing.NewService(f.discounts, nil, logger.Discard())
	f.uc = NewUseCase(
		f.bookings,
		&fakeSchedules{schedules: []*domain.OperatingSchedule{schedule}},
		f.discounts,
		&fakeCatalog{offer: offer},
		pricingSvc,
		&sequenceCodes{},
		&serialTx{},
		f.metrics,
		jakarta,
		"https://glow.example",
		logger.Discard(),
	)
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func request(startTime string, people int) *Request {
	return &Request{
		BusinessID:    1,
		ServiceID:     5,
		Date:          time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     typesTime(startTime),
		PeopleCount:   people,
		CustomerName:  "Putu",
		CustomerPhone: "+628123456789",
	}
}

func TestExecute_Confirmed(t *testing.T) {
	f := newFixture(4)

	resp, err := f.uc.Execute(context.Background(), request("10:00", 2))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, jakarta), resp.StartAt)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 30, 0, 0, jakarta), resp.EndAt)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, int64(60000000), resp.TotalPriceCents)
	assert.Equal(t, "GLW-20260302-0001", resp.BookingCode)
	assert.Equal(t, "https://glow.example/checkin/GLW-20260302-0001", resp.QRCodeData)
	assert.Equal(t, []string{"confirmed"}, f.metrics.created)
}

func TestExecute_PendingPayment(t *testing.T) {
	f := newFixture(4)
	f.service.RequiresPaymentBeforeConfirmation = true

	resp, err := f.uc.Execute(context.Background(), request("10:00", 1))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
}

func TestExecute_AppliesDiscount(t *testing.T) {
	f := newFixture(4)
	f.discounts.discounts = []*domain.Discount{{
		ID:       9,
		Name:     "Early bird",
		Type:     domain.DiscountPercentage,
		Value:    20,
		IsAuto:   true,
		StartAt:  now.Add(-24 * time.Hour),
		EndAt:    now.Add(24 * time.Hour),
		IsActive: true,
	}}

	resp, err := f.uc.Execute(context.Background(), request("10:00", 1))
	require.NoError(t, err)

	assert.Equal(t, int64(6000000), resp.DiscountCents)
	assert.Equal(t, int64(24000000), resp.TotalPriceCents)
	require.NotNil(t, resp.DiscountName)
	assert.Equal(t, "Early bird", *resp.DiscountName)
	assert.Equal(t, []int64{9}, f.discounts.increased)
	require.NotNil(t, f.bookings.bookings[0].DiscountID)
	assert.Equal(t, int64(9), *f.bookings.bookings[0].DiscountID)
	assert.Equal(t, []string{"Early bird"}, f.metrics.applied)
}

func TestExecute_DiscountExhausted(t *testing.T) {
	f := newFixture(4)
	f.discounts.exhausted = true
	f.discounts.discounts = []*domain.Discount{{
		ID:       9,
		Name:     "Early bird",
		Type:     domain.DiscountFixed,
		Value:    1000,
		IsAuto:   true,
		StartAt:  now.Add(-time.Hour),
		EndAt:    now.Add(time.Hour),
		IsActive: true,
	}}

	_, err := f.uc.Execute(context.Background(), request("10:00", 1))
	require.ErrorIs(t, err, ErrDiscountExhausted)
	assert.Empty(t, f.bookings.bookings)
	assert.Equal(t, []string{reasonDiscountExhausted}, f.metrics.rejected)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "not a slot start", req: request("09:30", 1), wantErr: ErrInvalidTimeSlot},
		{name: "after last slot", req: request("17:00", 1), wantErr: ErrInvalidTimeSlot},
		{name: "slot already started", req: request("09:00", 1), wantErr: ErrTooLateToBook},
		{name: "more people than capacity", req: request("10:00", 5), wantErr: ErrSlotNotAvailable},
		{name: "missing customer", req: &Request{BusinessID: 1, ServiceID: 5}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(4)
			f.uc.timeProvider = fixedTime{now: now.Add(time.Hour)}

			_, err := f.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.bookings)
		})
	}
}

func TestExecute_NoScheduleOnWeekday(t *testing.T) {
	f := newFixture(4)
	req := request("10:00", 1)
	req.Date = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OverlappingSlotsShareCapacity(t *testing.T) {
	f := newFixture(2)

	_, err := f.uc.Execute(context.Background(), request("10:00", 2))
	require.NoError(t, err)

	// 10:00-11:30 overlaps 11:00-12:30
	_, err = f.uc.Execute(context.Background(), request("11:00", 1))
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	// touching at 11:30 is not an overlap, 12:00 starts after it
	_, err = f.uc.Execute(context.Background(), request("12:00", 2))
	require.NoError(t, err)
}

func TestExecute_RetriesBookingCodeCollision(t *testing.T) {
	f := newFixture(4)
	f.bookings.duplicate = 1

	resp, err := f.uc.Execute(context.Background(), request("10:00", 1))
	require.NoError(t, err)
	assert.Equal(t, "GLW-20260302-0002", resp.BookingCode)
}

func TestExecute_ConcurrentBookingsNeverExceedCapacity(t *testing.T) {
	f := newFixture(3)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.Execute(context.Background(), request("14:00", 1)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	assert.Len(t, f.bookings.bookings, 3)
	assert.Len(t, f.metrics.rejected, attempts-3)
}
