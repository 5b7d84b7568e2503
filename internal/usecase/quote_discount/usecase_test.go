package quote_discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeCatalog struct {
	offer *catalog.Offer
	err   error
}

func (f *fakeCatalog) Resolve(context.Context, int64, int64, *int64) (*catalog.Offer, error) {
	return f.offer, f.err
}

type fakeDiscounts struct{ discounts []*domain.Discount }

func (f *fakeDiscounts) ListActive(context.Context, int64) ([]*domain.Discount, error) {
	return f.discounts, nil
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newUseCase(offer *catalog.Offer, err error, discounts ...*domain.Discount) *UseCase {
	svc := pricing.NewService(&fakeDiscounts{discounts: discounts}, nil, logger.Discard())
	uc := NewUseCase(&fakeCatalog{offer: offer, err: err}, svc, logger.Discard())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func massage() *catalog.Offer {
	return &catalog.Offer{
		Service:    &domain.Service{ID: 5, BusinessID: 1, Currency: "IDR"},
		PriceCents: 20000000,
	}
}

func TestExecute_AppliesVoucher(t *testing.T) {
	code := "SPRING"
	voucher := &domain.Discount{
		ID:       4,
		Name:     "Spring voucher",
		Code:     &code,
		Type:     domain.DiscountPercentage,
		Value:    25,
		StartAt:  now.Add(-time.Hour),
		EndAt:    now.Add(time.Hour),
		IsActive: true,
	}
	uc := newUseCase(massage(), nil, voucher)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:  1,
		ServiceID:   5,
		PeopleCount: 2,
		VoucherCode: "spring",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40000000), resp.BasePriceCents)
	assert.Equal(t, int64(10000000), resp.DiscountCents)
	assert.Equal(t, int64(30000000), resp.TotalCents)
	require.NotNil(t, resp.DiscountName)
	assert.Equal(t, "Spring voucher", *resp.DiscountName)
	assert.Equal(t, int64(4), *resp.DiscountID)
}

func TestExecute_NoDiscount(t *testing.T) {
	uc := newUseCase(massage(), nil)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 5, PeopleCount: 1})
	require.NoError(t, err)

	assert.Zero(t, resp.DiscountCents)
	assert.Nil(t, resp.DiscountName)
	assert.Equal(t, resp.BasePriceCents, resp.TotalCents)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(nil, catalog.ErrServiceNotFound)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 5, PeopleCount: 1})
	require.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 5, PeopleCount: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}
