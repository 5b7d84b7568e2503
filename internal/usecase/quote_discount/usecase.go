package quote_discount

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case предварительного расчета скидки
// Счетчики использования скидок не изменяются
type UseCase struct {
	catalog      CatalogService
	pricing      PricingService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog CatalogService, pricing PricingService, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		pricing:      pricing,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчет стоимости с лучшей применимой скидкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteDiscount: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("QuoteDiscount: business=%d, service=%d, people=%d",
		req.BusinessID, req.ServiceID, req.PeopleCount)

	offer, err := uc.catalog.Resolve(ctx, req.BusinessID, req.ServiceID, req.VariantID)
	if err != nil {
		return nil, mapCatalogError(err)
	}

	quote, err := uc.pricing.Quote(ctx, pricing.Input{
		BusinessID:    req.BusinessID,
		Offer:         offer,
		LocationID:    req.LocationID,
		PeopleCount:   req.PeopleCount,
		CustomerPhone: req.CustomerPhone,
		VoucherCode:   req.VoucherCode,
		Now:           uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Error("QuoteDiscount: failed to quote: %v", err)
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}

	resp := &Response{
		BasePriceCents: quote.BasePriceCents,
		DiscountCents:  quote.Discount.AmountCents,
		TotalCents:     quote.TotalCents,
		Currency:       quote.Currency,
	}
	if quote.Discount.Applied() {
		resp.DiscountName = ptr.Ptr(quote.Discount.RuleName)
		resp.DiscountID = ptr.Ptr(quote.Discount.DiscountID)
	}

	return resp, nil
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
