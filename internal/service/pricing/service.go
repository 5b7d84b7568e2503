package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/discount"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
)

// Input параметры расчета стоимости
type Input struct {
	BusinessID    int64
	Offer         *catalog.Offer
	LocationID    *int64
	PeopleCount   int
	CustomerPhone string
	VoucherCode   string
	Now           time.Time
}

// Quote итоговая стоимость с примененной скидкой
type Quote struct {
	BasePriceCents int64
	Discount       discount.Result
	TotalCents     int64
	Currency       string
	TierID         *int64
}

// Service сервис расчета стоимости бронирования
type Service struct {
	discountRepo DiscountRepository
	membership   MembershipClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса
// membership может быть nil, тогда скидки по уровню членства не применяются
func NewService(discountRepo DiscountRepository, membership MembershipClient, logger Logger) *Service {
	return &Service{
		discountRepo: discountRepo,
		membership:   membership,
		logger:       logger,
	}
}

// Quote считает базовую цену (цена варианта * количество человек), выбирает
// лучшую скидку и возвращает итог не меньше нуля
func (s *Service) Quote(ctx context.Context, in Input) (*Quote, error) {
	if in.PeopleCount <= 0 {
		return nil, ErrInvalidPeopleCount
	}

	base := in.Offer.PriceCents * int64(in.PeopleCount)
	tierID := s.resolveTier(ctx, in)

	discounts, err := s.discountRepo.ListActive(ctx, in.BusinessID)
	if err != nil {
		s.logger.Error("Quote: failed to get discounts for business=%d: %v", in.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get discounts: %w", ErrInternal, err)
	}

	result := discount.Best(discount.Context{
		ServiceID:      in.Offer.Service.ID,
		TierID:         tierID,
		LocationID:     in.LocationID,
		VoucherCode:    in.VoucherCode,
		BasePriceCents: base,
		Now:            in.Now,
	}, discounts)

	if result.Applied() {
		s.logger.Info("Quote: discount id=%d (%s) amount=%d applied for service=%d",
			result.DiscountID, result.RuleName, result.AmountCents, in.Offer.Service.ID)
	}

	total := base - result.AmountCents
	if total < 0 {
		total = 0
	}

	return &Quote{
		BasePriceCents: base,
		Discount:       result,
		TotalCents:     total,
		Currency:       in.Offer.Service.Currency,
		TierID:         tierID,
	}, nil
}

// resolveTier возвращает уровень членства клиента
// Ошибки сервиса членства не прерывают расчет: скидка считается без уровня
func (s *Service) resolveTier(ctx context.Context, in Input) *int64 {
	phone := strings.TrimSpace(in.CustomerPhone)
	if s.membership == nil || phone == "" {
		return nil
	}

	tierID, err := s.membership.GetActiveTier(ctx, in.BusinessID, phone, in.Now)
	if err != nil {
		s.logger.Warn("Quote: continuing without membership tier: %v", err)
		return nil
	}
	return tierID
}
