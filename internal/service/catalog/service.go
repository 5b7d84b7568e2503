package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
)

// Offer услуга вместе с выбранным вариантом и вычисленными параметрами
type Offer struct {
	Service         *domain.Service
	Variant         *domain.ServiceVariant
	Duration        domain.Duration
	DurationMinutes int
	PriceCents      int64
}

// Service сервис чтения каталога услуг
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve загружает активную услугу и опциональный вариант и вычисляет
// эффективные длительность и цену
func (s *Service) Resolve(ctx context.Context, businessID, serviceID int64, variantID *int64) (*Offer, error) {
	service, err := s.repo.GetService(ctx, businessID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Resolve: service id=%d not found for business=%d", serviceID, businessID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Resolve: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	if !service.IsActive {
		s.logger.Warn("Resolve: service id=%d is inactive", serviceID)
		return nil, ErrServiceNotFound
	}

	if err := service.Validate(); err != nil {
		s.logger.Error("Resolve: service id=%d is malformed: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedService, err)
	}

	var variant *domain.ServiceVariant
	if variantID != nil {
		variant, err = s.repo.GetVariant(ctx, serviceID, *variantID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrVariantNotFound) {
				s.logger.Warn("Resolve: variant id=%d not found for service=%d", *variantID, serviceID)
				return nil, ErrVariantNotFound
			}
			s.logger.Error("Resolve: failed to get variant id=%d: %v", *variantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %w", ErrInternal, err)
		}
		if !variant.IsActive {
			s.logger.Warn("Resolve: variant id=%d is inactive", *variantID)
			return nil, ErrVariantNotFound
		}
	}

	duration := domain.EffectiveDuration(service, variant)
	minutes, err := duration.Minutes()
	if err != nil {
		s.logger.Error("Resolve: service id=%d has malformed duration: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedService, err)
	}
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: non-positive duration %d", ErrMalformedService, minutes)
	}

	return &Offer{
		Service:         service,
		Variant:         variant,
		Duration:        duration,
		DurationMinutes: minutes,
		PriceCents:      domain.EffectivePrice(service, variant),
	}, nil
}
