package domain

import (
	"fmt"
	"time"
)

// DurationUnit unit of a service or variant duration
type DurationUnit string

const (
	DurationUnitMinute DurationUnit = "minute"
	DurationUnitHour   DurationUnit = "hour"
	DurationUnitDay    DurationUnit = "day"
)

// IsValid returns true for one of the known units
func (u DurationUnit) IsValid() bool {
	switch u {
	case DurationUnitMinute, DurationUnitHour, DurationUnitDay:
		return true
	}
	return false
}

// DurationMinutes converts a (value, unit) pair into minutes
func DurationMinutes(value int, unit DurationUnit) (int, error) {
	switch unit {
	case DurationUnitMinute:
		return value, nil
	case DurationUnitHour:
		return value * MinutesPerHour, nil
	case DurationUnitDay:
		return value * MinutesPerDay, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDurationUnit, unit)
	}
}

// Duration value with its unit as stored in the catalog
type Duration struct {
	Value int
	Unit  DurationUnit
}

// Minutes returns the duration in minutes
func (d Duration) Minutes() (int, error) {
	return DurationMinutes(d.Value, d.Unit)
}

// Service represents a bookable service of a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Category        string
	DurationValue   int
	DurationUnit    DurationUnit
	CapacityPerSlot int
	BasePriceCents  int64
	Currency        string

	RequiresPaymentBeforeConfirmation bool
	WaitingListEnabled                bool
	IsActive                          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the service's own duration
func (s *Service) Duration() Duration {
	return Duration{Value: s.DurationValue, Unit: s.DurationUnit}
}

// Validate checks catalog invariants: positive duration, known unit, capacity >= 1
func (s *Service) Validate() error {
	if s.DurationValue <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidService, s.DurationValue)
	}
	if !s.DurationUnit.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDurationUnit, s.DurationUnit)
	}
	if s.CapacityPerSlot < 1 {
		return fmt.Errorf("%w: capacity per slot must be at least 1, got %d", ErrInvalidService, s.CapacityPerSlot)
	}
	return nil
}

// ServiceVariant optional override of a service's duration and/or price
// Capacity is always inherited from the owning service
type ServiceVariant struct {
	ID            int64
	ServiceID     int64
	Name          string
	DurationValue *int
	DurationUnit  *DurationUnit
	PriceCents    *int64
	IsActive      bool
}

// EffectiveDuration resolves the duration of a service with an optional variant:
// variant value and unit, variant value with the service unit, or the service duration
func EffectiveDuration(service *Service, variant *ServiceVariant) Duration {
	if variant == nil || variant.DurationValue == nil || *variant.DurationValue <= 0 {
		return service.Duration()
	}
	if variant.DurationUnit != nil && *variant.DurationUnit != "" {
		return Duration{Value: *variant.DurationValue, Unit: *variant.DurationUnit}
	}
	return Duration{Value: *variant.DurationValue, Unit: service.DurationUnit}
}

// EffectivePrice returns the variant price if set, otherwise the service base price
func EffectivePrice(service *Service, variant *ServiceVariant) int64 {
	if variant != nil && variant.PriceCents != nil {
		return *variant.PriceCents
	}
	return service.BasePriceCents
}
