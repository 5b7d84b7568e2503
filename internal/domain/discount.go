package domain

import (
	"strings"
	"time"
)

// DiscountType how the discount value is interpreted
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage" // Value is percent of the base price
	DiscountFixed      DiscountType = "fixed"      // Value is an amount in cents
)

// Discount promotional rule of a business
type Discount struct {
	ID               int64
	BusinessID       int64
	Name             string
	Code             *string
	Type             DiscountType
	Value            int64
	MaxDiscountCents *int64

	// Targeting, nil means any
	ServiceID  *int64
	TierID     *int64
	LocationID *int64

	IsAuto     bool
	StartAt    time.Time
	EndAt      time.Time
	UsageLimit *int
	UsageCount int
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWithinWindow reports startAt <= now <= endAt
func (d *Discount) IsWithinWindow(now time.Time) bool {
	return !now.Before(d.StartAt) && !now.After(d.EndAt)
}

// IsExhausted returns true when a usage limit is set and reached
func (d *Discount) IsExhausted() bool {
	return d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit
}

// MatchesCode compares a voucher code case-insensitively
// A rule without a code never matches
func (d *Discount) MatchesCode(code string) bool {
	if d.Code == nil || *d.Code == "" || code == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(code), *d.Code)
}

// Amount computes the discount for the base price, clamped to MaxDiscountCents
func (d *Discount) Amount(basePriceCents int64) int64 {
	var amount int64
	switch d.Type {
	case DiscountPercentage:
		amount = basePriceCents * d.Value / 100
	case DiscountFixed:
		amount = d.Value
	}
	if d.MaxDiscountCents != nil && amount > *d.MaxDiscountCents {
		amount = *d.MaxDiscountCents
	}
	return amount
}
