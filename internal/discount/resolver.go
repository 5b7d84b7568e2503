package discount

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Context prospective booking the discount is resolved for
type Context struct {
	ServiceID      int64
	TierID         *int64
	LocationID     *int64
	VoucherCode    string
	BasePriceCents int64
	Now            time.Time
}

// Result best applicable discount; zero value means nothing applies
type Result struct {
	AmountCents int64
	RuleName    string
	DiscountID  int64
}

// Applied returns true if a discount was selected
func (r Result) Applied() bool {
	return r.AmountCents > 0
}

// Best selects the discount with the largest amount for the context
// Equal amounts resolve to the smallest discount ID, so the result does not depend on slice order
// Usage counters are never modified
func Best(c Context, discounts []*domain.Discount) Result {
	var best Result
	for _, d := range discounts {
		if !Applicable(c, d) {
			continue
		}

		amount := d.Amount(c.BasePriceCents)
		if amount <= 0 {
			continue
		}

		if amount > best.AmountCents || (amount == best.AmountCents && d.ID < best.DiscountID) {
			best = Result{AmountCents: amount, RuleName: d.Name, DiscountID: d.ID}
		}
	}
	return best
}

// Applicable reports whether the rule passes activity, validity window,
// usage limit, targeting and voucher checks for the context
func Applicable(c Context, d *domain.Discount) bool {
	if !d.IsActive || !d.IsWithinWindow(c.Now) || d.IsExhausted() {
		return false
	}
	if !matchesTarget(d.ServiceID, &c.ServiceID) ||
		!matchesTarget(d.TierID, c.TierID) ||
		!matchesTarget(d.LocationID, c.LocationID) {
		return false
	}
	if !d.IsAuto && !d.MatchesCode(c.VoucherCode) {
		return false
	}
	return true
}

// matchesTarget unset target matches anything, set target requires an equal value
func matchesTarget(target, value *int64) bool {
	if target == nil {
		return true
	}
	return value != nil && *value == *target
}
