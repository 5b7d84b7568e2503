package availability

import (
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotsQuery snapshot of everything needed to compute slots for one date
type SlotsQuery struct {
	Date      time.Time // Any instant of the requested day in the business location
	Service   *domain.Service
	Variant   *domain.ServiceVariant
	Scope     domain.Scope
	Schedules []*domain.OperatingSchedule // Schedules of the scope, in storage order
	Bookings  []*domain.Booking
	Now       time.Time
}

// SlotsForDate computes bookable slots of a service for a date
// Slots starting at or before Now are never available and report zero capacity
// No schedule for the weekday yields an empty list
func SlotsForDate(q SlotsQuery) ([]domain.TimeSlot, error) {
	duration, err := domain.EffectiveDuration(q.Service, q.Variant).Minutes()
	if err != nil {
		return nil, err
	}

	schedule := domain.SelectSchedule(q.Schedules, q.Date.Weekday())
	windows, err := GenerateSlots(schedule, duration)
	if err != nil {
		return nil, fmt.Errorf("schedule id=%d: %w", schedule.ID, err)
	}

	slots := make([]domain.TimeSlot, 0, len(windows))
	for _, w := range windows {
		start, end := w.At(q.Date)
		slot := domain.TimeSlot{
			StartAt:       start,
			EndAt:         end,
			TotalCapacity: q.Service.CapacityPerSlot,
		}

		if start.After(q.Now) {
			slot.RemainingCapacity = RemainingCapacity(q.Service.ID, q.Scope, start, end, q.Bookings, q.Service.CapacityPerSlot)
			slot.Available = !slot.IsFull()
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// AvailableDates yields up to count dates, starting at today's midnight, whose weekday
// has an active schedule. The sequence is finite and can be iterated repeatedly
func AvailableDates(schedules []*domain.OperatingSchedule, today time.Time, count int) iter.Seq[time.Time] {
	var open [7]bool
	anyOpen := false
	for _, s := range schedules {
		if s.IsActive && s.Weekday >= time.Sunday && s.Weekday <= time.Saturday {
			open[s.Weekday] = true
			anyOpen = true
		}
	}

	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	return func(yield func(time.Time) bool) {
		if !anyOpen {
			return
		}
		for day, found := start, 0; found < count; day = day.AddDate(0, 0, 1) {
			if !open[day.Weekday()] {
				continue
			}
			if !yield(day) {
				return
			}
			found++
		}
	}
}
