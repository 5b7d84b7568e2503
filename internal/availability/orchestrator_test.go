package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var wib = time.FixedZone("WIB", 7*60*60)

func newService(capacity int) *domain.Service {
	return &domain.Service{
		ID:              1,
		BusinessID:      1,
		DurationValue:   60,
		DurationUnit:    domain.DurationUnitMinute,
		CapacityPerSlot: capacity,
		BasePriceCents:  15000000,
		IsActive:        true,
	}
}

func findSlot(t *testing.T, slots []domain.TimeSlot, start time.Time) domain.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.StartAt.Equal(start) {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return domain.TimeSlot{}
}

func TestSlotsForDate_CapacityScenario(t *testing.T) {
	// Monday 2026-03-02, queried the Friday before
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, wib)
	slotStart := time.Date(2026, 3, 2, 10, 0, 0, 0, wib)

	q := SlotsQuery{
		Date:      date,
		Service:   newService(2),
		Scope:     domain.Scope{BusinessID: 1},
		Schedules: []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "18:00", 60)},
		Bookings:  []*domain.Booking{booking(1, slotStart, 60, 1, domain.StatusConfirmed)},
		Now:       now,
	}

	slots, err := SlotsForDate(q)
	require.NoError(t, err)
	require.Len(t, slots, 9)

	slot := findSlot(t, slots, slotStart)
	assert.True(t, slot.Available)
	assert.Equal(t, 1, slot.RemainingCapacity)
	assert.Equal(t, 2, slot.TotalCapacity)

	q.Bookings = append(q.Bookings, booking(1, slotStart, 60, 1, domain.StatusConfirmed))
	slots, err = SlotsForDate(q)
	require.NoError(t, err)

	slot = findSlot(t, slots, slotStart)
	assert.False(t, slot.Available)
	assert.Equal(t, 0, slot.RemainingCapacity)

	untouched := findSlot(t, slots, slotStart.Add(time.Hour))
	assert.True(t, untouched.Available)
	assert.Equal(t, 2, untouched.RemainingCapacity)
}

func TestSlotsForDate_PastSlots(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, wib)

	slots, err := SlotsForDate(SlotsQuery{
		Date:      date,
		Service:   newService(3),
		Scope:     domain.Scope{BusinessID: 1},
		Schedules: []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "13:00", 60)},
		Now:       now,
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for _, s := range slots {
		if !s.StartAt.After(now) {
			assert.False(t, s.Available, s.StartAt)
			assert.Equal(t, 0, s.RemainingCapacity, s.StartAt)
		} else {
			assert.True(t, s.Available, s.StartAt)
			assert.Equal(t, 3, s.RemainingCapacity, s.StartAt)
		}
	}

	// 11:00 starts exactly at now
	assert.False(t, findSlot(t, slots, now).Available)
}

func TestSlotsForDate_VariantDuration(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, wib)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, wib)

	slots, err := SlotsForDate(SlotsQuery{
		Date:      date,
		Service:   newService(1),
		Variant:   &domain.ServiceVariant{DurationValue: ptr.Ptr(90)},
		Scope:     domain.Scope{BusinessID: 1},
		Schedules: []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "12:00", 30)},
		Now:       now,
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, 90*time.Minute, slots[0].EndAt.Sub(slots[0].StartAt))
	assert.Equal(t, time.Date(2026, 3, 2, 10, 30, 0, 0, wib), slots[3].StartAt)
}

func TestSlotsForDate_NoScheduleForWeekday(t *testing.T) {
	slots, err := SlotsForDate(SlotsQuery{
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, wib), // Sunday
		Service:   newService(1),
		Scope:     domain.Scope{BusinessID: 1},
		Schedules: []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "18:00", 30)},
		Now:       time.Date(2026, 2, 1, 0, 0, 0, 0, wib),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotsForDate_InvalidDurationUnit(t *testing.T) {
	service := newService(1)
	service.DurationUnit = "week"

	_, err := SlotsForDate(SlotsQuery{
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, wib),
		Service:   service,
		Schedules: []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "18:00", 30)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidDurationUnit)
}

func TestAvailableDates(t *testing.T) {
	schedules := []*domain.OperatingSchedule{
		weekdaySchedule(time.Monday, "09:00", "18:00", 30),
		weekdaySchedule(time.Wednesday, "09:00", "18:00", 30),
	}
	inactive := weekdaySchedule(time.Friday, "09:00", "18:00", 30)
	inactive.IsActive = false
	schedules = append(schedules, inactive)

	// Sunday afternoon
	today := time.Date(2026, 3, 1, 15, 30, 0, 0, wib)
	seq := AvailableDates(schedules, today, 3)

	var got []time.Time
	for d := range seq {
		got = append(got, d)
	}

	assert.Equal(t, []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, wib),
		time.Date(2026, 3, 4, 0, 0, 0, 0, wib),
		time.Date(2026, 3, 9, 0, 0, 0, 0, wib),
	}, got)

	// restartable
	var again []time.Time
	for d := range seq {
		again = append(again, d)
	}
	assert.Equal(t, got, again)
}

func TestAvailableDates_IncludesToday(t *testing.T) {
	schedules := []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "18:00", 30)}
	today := time.Date(2026, 3, 2, 20, 0, 0, 0, wib)

	var got []time.Time
	for d := range AvailableDates(schedules, today, 1) {
		got = append(got, d)
	}
	assert.Equal(t, []time.Time{time.Date(2026, 3, 2, 0, 0, 0, 0, wib)}, got)
}

func TestAvailableDates_NoActiveSchedule(t *testing.T) {
	count := 0
	for range AvailableDates(nil, time.Now(), 10) {
		count++
	}
	assert.Zero(t, count)
}

func TestAvailableDates_EarlyBreak(t *testing.T) {
	schedules := []*domain.OperatingSchedule{weekdaySchedule(time.Monday, "09:00", "18:00", 30)}

	count := 0
	for range AvailableDates(schedules, time.Date(2026, 3, 1, 0, 0, 0, 0, wib), 10) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
