package domain

import "time"

// TimeSlot represents a bookable window on a specific date
type TimeSlot struct {
	StartAt           time.Time
	EndAt             time.Time
	Available         bool
	RemainingCapacity int
	TotalCapacity     int
}

// IsFull returns true if the slot has no remaining capacity
func (s *TimeSlot) IsFull() bool {
	return s.RemainingCapacity <= 0
}
