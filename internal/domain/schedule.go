package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ScopeLevel level at which an operating schedule is defined
type ScopeLevel string

const (
	ScopeBusiness ScopeLevel = "business"
	ScopeLocation ScopeLevel = "location"
	ScopeResource ScopeLevel = "resource"
)

// Scope identifies a schedule owner: the business, one of its locations or a resource
type Scope struct {
	BusinessID int64
	LocationID *int64
	ResourceID *int64
}

// Level returns the most specific level set in the scope
func (s Scope) Level() ScopeLevel {
	switch {
	case s.ResourceID != nil:
		return ScopeResource
	case s.LocationID != nil:
		return ScopeLocation
	default:
		return ScopeBusiness
	}
}

// Covers reports whether a booking belongs to the scope
// Unset location/resource in the scope match any booking value
func (s Scope) Covers(b *Booking) bool {
	if b.BusinessID != s.BusinessID {
		return false
	}
	if s.LocationID != nil && (b.LocationID == nil || *b.LocationID != *s.LocationID) {
		return false
	}
	if s.ResourceID != nil && (b.ResourceID == nil || *b.ResourceID != *s.ResourceID) {
		return false
	}
	return true
}

func (s Scope) String() string {
	switch s.Level() {
	case ScopeResource:
		return fmt.Sprintf("business=%d resource=%d", s.BusinessID, *s.ResourceID)
	case ScopeLocation:
		return fmt.Sprintf("business=%d location=%d", s.BusinessID, *s.LocationID)
	default:
		return fmt.Sprintf("business=%d", s.BusinessID)
	}
}

// OperatingSchedule working hours of a scope for one weekday
type OperatingSchedule struct {
	ID              int64
	BusinessID      int64
	LocationID      *int64
	ResourceID      *int64
	Weekday         time.Weekday // 0 = Sunday .. 6 = Saturday
	StartTime       types.TimeString
	EndTime         types.TimeString
	SlotSizeMinutes int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bounds returns start and end as minute offsets from midnight
func (s *OperatingSchedule) Bounds() (start, end int, err error) {
	start, err = s.StartTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: start time: %v", ErrInvalidScheduleConfiguration, err)
	}
	end, err = s.EndTime.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: end time: %v", ErrInvalidScheduleConfiguration, err)
	}
	return start, end, nil
}

// Validate checks start < end and a positive slot granularity
func (s *OperatingSchedule) Validate() error {
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidScheduleConfiguration, s.Weekday)
	}
	start, end, err := s.Bounds()
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidScheduleConfiguration, s.StartTime, s.EndTime)
	}
	if s.SlotSizeMinutes <= 0 {
		return fmt.Errorf("%w: slot size must be positive, got %d", ErrInvalidScheduleConfiguration, s.SlotSizeMinutes)
	}
	return nil
}

// SelectSchedule returns the first active schedule for the weekday or nil
// Schedules are expected in storage order (id ascending)
func SelectSchedule(schedules []*OperatingSchedule, weekday time.Weekday) *OperatingSchedule {
	for _, s := range schedules {
		if s.IsActive && s.Weekday == weekday {
			return s
		}
	}
	return nil
}
