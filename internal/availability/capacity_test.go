package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func typesTime(s string) types.TimeString {
	return types.TimeString(s)
}

func booking(serviceID int64, start time.Time, minutes, people int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		BusinessID:  1,
		ServiceID:   serviceID,
		StartAt:     start,
		EndAt:       start.Add(time.Duration(minutes) * time.Minute),
		PeopleCount: people,
		Status:      status,
	}
}

func TestRemainingCapacity(t *testing.T) {
	scope := domain.Scope{BusinessID: 1}
	slotStart := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slotEnd := slotStart.Add(60 * time.Minute)

	tests := []struct {
		name     string
		bookings []*domain.Booking
		capacity int
		want     int
	}{
		{name: "empty", capacity: 3, want: 3},
		{
			name: "sums people of overlapping bookings",
			bookings: []*domain.Booking{
				booking(1, slotStart, 30, 2, domain.StatusConfirmed),
				booking(1, slotStart.Add(30*time.Minute), 30, 1, domain.StatusPendingPayment),
			},
			capacity: 5,
			want:     2,
		},
		{
			name:     "never negative",
			bookings: []*domain.Booking{booking(1, slotStart, 60, 7, domain.StatusConfirmed)},
			capacity: 5,
			want:     0,
		},
		{
			name: "cancelled and no-show excluded",
			bookings: []*domain.Booking{
				booking(1, slotStart, 60, 1, domain.StatusCancelled),
				booking(1, slotStart, 60, 1, domain.StatusNoShow),
			},
			capacity: 1,
			want:     1,
		},
		{
			name: "touching bookings do not overlap",
			bookings: []*domain.Booking{
				booking(1, slotStart.Add(-60*time.Minute), 60, 1, domain.StatusConfirmed),
				booking(1, slotEnd, 60, 1, domain.StatusConfirmed),
			},
			capacity: 1,
			want:     1,
		},
		{
			name:     "other service ignored",
			bookings: []*domain.Booking{booking(2, slotStart, 60, 1, domain.StatusConfirmed)},
			capacity: 1,
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingCapacity(1, scope, slotStart, slotEnd, tt.bookings, tt.capacity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemainingCapacity_Scope(t *testing.T) {
	slotStart := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slotEnd := slotStart.Add(time.Hour)

	atLocation := booking(1, slotStart, 60, 1, domain.StatusConfirmed)
	atLocation.LocationID = ptr.Ptr(int64(10))
	elsewhere := booking(1, slotStart, 60, 1, domain.StatusConfirmed)
	elsewhere.LocationID = ptr.Ptr(int64(20))
	bookings := []*domain.Booking{atLocation, elsewhere}

	locationScope := domain.Scope{BusinessID: 1, LocationID: ptr.Ptr(int64(10))}
	assert.Equal(t, 1, RemainingCapacity(1, locationScope, slotStart, slotEnd, bookings, 2))

	businessScope := domain.Scope{BusinessID: 1}
	assert.Equal(t, 0, RemainingCapacity(1, businessScope, slotStart, slotEnd, bookings, 2))
}
