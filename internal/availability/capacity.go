package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Occupied sums people of bookings of the service within the scope that overlap [start, end)
// Bookings touching the window at an endpoint do not overlap it
func Occupied(serviceID int64, scope domain.Scope, start, end time.Time, bookings []*domain.Booking) int {
	occupied := 0
	for _, b := range bookings {
		if b.ServiceID != serviceID || !scope.Covers(b) {
			continue
		}
		if !b.CountsAgainstCapacity() {
			continue
		}
		if b.Overlaps(start, end) {
			occupied += b.PeopleCount
		}
	}
	return occupied
}

// RemainingCapacity returns max(0, capacity - occupied people) for the window
func RemainingCapacity(serviceID int64, scope domain.Scope, start, end time.Time, bookings []*domain.Booking, capacity int) int {
	remaining := capacity - Occupied(serviceID, scope, start, end, bookings)
	if remaining < 0 {
		return 0
	}
	return remaining
}
