package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusPaymentFailed  BookingStatus = "payment_failed"
	StatusPaymentExpired BookingStatus = "payment_expired"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusCompleted      BookingStatus = "completed"
	StatusNoShow         BookingStatus = "no_show"
)

// bookingTransitions allowed status changes; statuses missing from the map are terminal
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:        {StatusConfirmed, StatusPendingPayment, StatusCancelled},
	StatusPendingPayment: {StatusConfirmed, StatusPaymentFailed, StatusPaymentExpired, StatusCancelled},
	StatusPaymentFailed:  {StatusCancelled},
	StatusConfirmed:      {StatusCompleted, StatusNoShow, StatusCancelled},
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, s)
	}
	return status, nil
}

// IsValid returns true for one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingPayment, StatusPaymentFailed, StatusPaymentExpired,
		StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// CountsAgainstCapacity returns true if a booking in this status occupies capacity
func (s BookingStatus) CountsAgainstCapacity() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// IsTerminal returns true if no further transitions are allowed
func (s BookingStatus) IsTerminal() bool {
	_, ok := bookingTransitions[s]
	return !ok
}

// CanTransitionTo reports whether the status may change to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking represents a reservation of a service for a time window
type Booking struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	VariantID  *int64
	LocationID *int64
	ResourceID *int64

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	StartAt     time.Time
	EndAt       time.Time
	Status      BookingStatus
	PeopleCount int

	// Pricing snapshot at the moment of booking
	TotalPriceCents int64
	DiscountCents   int64
	DiscountID      *int64
	Currency        string

	BookingCode string
	QRCodeData  string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsAgainstCapacity returns true if the booking occupies a slot
func (b *Booking) CountsAgainstCapacity() bool {
	return b.Status.CountsAgainstCapacity()
}

// Overlaps reports whether the booking intersects the half-open window [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// BookingsFilter filter for listing business bookings
type BookingsFilter struct {
	BusinessID      int64          // Required
	ServiceID       *int64         // Optional, nil - all services
	LocationID      *int64         // Optional, nil - all locations
	ResourceID      *int64         // Optional, nil - all resources
	From            *time.Time     // Bookings ending after From
	To              *time.Time     // Bookings starting before To
	Status          *BookingStatus // Optional
	IncludeInactive bool           // Include cancelled and no-show bookings
}
