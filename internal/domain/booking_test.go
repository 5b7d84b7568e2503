package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusPendingPayment, true},
		{StatusPending, StatusConfirmed, true},
		{StatusPendingPayment, StatusConfirmed, true},
		{StatusPendingPayment, StatusPaymentFailed, true},
		{StatusPendingPayment, StatusPaymentExpired, true},
		{StatusPaymentFailed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPaymentExpired, StatusPendingPayment, false},
		{StatusPaymentFailed, StatusPendingPayment, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow, StatusPaymentExpired} {
		assert.True(t, s.IsTerminal(), s)
	}
	for _, s := range []BookingStatus{StatusPending, StatusPendingPayment, StatusPaymentFailed, StatusConfirmed} {
		assert.False(t, s.IsTerminal(), s)
	}
}

func TestBookingStatus_CountsAgainstCapacity(t *testing.T) {
	assert.False(t, StatusCancelled.CountsAgainstCapacity())
	assert.False(t, StatusNoShow.CountsAgainstCapacity())
	assert.True(t, StatusPendingPayment.CountsAgainstCapacity())
	assert.True(t, StatusConfirmed.CountsAgainstCapacity())
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, status)

	_, err = ParseBookingStatus("cancelled_by_user")
	require.ErrorIs(t, err, ErrInvalidBookingStatus)
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := &Booking{StartAt: base, EndAt: base.Add(time.Hour)}

	assert.True(t, b.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, b.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)))
	assert.False(t, b.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)), "touching end")
	assert.False(t, b.Overlaps(base.Add(-time.Hour), base), "touching start")
}
