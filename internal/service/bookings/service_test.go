package bookings

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeRepo struct {
	bookings  map[int64]*domain.Booking
	gotFilter domain.BookingsFilter
	updated   map[int64]domain.BookingStatus
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{bookings: map[int64]*domain.Booking{}, updated: map[int64]domain.BookingStatus{}}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.BookingCode == code {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.gotFilter = filter
	return []*domain.Booking{r.bookings[1]}, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.updated[id] = status
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		BusinessID:  1,
		ServiceID:   5,
		StartAt:     time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC),
		Status:      status,
		PeopleCount: 2,
		Currency:    "IDR",
		BookingCode: "GLW-20260302-A1B2",
		QRCodeData:  "https://glow.example/checkin/GLW-20260302-A1B2",
	}
}

func TestGetByID(t *testing.T) {
	s := NewService(newFakeRepo(booking(domain.StatusConfirmed)), inlineTx{}, jakarta, logger.Discard())

	resp, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:30", resp.EndTime)

	_, err = s.GetByID(context.Background(), 2)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByCode_Normalizes(t *testing.T) {
	s := NewService(newFakeRepo(booking(domain.StatusConfirmed)), inlineTx{}, jakarta, logger.Discard())

	resp, err := s.GetByCode(context.Background(), " glw-20260302-a1b2 ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = s.GetByCode(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestList(t *testing.T) {
	repo := newFakeRepo(booking(domain.StatusConfirmed))
	s := NewService(repo, inlineTx{}, jakarta, logger.Discard())

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, jakarta)
	to := from.AddDate(0, 0, 1)
	resp, err := s.List(context.Background(), &models.ListBookingsRequest{
		BusinessID: 1,
		From:       &from,
		To:         &to,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)

	_, err = s.List(context.Background(), &models.ListBookingsRequest{BusinessID: 1, From: &to, To: &from})
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = s.List(context.Background(), &models.ListBookingsRequest{BusinessID: 1, Status: ptr.Ptr("done")})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{name: "pay", from: domain.StatusPendingPayment, to: "confirmed"},
		{name: "complete", from: domain.StatusConfirmed, to: "completed"},
		{name: "cancel confirmed", from: domain.StatusConfirmed, to: "cancelled"},
		{name: "terminal", from: domain.StatusCompleted, to: "cancelled", wantErr: ErrInvalidTransition},
		{name: "skip payment", from: domain.StatusPaymentFailed, to: "confirmed", wantErr: ErrInvalidTransition},
		{name: "unknown", from: domain.StatusConfirmed, to: "archived", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(booking(tt.from))
			s := NewService(repo, inlineTx{}, jakarta, logger.Discard())

			resp, err := s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.updated[1])
		})
	}
}

func TestQRCode(t *testing.T) {
	s := NewService(newFakeRepo(booking(domain.StatusConfirmed)), inlineTx{}, jakarta, logger.Discard())

	png, err := s.QRCode(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = s.QRCode(context.Background(), 1, 4096)
	require.ErrorIs(t, err, ErrInvalidInput)
}
