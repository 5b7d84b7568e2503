package get_available_dates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

type fakeSchedules struct {
	schedules []*domain.OperatingSchedule
	err       error
	gotScope  domain.Scope
}

func (f *fakeSchedules) ListByScope(_ context.Context, scope domain.Scope) ([]*domain.OperatingSchedule, error) {
	f.gotScope = scope
	return f.schedules, f.err
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

func schedule(weekday time.Weekday) *domain.OperatingSchedule {
	return &domain.OperatingSchedule{Weekday: weekday, StartTime: "09:00", EndTime: "17:00", SlotSizeMinutes: 60, IsActive: true}
}

func TestExecute(t *testing.T) {
	repo := &fakeSchedules{schedules: []*domain.OperatingSchedule{schedule(time.Saturday), schedule(time.Sunday)}}
	uc := NewUseCase(repo, 4, 90, jakarta, logger.Discard())
	// 2026-03-01 00:30 WIB is still February 28 in UTC
	uc.timeProvider = fixedTime{now: time.Date(2026, 2, 28, 17, 30, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, LocationID: ptr.Ptr(int64(2))})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, jakarta),
		time.Date(2026, 3, 7, 0, 0, 0, 0, jakarta),
		time.Date(2026, 3, 8, 0, 0, 0, 0, jakarta),
		time.Date(2026, 3, 14, 0, 0, 0, 0, jakarta),
	}, resp.Dates)
	assert.Equal(t, domain.ScopeLocation, repo.gotScope.Level())
}

func TestExecute_NoSchedules(t *testing.T) {
	uc := NewUseCase(&fakeSchedules{}, 14, 90, jakarta, logger.Discard())

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Count: 30})
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestExecute_CountValidation(t *testing.T) {
	uc := NewUseCase(&fakeSchedules{}, 14, 90, jakarta, logger.Discard())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Count: 91})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, Count: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	uc := NewUseCase(&fakeSchedules{err: errors.New("timeout")}, 14, 90, jakarta, logger.Discard())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1})
	require.ErrorIs(t, err, ErrInternal)
}
