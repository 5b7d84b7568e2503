package waitinglist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	waitingListRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

var now = time.Date(2026, 3, 2, 8, 0, 0, 0, jakarta)

type fakeRepo struct {
	entries   map[int64]*domain.WaitingListEntry
	gotFilter waitingListRepo.Filter
	invitedAt *time.Time
}

func (r *fakeRepo) Create(_ context.Context, e *domain.WaitingListEntry) (*domain.WaitingListEntry, error) {
	e.ID = int64(len(r.entries) + 1)
	r.entries[e.ID] = e
	return e, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.WaitingListEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, waitingListRepo.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter waitingListRepo.Filter) ([]*domain.WaitingListEntry, error) {
	r.gotFilter = filter
	return nil, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.WaitingListStatus, invitedAt *time.Time) error {
	r.entries[id].Status = status
	r.invitedAt = invitedAt
	return nil
}

type fakeCatalog struct{ service *domain.Service }

func (f *fakeCatalog) Resolve(context.Context, int64, int64, *int64) (*catalog.Offer, error) {
	if f.service == nil {
		return nil, catalog.ErrServiceNotFound
	}
	return &catalog.Offer{Service: f.service}, nil
}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

func newService(repo *fakeRepo, service *domain.Service) *Service {
	s := NewService(repo, &fakeCatalog{service: service}, jakarta, logger.Discard())
	s.timeProvider = fixedTime{now: now}
	return s
}

func joinRequest() *models.JoinRequest {
	return &models.JoinRequest{
		BusinessID:    1,
		ServiceID:     5,
		CustomerName:  "Made",
		CustomerPhone: "+628111222333",
		PreferredDate: "2026-03-04",
		PreferredTime: ptr.Ptr("15:00"),
		PeopleCount:   2,
	}
}

func TestJoin(t *testing.T) {
	repo := &fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}
	s := newService(repo, &domain.Service{ID: 5, WaitingListEnabled: true})

	resp, err := s.Join(context.Background(), joinRequest())
	require.NoError(t, err)

	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, "2026-03-04", resp.PreferredDate)
	require.NotNil(t, resp.PreferredTime)
	assert.Equal(t, "15:00", *resp.PreferredTime)
}

func TestJoin_Rejected(t *testing.T) {
	t.Run("waiting list disabled", func(t *testing.T) {
		s := newService(&fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}, &domain.Service{ID: 5})
		_, err := s.Join(context.Background(), joinRequest())
		require.ErrorIs(t, err, ErrWaitingListDisabled)
	})

	t.Run("unknown service", func(t *testing.T) {
		s := newService(&fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}, nil)
		_, err := s.Join(context.Background(), joinRequest())
		require.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		s := newService(&fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}, &domain.Service{ID: 5, WaitingListEnabled: true})
		req := joinRequest()
		req.PreferredDate = "2026-03-01"
		_, err := s.Join(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad preferred time", func(t *testing.T) {
		s := newService(&fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}, &domain.Service{ID: 5, WaitingListEnabled: true})
		req := joinRequest()
		req.PreferredTime = ptr.Ptr("3pm")
		_, err := s.Join(context.Background(), req)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{entries: map[int64]*domain.WaitingListEntry{
		1: {ID: 1, BusinessID: 1, ServiceID: 5, Status: domain.WaitingListWaiting},
	}}
	s := newService(repo, nil)

	resp, err := s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "invited"})
	require.NoError(t, err)
	assert.Equal(t, "invited", resp.Status)
	require.NotNil(t, repo.invitedAt)
	assert.Equal(t, now, *repo.invitedAt)

	resp, err = s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "converted"})
	require.NoError(t, err)
	assert.Equal(t, "converted", resp.Status)
	assert.Equal(t, now, *repo.invitedAt)

	_, err = s.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "waiting"})
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.UpdateStatus(context.Background(), 2, &models.UpdateStatusRequest{Status: "cancelled"})
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestList_StatusFilter(t *testing.T) {
	repo := &fakeRepo{entries: map[int64]*domain.WaitingListEntry{}}
	s := newService(repo, nil)

	resp, err := s.List(context.Background(), &models.ListRequest{BusinessID: 1, Status: ptr.Ptr("waiting")})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.WaitingListWaiting, *repo.gotFilter.Status)

	_, err = s.List(context.Background(), &models.ListRequest{BusinessID: 1, Status: ptr.Ptr("gone")})
	require.ErrorIs(t, err, ErrInvalidInput)
}
