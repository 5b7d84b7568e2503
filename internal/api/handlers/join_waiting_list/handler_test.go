package join_waiting_list

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	got *models.JoinRequest
	err error
}

func (f *fakeService) Join(_ context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.EntryResponse{ID: 8, ServiceID: req.ServiceID, Status: "waiting"}, nil
}

const body = `{"businessId":1,"serviceId":5,"customerName":"Made","customerPhone":"+62811","preferredDate":"2026-03-05"}`

func post(svc WaitingListService, payload string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/waiting-list", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := post(svc, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, svc.got.PeopleCount)
	assert.Equal(t, "2026-03-05", svc.got.PreferredDate)
	assert.Contains(t, rec.Body.String(), `"status":"waiting"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, post(&fakeService{}, `{"businessId":`).Code)

	tests := []struct {
		err  error
		want int
	}{
		{err: waitinglist.ErrInvalidInput, want: http.StatusBadRequest},
		{err: waitinglist.ErrServiceNotFound, want: http.StatusNotFound},
		{err: waitinglist.ErrWaitingListDisabled, want: http.StatusConflict},
		{err: waitinglist.ErrInternal, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, post(&fakeService{err: tt.err}, body).Code, tt.err.Error())
	}
}
