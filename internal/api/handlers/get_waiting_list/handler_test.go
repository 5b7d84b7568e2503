package get_waiting_list

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) (*models.EntryListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.EntryListResponse{Entries: []models.EntryResponse{{ID: 1}}}, nil
}

func serve(svc WaitingListService, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/businesses/{businessId}/waiting-list", NewHandler(svc, logger.Discard()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/businesses/3/waiting-list?serviceId=5&status=waiting")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.got.BusinessID)
	require.NotNil(t, svc.got.ServiceID)
	assert.Equal(t, int64(5), *svc.got.ServiceID)
	assert.Equal(t, "waiting", *svc.got.Status)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/businesses/0/waiting-list").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/businesses/3/waiting-list?serviceId=x").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: waitinglist.ErrInvalidInput}, "/api/v1/businesses/3/waiting-list?status=gone").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: waitinglist.ErrInternal}, "/api/v1/businesses/3/waiting-list").Code)
}
