package membership

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second, logger.Discard())
}

func TestClient_GetActiveTier(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/businesses/1/memberships", r.URL.Path)
		assert.Equal(t, "+628123456789", r.URL.Query().Get("phone"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Membership{
			ID:            10,
			BusinessID:    1,
			CustomerPhone: "+628123456789",
			TierID:        2,
			TierName:      "Gold",
			Status:        StatusActive,
		})
	})

	tier, err := client.GetActiveTier(context.Background(), 1, "+628123456789", now)
	require.NoError(t, err)
	require.NotNil(t, tier)
	assert.Equal(t, int64(2), *tier)
}

func TestClient_GetActiveTier_Expired(t *testing.T) {
	expired := now.Add(-time.Hour)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Membership{ID: 10, TierID: 2, Status: StatusActive, ExpiresAt: &expired})
	})

	tier, err := client.GetActiveTier(context.Background(), 1, "+628123456789", now)
	require.NoError(t, err)
	assert.Nil(t, tier)
}

func TestClient_GetActiveTier_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	tier, err := client.GetActiveTier(context.Background(), 1, "+628123456789", now)
	require.NoError(t, err)
	assert.Nil(t, tier)
}

func TestClient_GetActiveTier_Degraded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	tier, err := client.GetActiveTier(context.Background(), 1, "+628123456789", now)
	require.ErrorIs(t, err, ErrServiceDegraded)
	assert.Nil(t, tier)
}

func TestClient_GetMembership_BadBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.GetMembership(context.Background(), 1, "+628123456789")
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "****6789", maskPhone("+628123456789"))
	assert.Equal(t, "****", maskPhone("12"))
}
