package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpsd/internal/models"
	"mpsd/internal/services"
	"mpsd/internal/structures"
)

func healthService() services.CollectorServiceInterface {
	conf := &structures.Config{
		Collector: structures.CollectorConfig{
			Interval: time.Minute,
			Games:    []structures.GameEndpoint{{ID: "game1"}},
		},
	}
	svc := services.NewCollectorService(conf)
	svc.RecordSnapshot(time.Now(), map[string]*models.GameStatus{
		"game1": {Players: []string{"Alice"}},
	})
	return svc
}

func TestHealth(t *testing.T) {
	hc := NewHealthController(healthService())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	hc.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(1), resp["snapshots"])
	assert.Equal(t, float64(1), resp["tracked_players"])
	assert.Equal(t, float64(1), resp["active_sessions"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(healthService())

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	w := httptest.NewRecorder()
	hc.Health(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
