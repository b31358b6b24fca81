package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpsd/internal/structures"
)

// --- minimal mock for StoreCounts ---

type metricsTestCounts struct{}

func (m *metricsTestCounts) SnapshotCount() int      { return 5 }
func (m *metricsTestCounts) TrackedPlayers() int     { return 3 }
func (m *metricsTestCounts) ActiveSessionCount() int { return 2 }

func swapRegistry(t *testing.T) {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestCounts{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveCycleDuration(time.Millisecond)
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetPlayersOnline("pacific-rift", 4)
	m.SetUniquePlayers(4)
	m.AddSessionsCommitted(1)
	m.IncNotification("new")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	swapRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestCounts{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")

	// These should not panic
	m.IncRequestsTotal("/players/top", 200)
	m.IncRequestsTotal("/players/top", 404)
	m.ObserveRequestDuration("/players/top", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveCycleDuration(10 * time.Millisecond)
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.SetPlayersOnline("pacific-rift", 8)
	m.SetUniquePlayers(8)
	m.AddSessionsCommitted(3)
	m.IncNotification("reopened")
}

func TestMetricsProvider_GaugeFuncsReadCounts(t *testing.T) {
	swapRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf, &metricsTestCounts{})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, fam := range families {
		if len(fam.GetMetric()) == 1 && fam.GetMetric()[0].GetGauge() != nil {
			values[fam.GetName()] = fam.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 5.0, values["mpsd_snapshots_retained"])
	assert.Equal(t, 3.0, values["mpsd_players_tracked"])
	assert.Equal(t, 2.0, values["mpsd_sessions_active"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
