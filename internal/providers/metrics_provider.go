package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mpsd/internal/structures"
)

// StoreCounts exposes live store sizes for the gauge funcs. Declared
// here so the metrics provider never imports the service that
// implements it.
type StoreCounts interface {
	SnapshotCount() int
	TrackedPlayers() int
	ActiveSessionCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveCycleDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetPlayersOnline(game string, count int)
	SetUniquePlayers(count int)
	AddSessionsCommitted(count int)
	IncNotification(kind string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	cycleDuration       prometheus.Histogram
	persistenceDuration prometheus.Histogram
	playersOnline       *prometheus.GaugeVec
	uniquePlayers       prometheus.Gauge
	sessionsCommitted   prometheus.Counter
	notificationsTotal  *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveCycleDuration(duration time.Duration) {
	m.cycleDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetPlayersOnline(game string, count int) {
	m.playersOnline.WithLabelValues(game).Set(float64(count))
}

func (m *MetricsProvider) SetUniquePlayers(count int) {
	m.uniquePlayers.Set(float64(count))
}

func (m *MetricsProvider) AddSessionsCommitted(count int) {
	m.sessionsCommitted.Add(float64(count))
}

func (m *MetricsProvider) IncNotification(kind string) {
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, counts StoreCounts) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mpsd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mpsd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mpsd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mpsd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		cycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mpsd_cycle_duration_seconds",
			Help:    "Duration of collection cycles in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mpsd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		playersOnline: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mpsd_players_online",
			Help: "Players online per game in the latest snapshot",
		}, []string{"game"}),

		uniquePlayers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mpsd_unique_players_online",
			Help: "Deduplicated players online in the latest snapshot",
		}),

		sessionsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mpsd_sessions_committed_total",
			Help: "Total number of committed play sessions",
		}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mpsd_lobby_notifications_total",
			Help: "Total number of fired lobby notifications",
		}, []string{"kind"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mpsd_snapshots_retained",
		Help: "Number of snapshots in the bounded history",
	}, func() float64 {
		return float64(counts.SnapshotCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mpsd_players_tracked",
		Help: "Number of players with statistics records",
	}, func() float64 {
		return float64(counts.TrackedPlayers())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mpsd_sessions_active",
		Help: "Number of currently open player sessions",
	}, func() float64 {
		return float64(counts.ActiveSessionCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveCycleDuration(_ time.Duration)             {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetPlayersOnline(_ string, _ int)                 {}
func (n *noopMetrics) SetUniquePlayers(_ int)                           {}
func (n *noopMetrics) AddSessionsCommitted(_ int)                       {}
func (n *noopMetrics) IncNotification(_ string)                         {}
