// Package metrics provides Prometheus metrics for the scenario engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "cfpsim"
)

// Manager owns every Prometheus metric the service records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Simulation pipeline metrics.
	simulationsTotal   prometheus.Counter
	simulationErrors   *prometheus.CounterVec
	simulationDuration prometheus.Histogram
	snapshotDuration   prometheus.Histogram
	teamsRanked        prometheus.Gauge
	overridesApplied   prometheus.Counter
	degradedOverrides  prometheus.Counter

	// Season data metrics.
	seasonsCached prometheus.Gauge
	seasonLoads   prometheus.Counter

	// HTTP surface metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.simulationsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "simulations_total",
		Help: "Total number of scenario simulations run",
	})
	m.simulationErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "simulation_errors_total",
		Help: "Simulation failures by component",
	}, []string{"component"})
	m.simulationDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "simulation_duration_ms",
		Help:    "End-to-end scenario run duration in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.snapshotDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "snapshot_compute_duration_ms",
		Help:    "Batch resume computation duration in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.teamsRanked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "teams_ranked",
		Help: "Number of teams in the most recent full ranking",
	})
	m.overridesApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "overrides_applied_total",
		Help: "Total game result overrides applied across runs",
	})
	m.degradedOverrides = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "degraded_overrides_total",
		Help: "Overrides applied without a score margin",
	})
	m.seasonsCached = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "seasons_cached",
		Help: "Seasons held in the in-memory season cache",
	})
	m.seasonLoads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "season_loads_total",
		Help: "Season data loads served (cached or fresh)",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// RecordSimulation counts one completed scenario run and its duration.
func RecordSimulation(duration time.Duration) {
	if globalManager.enabled {
		globalManager.simulationsTotal.Inc()
		globalManager.simulationDuration.Observe(float64(duration.Milliseconds()))
	}
}

// RecordSimulationError counts one failed run, labeled by the failing
// component (ledger, resume, ranking, playoff, scorer, source).
func RecordSimulationError(component string) {
	if globalManager.enabled {
		globalManager.simulationErrors.WithLabelValues(component).Inc()
	}
}

// RecordSnapshotCompute observes one batch resume computation.
func RecordSnapshotCompute(duration time.Duration) {
	if globalManager.enabled {
		globalManager.snapshotDuration.Observe(float64(duration.Milliseconds()))
	}
}

// UpdateTeamsRanked sets the size of the most recent full ranking.
func UpdateTeamsRanked(count int) {
	if globalManager.enabled {
		globalManager.teamsRanked.Set(float64(count))
	}
}

// RecordOverrides counts overrides applied in a run and how many of them
// carried no margin.
func RecordOverrides(applied, degraded int) {
	if globalManager.enabled {
		globalManager.overridesApplied.Add(float64(applied))
		globalManager.degradedOverrides.Add(float64(degraded))
	}
}

// UpdateSeasonsCached sets the season cache size.
func UpdateSeasonsCached(count int) {
	if globalManager.enabled {
		globalManager.seasonsCached.Set(float64(count))
	}
}

// RecordSeasonLoad counts one season data load.
func RecordSeasonLoad() {
	if globalManager.enabled {
		globalManager.seasonLoads.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// GetRegistry returns the custom registry backing the global manager, for
// the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
