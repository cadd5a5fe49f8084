// Package metrics provides Prometheus metrics for the swing-analysis client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the swing-analysis client.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Submission lifecycle
	submissionsStarted   prometheus.Counter
	submissionsSucceeded prometheus.Counter
	submissionsFailed    prometheus.Counter
	submissionsDiscarded prometheus.Counter

	// Remote service exchange
	analyzeLatency  prometheus.Histogram
	transportErrors *prometheus.CounterVec
	healthChecks    *prometheus.CounterVec

	// Result hand-off and preview lifetime
	handoffsDelivered prometheus.Counter
	handoffsMissed    prometheus.Counter
	activePreviews    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swingmatch",
		subsystem:        "client",
		histogramBuckets: analyzeLatencyBuckets(),
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// analyzeLatencyBuckets covers the very wide latency range of remote video
// analysis: sub-second health probes up to the 300s request deadline.
func analyzeLatencyBuckets() []float64 {
	return []float64{100, 500, 1_000, 5_000, 15_000, 30_000, 60_000, 120_000, 300_000}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_started_total",
		Help:      "Total number of swing submissions sent to the analysis service",
	})

	m.submissionsSucceeded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_succeeded_total",
		Help:      "Total number of submissions that produced an analysis result",
	})

	m.submissionsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_failed_total",
		Help:      "Total number of submissions that ended in a transport failure",
	})

	m.submissionsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_discarded_total",
		Help:      "Total number of in-flight results discarded by workflow teardown",
	})

	m.analyzeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyze_latency_milliseconds",
		Help:      "Histogram of /api/analyze round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.transportErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "transport_errors_total",
			Help:      "Total number of transport failures by kind (request, status, decode)",
		},
		[]string{"kind"},
	)

	m.healthChecks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "health_checks_total",
			Help:      "Total number of health probes by outcome",
		},
		[]string{"outcome"},
	)

	m.handoffsDelivered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handoffs_delivered_total",
		Help:      "Total number of results taken by the result view",
	})

	m.handoffsMissed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handoffs_missed_total",
		Help:      "Total number of result-view entries with no pending hand-off",
	})

	m.activePreviews = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_previews",
		Help:      "Current number of unreleased local video previews",
	})
}

// Package-level recorders against the global manager.

// RecordSubmissionStarted increments the started-submissions counter.
func RecordSubmissionStarted() {
	if globalManager.enabled {
		globalManager.submissionsStarted.Inc()
	}
}

// RecordSubmissionSucceeded increments the succeeded-submissions counter.
func RecordSubmissionSucceeded() {
	if globalManager.enabled {
		globalManager.submissionsSucceeded.Inc()
	}
}

// RecordSubmissionFailed increments the failed-submissions counter.
func RecordSubmissionFailed() {
	if globalManager.enabled {
		globalManager.submissionsFailed.Inc()
	}
}

// RecordSubmissionDiscarded counts a result thrown away by teardown.
func RecordSubmissionDiscarded() {
	if globalManager.enabled {
		globalManager.submissionsDiscarded.Inc()
	}
}

// RecordAnalyzeLatency observes one analyze round trip in milliseconds.
func RecordAnalyzeLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.analyzeLatency.Observe(latencyMs)
	}
}

// RecordTransportError counts a transport failure by kind.
func RecordTransportError(kind string) {
	if globalManager.enabled {
		globalManager.transportErrors.WithLabelValues(kind).Inc()
	}
}

// RecordHealthCheck counts a health probe by outcome ("ok" or "failed").
func RecordHealthCheck(outcome string) {
	if globalManager.enabled {
		globalManager.healthChecks.WithLabelValues(outcome).Inc()
	}
}

// RecordHandoffDelivered counts a result picked up by the result view.
func RecordHandoffDelivered() {
	if globalManager.enabled {
		globalManager.handoffsDelivered.Inc()
	}
}

// RecordHandoffMissed counts a result-view entry with nothing pending.
func RecordHandoffMissed() {
	if globalManager.enabled {
		globalManager.handoffsMissed.Inc()
	}
}

// IncActivePreviews tracks a newly created preview file.
func IncActivePreviews() {
	if globalManager.enabled {
		globalManager.activePreviews.Inc()
	}
}

// DecActivePreviews tracks a released preview file.
func DecActivePreviews() {
	if globalManager.enabled {
		globalManager.activePreviews.Dec()
	}
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
