package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ReportsTotal counts intake requests by outcome.
	ReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguardian",
		Subsystem: "intake",
		Name:      "reports_total",
		Help:      "Total number of intake requests processed, labeled by outcome.",
	}, []string{"outcome"})

	// CapabilityFallbacksTotal counts generative-capability calls that fell
	// back to their deterministic default, labeled by agent.
	CapabilityFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguardian",
		Subsystem: "intake",
		Name:      "capability_fallbacks_total",
		Help:      "Total number of capability-adapter calls that used their fallback, labeled by agent.",
	}, []string{"agent"})

	// SinkErrorsTotal counts best-effort sink failures, labeled by sink.
	SinkErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguardian",
		Subsystem: "intake",
		Name:      "sink_errors_total",
		Help:      "Total number of best-effort sink dispatch failures, labeled by sink.",
	}, []string{"sink"})

	// DedupSkippedTotal counts duplicate checks skipped because the tracking
	// table could not be fetched or lacked the expected columns.
	DedupSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cityguardian",
		Subsystem: "intake",
		Name:      "dedup_skipped_total",
		Help:      "Total number of duplicate checks skipped due to tracking-table fetch or schema problems.",
	})

	// IntakeDurationSeconds is end-to-end time per intake request.
	IntakeDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cityguardian",
		Subsystem: "intake",
		Name:      "duration_seconds",
		Help:      "End-to-end time to process one intake request, labeled by outcome.",
		// Dominated by outbound capability calls; coarse buckets keep
		// cardinality down.
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60},
	}, []string{"outcome"})
)

// Register registers intake metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ReportsTotal,
			CapabilityFallbacksTotal,
			SinkErrorsTotal,
			DedupSkippedTotal,
			IntakeDurationSeconds,
		)
	})
}
