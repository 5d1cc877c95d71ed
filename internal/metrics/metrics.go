package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prompt service metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prompts",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prompts",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// StoreOperationsTotal counts record and blob store calls by outcome
	// ("ok", "not_found", "error").
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prompts",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total record and blob store operations",
		},
		[]string{"store", "operation", "status"},
	)

	PartialDeletesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prompts",
			Subsystem: "store",
			Name:      "partial_deletes_total",
			Help:      "Deletes where the media was removed but the record was not",
		},
	)

	CleanupRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prompts",
			Subsystem: "cleanup",
			Name:      "records_total",
			Help:      "Pending record deletions processed by the cleanup job",
		},
		[]string{"status"},
	)

	PendingDeletions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "prompts",
			Subsystem: "cleanup",
			Name:      "pending_deletions",
			Help:      "Records waiting for deletion after their media was removed",
		},
	)
)
