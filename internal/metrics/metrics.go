// Package metrics defines Prometheus metrics for leadvault.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadvault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadvault_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadvault_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadvault_audit_queue_depth",
			Help: "Current audit worker queue depth",
		},
	)

	VersionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadvault_version_conflicts_total",
			Help: "Total optimistic concurrency conflicts on buyer updates",
		},
	)

	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadvault_import_rows_total",
			Help: "Total CSV import rows by outcome",
		},
		[]string{"outcome"},
	)

	BuyerCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadvault_buyers_total",
			Help: "Total buyer lead count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		AuditQueueDepth, VersionConflicts, ImportRows,
		BuyerCount,
	)
}
