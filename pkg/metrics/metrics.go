package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Dashboard metrics
	DatasetRowsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of trip records loaded into memory",
		},
		[]string{"service", "source"},
	)

	SnapshotsComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_snapshots_computed_total",
			Help: "Total number of dashboard snapshots computed",
		},
		[]string{"service"},
	)

	SnapshotComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_snapshot_compute_duration_seconds",
			Help:    "Time spent computing a dashboard snapshot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_exports_total",
			Help: "Total number of CSV exports served",
		},
		[]string{"service", "status"},
	)

	SessionChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_checks_total",
			Help: "Total number of access gate checks",
		},
		[]string{"service", "result"},
	)

	WebSocketConnectionsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_connections_total",
			Help: "Current number of active WebSocket connections",
		},
		[]string{"service"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"service", "operation", "status"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordSnapshot records a computed dashboard snapshot
func RecordSnapshot(service string, duration time.Duration) {
	SnapshotsComputedTotal.WithLabelValues(service).Inc()
	SnapshotComputeDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordExport records a CSV export attempt
func RecordExport(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ExportsTotal.WithLabelValues(service, status).Inc()
}

// RecordSessionCheck records an access gate decision
func RecordSessionCheck(service string, granted bool) {
	result := "denied"
	if granted {
		result = "granted"
	}
	SessionChecksTotal.WithLabelValues(service, result).Inc()
}

// RecordDatabaseQuery records database query metrics
func RecordDatabaseQuery(service, operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseQueriesTotal.WithLabelValues(service, operation, status).Inc()
	DatabaseQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}
