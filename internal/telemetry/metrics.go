package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bank_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Transfer metrics
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_transfers_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"status"}, // success, failed, insufficient_funds
	)

	TransferAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bank_transfer_amount",
			Help:    "Transfer amount distribution",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	TransferDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bank_transfer_duration_seconds",
			Help:    "Time to complete a transfer including retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	TransferConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_transfer_revision_conflicts_total",
			Help: "Total number of optimistic-concurrency conflicts during transfers",
		},
	)

	// Auth metrics
	AuthRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bank_auth_rejections_total",
			Help: "Total number of requests rejected by bearer auth",
		},
	)

	// Event publishing metrics
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bank_events_published_total",
			Help: "Total number of events published to the message bus",
		},
		[]string{"subject"},
	)
)
