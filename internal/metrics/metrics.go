package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations tracks store mutations per action
	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kyt_store_mutations_total",
			Help: "Total number of store mutations",
		},
		[]string{"action"},
	)

	// HTTPRequests tracks API requests per route and status code
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kyt_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code"},
	)

	// HTTPLatency tracks API request latency
	HTTPLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kyt_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// DatasetItems tracks the size of each store collection
	DatasetItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kyt_dataset_items",
			Help: "Number of items held per collection",
		},
		[]string{"collection"},
	)

	// DBPoolUsage tracks the share of the Postgres pool in use
	DBPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kyt_db_pool_usage",
			Help: "Percentage of open Postgres connections out of the pool maximum",
		},
	)

	// AuditPublishErrors tracks failed audit deliveries
	AuditPublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kyt_audit_publish_errors_total",
			Help: "Total number of audit entries that failed to publish",
		},
	)
)
