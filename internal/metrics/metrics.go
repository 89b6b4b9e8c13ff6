// Package metrics provides Prometheus metrics for the funding dashboard
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fundboard_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_rate_limit_rejections_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	SuspiciousRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_suspicious_requests_total",
			Help: "Requests flagged by the suspicious-pattern detector",
		},
	)

	// Dataset metrics
	DatasetLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_dataset_loads_total",
			Help: "Total number of dataset load attempts",
		},
		[]string{"status"},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fundboard_dataset_load_duration_seconds",
			Help:    "Time taken to parse and sort the funding dataset",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	DatasetRounds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fundboard_dataset_rounds",
			Help: "Number of funding rounds in the loaded dataset",
		},
	)

	DatasetCompanies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fundboard_dataset_companies",
			Help: "Number of distinct companies in the loaded dataset",
		},
	)

	// Summary metrics
	SummariesComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_summaries_computed_total",
			Help: "Company summaries computed (cache misses included)",
		},
	)

	SummaryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_summary_cache_hits_total",
			Help: "Company summaries served from the LRU cache",
		},
	)

	SummaryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fundboard_summary_cache_misses_total",
			Help: "Company summary cache lookups that missed",
		},
	)

	// Logo metrics
	LogoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fundboard_logo_lookups_total",
			Help: "Logo file lookups by result",
		},
		[]string{"result"},
	)
)

// Timer helps track operation durations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDatasetLoad records the dataset load duration
func (t *Timer) ObserveDatasetLoad() {
	DatasetLoadDuration.Observe(time.Since(t.start).Seconds())
}

// ObserveHTTPRequest records the HTTP request duration
func (t *Timer) ObserveHTTPRequest(route, method string) {
	HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(t.start).Seconds())
}
