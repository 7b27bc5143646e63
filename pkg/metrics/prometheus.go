package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder tracks store query activity with Prometheus.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	queryErrors   *prometheus.CounterVec
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	queryDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crossmarket_queries_total",
				Help: "Total number of store queries executed",
			},
			[]string{"operation"},
		),
		queryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crossmarket_query_errors_total",
				Help: "Total number of failed store queries",
			},
			[]string{"operation"},
		),
		cacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crossmarket_query_cache_hits_total",
				Help: "Memoized query results served without touching the store",
			},
		),
		cacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crossmarket_query_cache_misses_total",
				Help: "Query results computed against the store",
			},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crossmarket_query_duration_seconds",
				Help:    "Duration of store queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordQuery records one executed query for an operation.
func (r *Recorder) RecordQuery(op string) {
	r.queriesTotal.WithLabelValues(op).Inc()
}

// RecordQueryError records a failed query.
func (r *Recorder) RecordQueryError(op string) {
	r.queryErrors.WithLabelValues(op).Inc()
}

// RecordCacheHit records a memoization hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheHits.Inc()
}

// RecordCacheMiss records a memoization miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheMisses.Inc()
}

// RecordQueryDuration records query latency in seconds.
func (r *Recorder) RecordQueryDuration(op string, seconds float64) {
	r.queryDuration.WithLabelValues(op).Observe(seconds)
}
