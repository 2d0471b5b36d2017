// Package metrics provides Prometheus metrics recording for internal packages.
// This package exists to avoid import cycles between database and middleware packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// dbQueryDuration tracks database query duration in seconds
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tickerwire_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// dbQueryTotal tracks total database queries
	dbQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerwire_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation"},
	)

	// dbQueryErrors tracks database query errors
	dbQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerwire_db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation"},
	)

	// dbSlowQueries tracks slow database queries
	dbSlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerwire_db_slow_queries_total",
			Help: "Total number of slow database queries (>100ms)",
		},
		[]string{"operation"},
	)

	// schemaCacheMisses tracks lazy schema discovery queries by kind
	schemaCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickerwire_schema_cache_misses_total",
			Help: "Total number of schema cache misses triggering discovery",
		},
		[]string{"kind"},
	)
)

// RecordDBQuery records database query metrics
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryTotal.WithLabelValues(operation).Inc()
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())

	// Track slow queries
	if duration > 100*time.Millisecond {
		dbSlowQueries.WithLabelValues(operation).Inc()
	}
}

// RecordDBQueryError records a failed database query
func RecordDBQueryError(operation string) {
	dbQueryErrors.WithLabelValues(operation).Inc()
}

// RecordSchemaCacheMiss records a schema cache miss for one metadata kind
// (tables, columns, primary_key)
func RecordSchemaCacheMiss(kind string) {
	schemaCacheMisses.WithLabelValues(kind).Inc()
}
