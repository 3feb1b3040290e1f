package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ValidationRejections counts field assignments rejected by a validator.
	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_validation_rejections_total",
		Help: "Total number of rejected field assignments by entity, field and kind",
	}, []string{"entity", "field", "kind"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// NameLockWait records how long writers waited for a per-name lock.
	NameLockWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_name_lock_wait_seconds",
		Help:    "Time spent acquiring author name locks",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"backend", "outcome"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// RecordRejection increments the rejection counter for a single field.
func RecordRejection(entity, field, kind string) {
	ValidationRejections.WithLabelValues(entity, field, kind).Inc()
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
