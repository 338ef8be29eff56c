// Package observability holds the Prometheus metric inventory and the
// OpenTelemetry tracer setup for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostViewsRecorded counts first-time views recorded per post, i.e. new
	// engagement tracker rows. Repeat views by the same user do not count.
	PostViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamup_post_views_recorded_total",
		Help: "Total number of first-time post views recorded",
	})

	// LikeToggles counts like toggles by resulting direction (activate/deactivate).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamup_like_toggles_total",
		Help: "Total number of like toggles by resulting direction",
	}, []string{"direction"})

	// RecommendationRequests counts recommendation panel requests.
	RecommendationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamup_recommendation_requests_total",
		Help: "Total number of recommendation requests",
	})

	// RecommendationFallbacks counts requests that needed the broadened,
	// tag-unrestricted second query to fill the panel.
	RecommendationFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamup_recommendation_fallbacks_total",
		Help: "Total number of recommendation requests that used fallback broadening",
	})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teamup_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "teamup_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
