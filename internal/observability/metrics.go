package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ResolverRequests counts identity resolver calls by operation and outcome.
	ResolverRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_identity_resolver_requests_total",
		Help: "Total identity resolver requests by operation and outcome",
	}, []string{"operation", "outcome"})

	// FeedAssemblyLatency records end-to-end feed assembly latency.
	FeedAssemblyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quill_feed_assembly_latency_seconds",
		Help:    "Feed assembly latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// NotificationsPublished counts fire-and-forget notification publishes by event.
	NotificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_notifications_published_total",
		Help: "Total notification events published by event type",
	}, []string{"event"})
)
