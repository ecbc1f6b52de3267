// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits and misses by entity.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_cache_requests_total",
		Help: "Cache-aside lookups by entity and outcome",
	}, []string{"entity", "outcome"})

	// NotificationsRecorded counts notifications persisted by kind.
	NotificationsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_notifications_recorded_total",
		Help: "Total number of notifications persisted by kind",
	}, []string{"kind"})

	// FollowEdgeChanges counts follow graph mutations by direction.
	FollowEdgeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_edge_changes_total",
		Help: "Follow graph mutations by action (follow/unfollow)",
	}, []string{"action"})
)
