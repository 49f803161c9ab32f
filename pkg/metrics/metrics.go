package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	TextGenCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "textgen_call_latency_ms",
			Help:    "Milestone text generator call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"endpoint", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	PlanEventCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_event_count",
			Help: "Total number of plan update events applied",
		},
		[]string{"kind"}, // task_completed, stress_mode, profile_change, deadline_approaching, chat_request
	)

	DailyTaskSelectedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_task_selected_count",
			Help: "Total number of daily task recommendations produced",
		},
		[]string{"mode"}, // daily, stress
	)

	RoadmapCreatedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roadmap_created_count",
			Help: "Total number of roadmaps created from the catalog",
		},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_count",
			Help: "Total number of queries over the slow-query threshold",
		},
	)
)

func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func RecordTextGenCallLatency(endpoint, status string, duration time.Duration) {
	TextGenCallLatency.WithLabelValues(endpoint, status).Observe(float64(duration.Milliseconds()))
}

func RecordDBQueryDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func IncrementPlanEvent(kind string) {
	PlanEventCount.WithLabelValues(kind).Inc()
}

func IncrementDailyTaskSelected(mode string) {
	DailyTaskSelectedCount.WithLabelValues(mode).Inc()
}

func IncrementRoadmapCreated() {
	RoadmapCreatedCount.Inc()
}

func IncrementSlowQuery() {
	SlowQueryCount.Inc()
}
