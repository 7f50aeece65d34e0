package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	// level: project_goals, goal_tasks
	// result: ok, exceeded, not_found, error
	AllocationChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocation_checks_total",
			Help: "Weekly-hours allocation checks by hierarchy level and outcome",
		},
		[]string{"level", "result"},
	)

	RecurringCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recurring_completions_total",
			Help: "Completed chores and habits",
		},
		[]string{"kind"},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func IncrementAllocationCheck(level, result string) {
	AllocationChecks.WithLabelValues(level, result).Inc()
}

func IncrementRecurringCompletion(kind string) {
	RecurringCompletions.WithLabelValues(kind).Inc()
}
