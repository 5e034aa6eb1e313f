package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation label values
const (
	OpCoachingBrief  = "coaching_brief"
	OpMealSuggestion = "meal_suggestion"
	OpPlanGeneration = "plan_generation"
)

// Outcome label values
const (
	OutcomeAI           = "ai"
	OutcomeFallback     = "fallback"
	OutcomeError        = "error"
	OutcomeUnconfigured = "unconfigured"
)

var (
	CompletionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Completion service invocations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "completion_duration_seconds",
			Help:    "Completion service call latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
