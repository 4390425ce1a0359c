// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipehub_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipehub_store_query_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_store_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation"},
	)

	RatingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_ratings_submitted_total",
			Help: "Ratings accepted, split by new entries and replacements",
		},
		[]string{"kind"}, // "new", "replaced"
	)

	OptimisticRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_optimistic_retries_total",
			Help: "Recipe updates retried after a concurrent modification",
		},
		[]string{"operation"},
	)

	ViewIncrementFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipehub_view_increment_failures_total",
			Help: "View counter increments that failed and were dropped",
		},
	)

	MealPlanUpserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipehub_meal_plan_upserts_total",
			Help: "Total number of meal plan saves",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipehub_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStoreOp observes one store call; a non-nil err also bumps the error counter.
func RecordStoreOp(operation string, start time.Time, err error) {
	StoreQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}
