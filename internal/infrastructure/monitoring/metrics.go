// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger *zap.Logger

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	recipesCreatedTotal       prometheus.Counter
	mealPlansCreatedTotal     prometheus.Counter
	shoppingListsGenerated    *prometheus.CounterVec
	shoppingListItemsEmitted  prometheus.Histogram
	generationDuration        prometheus.Histogram

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		logger: logger,

		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		recipesCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_created_total",
				Help: "Total number of recipes created",
			},
		),
		mealPlansCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "meal_plans_created_total",
				Help: "Total number of meal plans created",
			},
		),
		shoppingListsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopping_lists_generated_total",
				Help: "Total number of shopping list generation runs",
			},
			[]string{"outcome"},
		),
		shoppingListItemsEmitted: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_items_emitted",
				Help:    "Number of consolidated items per generated shopping list",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		generationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shopping_list_generation_duration_seconds",
				Help:    "Duration of shopping list generation runs",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
		),

		cacheOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Total number of cache operations",
			},
			[]string{"operation", "result"},
		),
	}
}

// RecordHTTPRequest records one served HTTP request
func (m *MetricsCollector) RecordHTTPRequest(method, path, statusCode string, durationSeconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, statusCode).Observe(durationSeconds)
}

// RequestStarted marks a request entering the handler chain
func (m *MetricsCollector) RequestStarted() {
	m.httpRequestsInFlight.Inc()
}

// RequestFinished marks a request leaving the handler chain
func (m *MetricsCollector) RequestFinished() {
	m.httpRequestsInFlight.Dec()
}

// RecordRecipeCreated increments the recipe creation counter
func (m *MetricsCollector) RecordRecipeCreated() {
	m.recipesCreatedTotal.Inc()
}

// RecordMealPlanCreated increments the meal plan creation counter
func (m *MetricsCollector) RecordMealPlanCreated() {
	m.mealPlansCreatedTotal.Inc()
}

// RecordGeneration records the outcome of one shopping list generation run
func (m *MetricsCollector) RecordGeneration(outcome string, itemCount int, durationSeconds float64) {
	m.shoppingListsGenerated.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.shoppingListItemsEmitted.Observe(float64(itemCount))
	}
	m.generationDuration.Observe(durationSeconds)
}

// RecordCacheOperation records one cache operation and its result
func (m *MetricsCollector) RecordCacheOperation(operation, result string) {
	m.cacheOperations.WithLabelValues(operation, result).Inc()
}

// Handler returns the Prometheus scrape handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
