package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItinerariesGeneratedTotal metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
	NarrationFallbacksTotal   metric.Int64Counter
	SessionOpErrorsTotal      metric.Int64Counter
	DbQueryDurationSeconds    metric.Float64Histogram
	DbQueryErrorsTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider; when no
// provider is registered the instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("DoraPlanner")
		var err error
		m := &AppMetrics{}

		m.ItinerariesGeneratedTotal, err = meter.Int64Counter(
			"itineraries_generated_total",
			metric.WithDescription("Total number of itineraries generated"),
			metric.WithUnit("{itinerary}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itineraries_generated_total: %v", err)
		}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"generation_duration_seconds",
			metric.WithDescription("Duration of itinerary generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_duration_seconds: %v", err)
		}

		m.NarrationFallbacksTotal, err = meter.Int64Counter(
			"narration_fallbacks_total",
			metric.WithDescription("Total number of narrations served from curated fallback content"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create narration_fallbacks_total: %v", err)
		}

		m.SessionOpErrorsTotal, err = meter.Int64Counter(
			"session_op_errors_total",
			metric.WithDescription("Total number of session store operation errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create session_op_errors_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance, initializing
// it against the current global MeterProvider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
