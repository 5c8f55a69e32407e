package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("generation-metrics")

// GenerationMetrics provides metrics collection for plan generation requests
type GenerationMetrics struct {
	requestsCounter   metric.Int64Counter
	completedCounter  metric.Int64Counter
	failedCounter     metric.Int64Counter
	durationHistogram metric.Float64Histogram
	activeGauge       metric.Int64UpDownCounter
}

// NewGenerationMetrics creates a new generation metrics collector
func NewGenerationMetrics() (*GenerationMetrics, error) {
	requestsCounter, err := meter.Int64Counter(
		"healthpath.generations.requested",
		metric.WithDescription("Total number of plan generation requests"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	completedCounter, err := meter.Int64Counter(
		"healthpath.generations.completed",
		metric.WithDescription("Total number of generations answered by the model provider"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	failedCounter, err := meter.Int64Counter(
		"healthpath.generations.failed",
		metric.WithDescription("Total number of generations that failed"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"healthpath.generation.duration",
		metric.WithDescription("Duration of the upstream model call in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeGauge, err := meter.Int64UpDownCounter(
		"healthpath.generations.active",
		metric.WithDescription("Number of generations currently in flight"),
		metric.WithUnit("{generation}"),
	)
	if err != nil {
		return nil, err
	}

	return &GenerationMetrics{
		requestsCounter:   requestsCounter,
		completedCounter:  completedCounter,
		failedCounter:     failedCounter,
		durationHistogram: durationHistogram,
		activeGauge:       activeGauge,
	}, nil
}

// RecordStarted records a generation handed to the provider
func (gm *GenerationMetrics) RecordStarted(ctx context.Context, provider, model string) {
	gm.requestsCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("model", model),
		),
	)
	gm.activeGauge.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
		),
	)
}

// RecordCompleted records a successful generation
func (gm *GenerationMetrics) RecordCompleted(ctx context.Context, provider, model string, duration time.Duration) {
	gm.completedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("model", model),
			attribute.String("status", "completed"),
		),
	)
	gm.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("status", "completed"),
		),
	)
	gm.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("provider", provider),
		),
	)
}

// RecordFailed records a failed generation; errorType is a short classifier
// such as "upstream_error" or "circuit_open"
func (gm *GenerationMetrics) RecordFailed(ctx context.Context, provider, model, errorType string, duration time.Duration) {
	gm.failedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("model", model),
			attribute.String("status", "failed"),
			attribute.String("error.type", errorType),
		),
	)
	gm.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("status", "failed"),
		),
	)
	gm.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("provider", provider),
		),
	)
}
