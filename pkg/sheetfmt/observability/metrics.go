package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records sheetfmt metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordExpansion records one top-level expansion with its duration and error status.
	RecordExpansion(ctx context.Context, template string, duration time.Duration, err error)

	// RecordPlaceholders records how many placeholders an expansion formatted
	// and how many of them contributed nothing.
	RecordPlaceholders(ctx context.Context, template string, total, empty int)

	// RecordBatch records a batch render completion.
	RecordBatch(ctx context.Context, rows, failed int, duration time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	expansions        metric.Int64Counter
	expandLatency     metric.Float64Histogram
	expandErrors      metric.Int64Counter
	placeholders      metric.Int64Counter
	emptyPlaceholders metric.Int64Counter
	batchRows         metric.Int64Histogram
	batchLatency      metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("sheetfmt")

	expansions, err := meter.Int64Counter("sheetfmt.expand.count",
		metric.WithDescription("Number of template expansions"),
	)
	if err != nil {
		return nil, err
	}

	expandLatency, err := meter.Float64Histogram("sheetfmt.expand.latency_ms",
		metric.WithDescription("Expansion latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	expandErrors, err := meter.Int64Counter("sheetfmt.expand.errors",
		metric.WithDescription("Number of failed expansions"),
	)
	if err != nil {
		return nil, err
	}

	placeholders, err := meter.Int64Counter("sheetfmt.placeholder.count",
		metric.WithDescription("Number of placeholders formatted"),
	)
	if err != nil {
		return nil, err
	}

	emptyPlaceholders, err := meter.Int64Counter("sheetfmt.placeholder.empty",
		metric.WithDescription("Number of placeholders that rendered as empty text"),
	)
	if err != nil {
		return nil, err
	}

	batchRows, err := meter.Int64Histogram("sheetfmt.batch.rows",
		metric.WithDescription("Rows per batch render"),
	)
	if err != nil {
		return nil, err
	}

	batchLatency, err := meter.Float64Histogram("sheetfmt.batch.latency_ms",
		metric.WithDescription("Batch render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		expansions:        expansions,
		expandLatency:     expandLatency,
		expandErrors:      expandErrors,
		placeholders:      placeholders,
		emptyPlaceholders: emptyPlaceholders,
		batchRows:         batchRows,
		batchLatency:      batchLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordExpansion records an expansion.
func (m *otelMetrics) RecordExpansion(ctx context.Context, template string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("template", template),
		attribute.Bool("success", err == nil),
	)

	m.expansions.Add(ctx, 1, attrs)
	m.expandLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.expandErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("template", template)))
	}
}

// RecordPlaceholders records placeholder counts.
func (m *otelMetrics) RecordPlaceholders(ctx context.Context, template string, total, empty int) {
	attrs := metric.WithAttributes(attribute.String("template", template))
	m.placeholders.Add(ctx, int64(total), attrs)
	if empty > 0 {
		m.emptyPlaceholders.Add(ctx, int64(empty), attrs)
	}
}

// RecordBatch records a batch render.
func (m *otelMetrics) RecordBatch(ctx context.Context, rows, failed int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", failed == 0))
	m.batchRows.Record(ctx, int64(rows), attrs)
	m.batchLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}
