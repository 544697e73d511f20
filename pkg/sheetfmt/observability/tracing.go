package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("sheetfmt")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartExpandSpan starts a span for one top-level expansion.
	StartExpandSpan(ctx context.Context, template string, argCount int) (context.Context, trace.Span)

	// StartBatchSpan starts a span for a batch render. Expansion spans
	// started with the returned context are its children.
	StartBatchSpan(ctx context.Context, batchID string, rows int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartExpandSpan(ctx context.Context, template string, argCount int) (context.Context, trace.Span) {
	return StartExpandSpan(ctx, template, argCount)
}

func (m *otelSpanManager) StartBatchSpan(ctx context.Context, batchID string, rows int) (context.Context, trace.Span) {
	return StartBatchSpan(ctx, batchID, rows)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartExpandSpan starts a span for one expansion using the global tracer.
func StartExpandSpan(ctx context.Context, template string, argCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "sheetfmt.expand",
		trace.WithAttributes(
			attribute.String("template.name", template),
			attribute.Int("args.count", argCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartBatchSpan starts a span for a batch render using the global tracer.
func StartBatchSpan(ctx context.Context, batchID string, rows int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "sheetfmt.batch",
		trace.WithAttributes(
			attribute.String("batch.id", batchID),
			attribute.Int("batch.rows", rows),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
