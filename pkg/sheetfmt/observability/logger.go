// Package observability provides structured logging, metrics and tracing
// for sheetfmt expansions and batch renders.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// InlineTemplate names templates that were not looked up by name.
const InlineTemplate = "inline"

type templateNameKey struct{}

// WithTemplateName returns a context carrying the name of the template
// being expanded. Logs, metrics and spans are labelled with it.
func WithTemplateName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, templateNameKey{}, name)
}

// TemplateName returns the template name stored in ctx, or InlineTemplate.
func TemplateName(ctx context.Context) string {
	if ctx == nil {
		return InlineTemplate
	}
	if name, ok := ctx.Value(templateNameKey{}).(string); ok && name != "" {
		return name
	}
	return InlineTemplate
}

// EnrichLogger adds template and batch context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "invoice_label", "b7c1...")
//	enriched.Info("rendering") // includes template and batch_id
func EnrichLogger(logger *slog.Logger, template, batchID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("template", template),
		slog.String("batch_id", batchID),
	)
}

// LogExpandStart logs the start of one expansion.
func LogExpandStart(logger *slog.Logger, template string, argCount int) {
	if logger == nil {
		return
	}
	logger.Debug("expansion starting",
		slog.String("template", template),
		slog.Int("args", argCount),
	)
}

// LogExpandComplete logs a successful expansion.
// empty counts placeholders that contributed nothing to the output.
func LogExpandComplete(logger *slog.Logger, template string, durationMs float64, placeholders, empty int) {
	if logger == nil {
		return
	}
	logger.Debug("expansion completed",
		slog.String("template", template),
		slog.Float64("duration_ms", durationMs),
		slog.Int("placeholders", placeholders),
		slog.Int("empty", empty),
	)
}

// LogExpandError logs a failed expansion.
func LogExpandError(logger *slog.Logger, template string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("expansion failed",
		slog.String("template", template),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogBatchStart logs the start of a batch render.
func LogBatchStart(logger *slog.Logger, batchID string, rows int) {
	if logger == nil {
		return
	}
	logger.Info("batch starting",
		slog.String("batch_id", batchID),
		slog.Int("rows", rows),
	)
}

// LogBatchComplete logs the end of a batch render.
func LogBatchComplete(logger *slog.Logger, batchID string, rows, failed int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("batch completed",
		slog.String("batch_id", batchID),
		slog.Int("rows", rows),
		slog.Int("failed", failed),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRowError logs a row that failed to render (non-fatal for the batch).
func LogRowError(logger *slog.Logger, batchID string, row int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("row failed",
		slog.String("batch_id", batchID),
		slog.Int("row", row),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}

// LogSoftEmpty logs a placeholder whose raw value could not be read as its
// kind and so contributed nothing to the output.
func LogSoftEmpty(logger *slog.Logger, template, placeholder, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("placeholder rendered empty",
		slog.String("template", template),
		slog.String("placeholder", placeholder),
		slog.String("kind", kind),
	)
}
