package sheetfmt

import (
	"log/slog"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/observability"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

// Defaults for a new Expander.
const (
	// DefaultDelimiter separates the results of an array iteration.
	DefaultDelimiter = " "

	// DefaultMaxDepth bounds placeholder nesting.
	DefaultMaxDepth = 32
)

// Option configures an Expander.
type Option func(*Expander)

// WithDelimiter sets the text placed between array iteration results.
//
// Default: " "
//
// Example:
//
//	exp := NewExpander(WithDelimiter(", "))
//	result, _ := exp.Expand("{{0}}", Args{Array("a", "b")})
//	// result: "a, b"
func WithDelimiter(delim string) Option {
	return func(e *Expander) {
		e.delimiter = delim
	}
}

// WithStrictPositions makes a position past the end of the arguments, or
// an array index past the end of the array, fail with ErrPositionOutOfRange.
//
// Default: false (the placeholder renders as "")
func WithStrictPositions(strict bool) Option {
	return func(e *Expander) {
		e.strictPositions = strict
	}
}

// WithStrictArrayLengths makes an iteration body whose array fields differ
// in length fail with ErrArrayLengthMismatch.
//
// Default: false (the first array found sets the iteration count)
func WithStrictArrayLengths(strict bool) Option {
	return func(e *Expander) {
		e.strictArrayLengths = strict
	}
}

// WithMaxDepth bounds how deeply placeholders may nest. Values below 1 are
// ignored.
//
// Default: DefaultMaxDepth
func WithMaxDepth(depth int) Option {
	return func(e *Expander) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithSettings builds the value formatter from s.
//
// Default: value.DefaultSettings() (UTC, American English, 1900 date system)
func WithSettings(s value.Settings) Option {
	return func(e *Expander) {
		e.formatter = value.New(s)
	}
}

// WithFormatter sets the value formatter. A nil formatter is ignored.
func WithFormatter(f *value.Formatter) Option {
	return func(e *Expander) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithLogger sets the logger for expansion events.
//
// Default: nil (silent)
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Expander) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
//
// Default: observability.NoopSpanManager{}
func WithSpanManager(sm observability.SpanManager) Option {
	return func(e *Expander) {
		if sm != nil {
			e.spans = sm
		}
	}
}
