package sheetfmt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/observability"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

// Expander expands sheetfmt templates.
//
// Create with NewExpander() and configure with Option functions.
// Expander is safe for concurrent use after construction.
type Expander struct {
	delimiter          string
	strictPositions    bool
	strictArrayLengths bool
	maxDepth           int
	formatter          *value.Formatter
	logger             *slog.Logger
	metrics            observability.MetricsRecorder
	spans              observability.SpanManager
}

// NewExpander creates a new Expander with the given options.
//
// Default configuration:
//   - Delimiter: " "
//   - StrictPositions: false (out-of-range positions render as "")
//   - StrictArrayLengths: false (the first array sets the count)
//   - MaxDepth: 32
//   - Formatter: UTC, American English, 1900 date system
//   - No logging, metrics or tracing
func NewExpander(opts ...Option) *Expander {
	e := &Expander{
		delimiter: DefaultDelimiter,
		maxDepth:  DefaultMaxDepth,
		formatter: value.Default(),
		metrics:   observability.NoopMetrics{},
		spans:     observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// expansion is the state of one top-level call.
type expansion struct {
	e            *Expander
	args         Args
	name         string
	placeholders int
	empty        int
}

// Expand expands template against args.
//
// Example:
//
//	exp := NewExpander()
//	result, err := exp.Expand("Hello {0:upper}", Scalars("world"))
//	// result: "Hello WORLD"
func (e *Expander) Expand(template string, args Args) (string, error) {
	return e.ExpandContext(context.Background(), template, args)
}

// ExpandContext is Expand with a context for tracing. A template name set
// with observability.WithTemplateName labels logs, metrics and spans.
//
// The result is all or nothing: on error no partial output is returned.
func (e *Expander) ExpandContext(ctx context.Context, template string, args Args) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := observability.TemplateName(ctx)
	ctx, span := e.spans.StartExpandSpan(ctx, name, len(args))
	observability.LogExpandStart(e.logger, name, len(args))
	start := time.Now()

	x := &expansion{e: e, args: args, name: name}
	out, err := x.run(template)

	duration := time.Since(start)
	durationMs := float64(duration.Microseconds()) / 1000
	e.metrics.RecordExpansion(ctx, name, duration, err)
	if err != nil {
		observability.LogExpandError(e.logger, name, err, durationMs)
		e.spans.EndSpanWithError(span, err)
		return "", err
	}

	e.metrics.RecordPlaceholders(ctx, name, x.placeholders, x.empty)
	if x.empty > 0 {
		e.spans.AddSpanEvent(ctx, "placeholders.empty", attribute.Int("count", x.empty))
	}
	observability.LogExpandComplete(e.logger, name, durationMs, x.placeholders, x.empty)
	e.spans.EndSpanWithError(span, nil)
	return out, nil
}

// MustExpand expands template and panics on error.
func (e *Expander) MustExpand(template string, args Args) string {
	result, err := e.Expand(template, args)
	if err != nil {
		panic(fmt.Sprintf("sheetfmt: %v", err))
	}
	return result
}

// ExpandRows expands template once per argument list.
// On error returns nil and a *RowError for the first failing row.
func (e *Expander) ExpandRows(template string, rows []Args) ([]string, error) {
	return e.ExpandRowsContext(context.Background(), template, rows)
}

// ExpandRowsContext is ExpandRows with a context for tracing.
func (e *Expander) ExpandRowsContext(ctx context.Context, template string, rows []Args) ([]string, error) {
	if rows == nil {
		return nil, nil
	}
	if err := e.Validate(template); err != nil {
		return nil, err
	}
	results := make([]string, len(rows))
	for i, args := range rows {
		out, err := e.ExpandContext(ctx, template, args)
		if err != nil {
			return nil, &RowError{Row: i, Err: err}
		}
		results[i] = out
	}
	return results, nil
}

// Validate reports whether template's braces are balanced. Placeholder
// fields are only checked during expansion, since their meaning depends on
// the arguments.
func (e *Expander) Validate(template string) error {
	return scan.Validate(template)
}

// run checks the whole template before evaluating any placeholder, so a
// brace error is always reported as such.
func (x *expansion) run(template string) (string, error) {
	if err := scan.Validate(template); err != nil {
		return "", err
	}
	return x.expand(template, 0, nil, 0)
}

// expand evaluates tmpl. base is the offset of tmpl in the top-level
// template. index is the current iteration index, nil outside iterations.
func (x *expansion) expand(tmpl string, base int, index *int, depth int) (string, error) {
	if depth > x.e.maxDepth {
		return "", ErrNestingTooDeep
	}

	var b strings.Builder
	sc := scan.New(tmpl)
	for sc.Next() {
		seg := sc.Segment()
		if !seg.Placeholder {
			b.WriteString(seg.Text)
			continue
		}
		out, err := x.placeholder(seg, base, index, depth)
		if err != nil {
			return "", wrapPlaceholder(seg, base, err)
		}
		b.WriteString(out)
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func wrapPlaceholder(seg scan.Segment, base int, err error) error {
	var pe *PlaceholderError
	if errors.As(err, &pe) {
		return err
	}
	return &PlaceholderError{Placeholder: seg.Text, Offset: base + seg.Offset, Err: err}
}

func (x *expansion) placeholder(seg scan.Segment, base int, index *int, depth int) (string, error) {
	bodyBase := base + seg.Offset + 1

	if strings.Contains(seg.Text, "{") {
		if index != nil {
			if src, kind, option, ok := splitPipe(seg.Text); ok {
				return x.pipe(seg.Text, src, kind, option, bodyBase, *index, depth)
			}
		}
		return x.iterate(seg.Text, bodyBase, depth)
	}

	fields, err := splitFields(seg.Text)
	if err != nil {
		return "", err
	}
	arg, err := x.resolve(fields[0])
	if err != nil {
		return "", err
	}

	raw := arg.Value()
	kindAt := 1
	if arg.IsArray() && index == nil {
		kindAt = 2
	}
	// An absent kind passes the value through; a blank one does not.
	if len(fields) > kindAt && fields[kindAt] == "" {
		return "", fmt.Errorf("%w: empty kind", ErrInvalidKind)
	}

	kind, option := field(fields, 1), field(fields, 2)
	if arg.IsArray() {
		if index != nil {
			// Running out of elements is governed by the array-length policy.
			if *index < arg.Len() {
				raw = arg.elems[*index]
			}
		} else {
			if field(fields, 1) == "" {
				return "", fmt.Errorf("%w: array index", ErrPositionUndefined)
			}
			if raw, err = x.element(arg, fields[1]); err != nil {
				return "", err
			}
			kind, option = field(fields, 2), field(fields, 3)
		}
	}
	return x.format(seg.Text, kind, raw, option)
}

// pipe expands the group src at the current iteration index and formats
// the result as kind.
func (x *expansion) pipe(text, src, kind, option string, base, index, depth int) (string, error) {
	raw, err := x.expand(src, base, &index, depth+1)
	if err != nil {
		return "", err
	}
	return x.format(text, kind, raw, option)
}

func (x *expansion) format(text, kind, raw, option string) (string, error) {
	out, err := x.e.formatter.FormatNamed(kind, raw, option)
	if err != nil {
		return "", err
	}
	x.placeholders++
	if out == "" {
		x.empty++
		if raw != "" {
			observability.LogSoftEmpty(x.e.logger, x.name, text, kind)
		}
	}
	return out, nil
}

var defaultExpander = NewExpander()

// Expand expands template with the default Expander.
//
// Example:
//
//	result, err := sheetfmt.Expand("{0} owes {1:currency:EUR}", sheetfmt.Scalar("Ana"), sheetfmt.Scalar("9.5"))
//	// result: "Ana owes €9.50"
func Expand(template string, args ...Arg) (string, error) {
	return defaultExpander.Expand(template, args)
}

// MustExpand expands template with the default Expander and panics on error.
func MustExpand(template string, args ...Arg) string {
	return defaultExpander.MustExpand(template, args)
}

// Validate reports whether template's braces are balanced.
func Validate(template string) error {
	return scan.Validate(template)
}
