// Package render runs a catalog template over many rows and records the
// outcome as a batch.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/catalog"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/observability"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/store"
)

// Renderer renders batches. Row failures are recorded in the batch rather
// than aborting it; only a missing template or a store failure is an error.
type Renderer struct {
	catalog *catalog.Catalog
	store   store.Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	now     func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for batch events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
func WithSpanManager(sm observability.SpanManager) Option {
	return func(r *Renderer) {
		if sm != nil {
			r.spans = sm
		}
	}
}

// New creates a Renderer. A nil store keeps nothing.
func New(cat *catalog.Catalog, st store.Store, opts ...Option) *Renderer {
	r := &Renderer{
		catalog: cat,
		store:   st,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render expands the named template once per row and saves the batch.
func (r *Renderer) Render(ctx context.Context, name string, rows []sheetfmt.Args) (*store.Batch, error) {
	tmpl, ok := r.catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrNotFound, name)
	}

	batch := &store.Batch{
		ID:        store.NewBatchID(),
		Template:  name,
		Text:      tmpl.Text,
		CreatedAt: r.now().UTC(),
		Rows:      make([]store.Row, len(rows)),
	}

	ctx, span := r.spans.StartBatchSpan(ctx, batch.ID, len(rows))
	logger := observability.EnrichLogger(r.logger, name, batch.ID)
	observability.LogBatchStart(logger, batch.ID, len(rows))
	start := time.Now()

	failed := 0
	for i, args := range rows {
		out, err := r.catalog.Render(ctx, name, args)
		batch.Rows[i] = store.Row{Index: i, Output: out}
		if err != nil {
			batch.Rows[i].Error = err.Error()
			failed++
			observability.LogRowError(logger, batch.ID, i, err)
		}
	}

	var err error
	if r.store != nil {
		if err = r.store.Save(batch); err != nil {
			err = fmt.Errorf("save batch %s: %w", batch.ID, err)
		}
	}

	duration := time.Since(start)
	r.metrics.RecordBatch(ctx, len(rows), failed, duration)
	observability.LogBatchComplete(logger, batch.ID, len(rows), failed, float64(duration.Microseconds())/1000)
	r.spans.EndSpanWithError(span, err)
	if err != nil {
		return nil, err
	}
	return batch, nil
}
