package render

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/catalog"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/store"
)

type batchMetrics struct {
	rows, failed int
}

func (m *batchMetrics) RecordExpansion(context.Context, string, time.Duration, error) {}
func (m *batchMetrics) RecordPlaceholders(context.Context, string, int, int)          {}
func (m *batchMetrics) RecordBatch(_ context.Context, rows, failed int, _ time.Duration) {
	m.rows, m.failed = rows, failed
}

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New(nil)
	require.NoError(t, cat.Register("label", "{0:upper} {1:decimal:1}"))
	return cat
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	metrics := &batchMetrics{}
	st := store.NewMemoryStore()

	r := New(newCatalog(t), st, WithLogger(logger), WithMetrics(metrics))
	fixed := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	batch, err := r.Render(context.Background(), "label", []sheetfmt.Args{
		sheetfmt.Scalars("ab", "1.25"),
		{sheetfmt.Array("x")},
		sheetfmt.Scalars("cd", "2"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "label", batch.Template)
	assert.Equal(t, "{0:upper} {1:decimal:1}", batch.Text)
	assert.Equal(t, fixed, batch.CreatedAt)
	require.Len(t, batch.Rows, 3)
	assert.Equal(t, store.Row{Index: 0, Output: "AB 1.3"}, batch.Rows[0])
	assert.Equal(t, "", batch.Rows[1].Output)
	assert.Contains(t, batch.Rows[1].Error, "parameter position is not a number")
	assert.Equal(t, "CD 2.0", batch.Rows[2].Output)
	assert.Equal(t, 1, batch.Failed())

	saved, err := st.Load(batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.Rows, saved.Rows)

	assert.Equal(t, 3, metrics.rows)
	assert.Equal(t, 1, metrics.failed)

	logs := buf.String()
	assert.Contains(t, logs, `"msg":"batch starting"`)
	assert.Contains(t, logs, `"msg":"row failed"`)
	assert.Contains(t, logs, `"msg":"batch completed"`)
	assert.Contains(t, logs, batch.ID)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := New(newCatalog(t), nil)
	_, err := r.Render(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRender_NoStore(t *testing.T) {
	r := New(newCatalog(t), nil)
	batch, err := r.Render(context.Background(), "label", []sheetfmt.Args{sheetfmt.Scalars("a", "1")})
	require.NoError(t, err)
	assert.Equal(t, "A 1.0", batch.Rows[0].Output)
}

func TestRender_StoreFailure(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Close())

	r := New(newCatalog(t), st)
	_, err := r.Render(context.Background(), "label", []sheetfmt.Args{sheetfmt.Scalars("a", "1")})
	assert.ErrorIs(t, err, store.ErrStoreClosed)
}
