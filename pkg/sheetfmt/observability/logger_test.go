package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testHandler) getLastRecord() map[string]any {
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) > 0 {
			var m map[string]any
			if err := json.Unmarshal(lines[i], &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func TestTemplateName(t *testing.T) {
	assert.Equal(t, InlineTemplate, TemplateName(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, InlineTemplate, TemplateName(nil))
	assert.Equal(t, InlineTemplate, TemplateName(WithTemplateName(context.Background(), "")))

	ctx := WithTemplateName(context.Background(), "invoice_label")
	assert.Equal(t, "invoice_label", TemplateName(ctx))
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds template and batch_id", func(t *testing.T) {
		h := newTestHandler()
		enriched := EnrichLogger(slog.New(h), "invoice_label", "batch-1")
		enriched.Info("test message")

		record := h.getLastRecord()
		require.NotNil(t, record)
		assert.Equal(t, "invoice_label", record["template"])
		assert.Equal(t, "batch-1", record["batch_id"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "t", "b"))
	})
}

func TestLogExpandLifecycle(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogExpandStart(logger, "inline", 3)
	record := h.getLastRecord()
	assert.Equal(t, "expansion starting", record["msg"])
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, float64(3), record["args"])

	LogExpandComplete(logger, "inline", 1.5, 4, 1)
	record = h.getLastRecord()
	assert.Equal(t, "expansion completed", record["msg"])
	assert.Equal(t, 1.5, record["duration_ms"])
	assert.Equal(t, float64(4), record["placeholders"])
	assert.Equal(t, float64(1), record["empty"])

	LogExpandError(logger, "inline", errors.New("unclosed braces"), 0.25)
	record = h.getLastRecord()
	assert.Equal(t, "expansion failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "unclosed braces", record["error"])
}

func TestLogBatchLifecycle(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogBatchStart(logger, "batch-1", 10)
	record := h.getLastRecord()
	assert.Equal(t, "batch starting", record["msg"])
	assert.Equal(t, float64(10), record["rows"])

	LogRowError(logger, "batch-1", 4, errors.New("bad row"))
	record = h.getLastRecord()
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, float64(4), record["row"])
	assert.Equal(t, "bad row", record["error"])

	LogBatchComplete(logger, "batch-1", 10, 1, 12)
	record = h.getLastRecord()
	assert.Equal(t, "batch completed", record["msg"])
	assert.Equal(t, float64(1), record["failed"])
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogExpandStart(nil, "t", 0)
		LogExpandComplete(nil, "t", 0, 0, 0)
		LogExpandError(nil, "t", errors.New("x"), 0)
		LogBatchStart(nil, "b", 0)
		LogBatchComplete(nil, "b", 0, 0, 0)
		LogRowError(nil, "b", 0, errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 5.0)
}
