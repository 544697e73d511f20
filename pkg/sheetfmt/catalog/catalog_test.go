package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
)

func TestNew(t *testing.T) {
	c := New(nil)
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
}

func TestRegisterAndGet(t *testing.T) {
	c := New(nil)

	require.NoError(t, c.Register("label", "{0:upper} ({1})"))

	tmpl, ok := c.Get("label")
	require.True(t, ok)
	assert.Equal(t, "label", tmpl.Name)
	assert.Equal(t, "{0:upper} ({1})", tmpl.Text)
	assert.Equal(t, 2, tmpl.Placeholders)
	assert.True(t, c.Has("label"))

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRegister_Overwrite(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register("x", "old"))
	require.NoError(t, c.Register("x", "{0}"))

	tmpl, _ := c.Get("x")
	assert.Equal(t, "{0}", tmpl.Text)
	assert.Equal(t, 1, c.Len())
}

func TestRegister_Invalid(t *testing.T) {
	c := New(nil)

	err := c.Register("", "{0}")
	assert.ErrorIs(t, err, ErrEmptyName)

	err = c.Register("bad", "{0")
	assert.ErrorIs(t, err, sheetfmt.ErrUnclosedBraces)
	assert.Contains(t, err.Error(), `"bad"`)
	assert.False(t, c.Has("bad"))
}

func TestRegisterMany(t *testing.T) {
	c := New(nil)

	require.NoError(t, c.RegisterMany(map[string]string{
		"a": "{0}",
		"b": "{{0}}",
	}))
	assert.Equal(t, []string{"a", "b"}, c.Names())

	err := c.RegisterMany(map[string]string{
		"c": "{0}",
		"d": "}",
	})
	assert.ErrorIs(t, err, sheetfmt.ErrUnbalancedBraces)
	assert.False(t, c.Has("c"), "a failed RegisterMany adds nothing")
}

func TestDelete(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register("x", "{0}"))
	c.Delete("x")
	c.Delete("never-registered")
	assert.False(t, c.Has("x"))
}

func TestRender(t *testing.T) {
	c := New(sheetfmt.NewExpander(sheetfmt.WithDelimiter(", ")))
	require.NoError(t, c.Register("tags", "{0}: {{1:upper}}"))

	out, err := c.Render(context.Background(), "tags", sheetfmt.Args{
		sheetfmt.Scalar("item"),
		sheetfmt.Array("a", "b"),
	})
	require.NoError(t, err)
	assert.Equal(t, "item: A, B", out)

	_, err = c.Render(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenderRows(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Register("total", "{0:currency}"))

	out, err := c.RenderRows(context.Background(), "total", []sheetfmt.Args{
		sheetfmt.Scalars("1"),
		sheetfmt.Scalars("2.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"$1.00", "$2.50"}, out)

	_, err = c.RenderRows(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(nil)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = c.Register(fmt.Sprintf("t%d", i), "{0}")
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = c.Render(context.Background(), fmt.Sprintf("t%d", i), sheetfmt.Scalars("x"))
			_ = c.Names()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, c.Len())
}
