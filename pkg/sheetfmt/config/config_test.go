package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/config"
)

// TestString verifies string extraction with defaults.
func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"delimiter": ", "}, "delimiter", " ", ", "},
		{"key missing", map[string]any{"other": "value"}, "delimiter", " ", " "},
		{"empty string", map[string]any{"delimiter": ""}, "delimiter", " ", ""},
		{"wrong type int", map[string]any{"delimiter": 123}, "delimiter", " ", " "},
		{"nil map", nil, "delimiter", " ", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.Equal(t, tt.want, cfg.String(tt.key, tt.defaultVal))
		})
	}
}

// TestBool verifies boolean extraction with defaults.
func TestBool(t *testing.T) {
	cfg := config.New(map[string]any{"strict": true, "text": "true"})
	assert.True(t, cfg.Bool("strict", false))
	assert.False(t, cfg.Bool("text", false))
	assert.True(t, cfg.Bool("missing", true))
}

// TestInt verifies integer extraction across decoder number types.
func TestInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"int", 8, 8},
		{"int64", int64(8), 8},
		{"whole float64", float64(8), 8},
		{"fractional float64", 8.5, 32},
		{"string", "8", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(map[string]any{"max_depth": tt.val})
			assert.Equal(t, tt.want, cfg.Int("max_depth", 32))
		})
	}
}

// TestStringMap verifies table extraction.
func TestStringMap(t *testing.T) {
	def := map[string]string{"d": "default"}

	tests := []struct {
		name string
		val  any
		want map[string]string
	}{
		{"map of any", map[string]any{"a": "{0}"}, map[string]string{"a": "{0}"}},
		{"map of string", map[string]string{"a": "{0}"}, map[string]string{"a": "{0}"}},
		{"non-string value", map[string]any{"a": 1}, def},
		{"not a map", "x", def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(map[string]any{"templates": tt.val})
			assert.Equal(t, tt.want, cfg.StringMap("templates", def))
		})
	}

	assert.Equal(t, def, config.New(nil).StringMap("templates", def))
}

// TestRaw verifies the underlying map is exposed.
func TestRaw(t *testing.T) {
	cfg := config.New(map[string]any{"locale": "de-DE"})
	assert.Equal(t, map[string]any{"locale": "de-DE"}, cfg.Raw())
	assert.NotNil(t, config.New(nil).Raw())
}
