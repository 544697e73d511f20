package sheetfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	fields, err := splitFields(" 0 : date : yyyy ")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "date", "yyyy"}, fields)

	fields, err = splitFields("")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, fields)

	_, err = splitFields("0:1:2:3:4")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSplitPipe(t *testing.T) {
	tests := []struct {
		text   string
		src    string
		kind   string
		option string
		ok     bool
	}{
		{"{0}:upper", "{0}", "upper", "", true},
		{"{0} : string : reverse", "{0}", "string", "reverse", true},
		{"{{0}, {1}}:lower", "{{0}, {1}}", "lower", "", true},
		{"{0}:DATE:yyyy", "{0}", "DATE", "yyyy", true},
		{"{0}", "", "", "", false},
		{"{0}:note", "", "", "", false},
		{"{0}:", "", "", "", false},
		{"{0}, {1}", "", "", "", false},
		{"{0}:upper {1}", "", "", "", false},
		{"{0}:string:upper:x", "", "", "", false},
		{"x{0}:upper", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			src, kind, option, ok := splitPipe(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.src, src)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.option, option)
		})
	}
}

func TestParsePosition(t *testing.T) {
	n, err := parsePosition("12")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = parsePosition("99999999999999999999999")
	require.NoError(t, err)
	assert.Greater(t, n, 1<<40)

	_, err = parsePosition("")
	assert.ErrorIs(t, err, ErrPositionUndefined)

	for _, bad := range []string{"a", "1.5", "-1", "+1", "0x1", "1 2"} {
		_, err = parsePosition(bad)
		assert.ErrorIs(t, err, ErrPositionNotNumber, bad)
	}
}
