package sheetfmt

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

// Sentinel errors for malformed templates. These are reported before any
// placeholder is evaluated.
var (
	// ErrUnclosedBraces indicates the template ended inside a placeholder.
	ErrUnclosedBraces = scan.ErrUnclosedBraces

	// ErrUnbalancedBraces indicates a '}' with no matching '{'.
	ErrUnbalancedBraces = scan.ErrUnbalancedBraces
)

// Sentinel errors for placeholder fields.
var (
	// ErrPositionUndefined indicates a placeholder with no position, or an
	// array argument used outside an iteration with no array index.
	ErrPositionUndefined = errors.New("parameter position is undefined")

	// ErrPositionNotNumber indicates a position that is not a non-negative
	// base-10 integer.
	ErrPositionNotNumber = errors.New("parameter position is not a number")

	// ErrPositionOutOfRange indicates a position past the end of the
	// arguments. Only returned with WithStrictPositions.
	ErrPositionOutOfRange = errors.New("parameter position is out of range")

	// ErrInvalidFormat indicates a placeholder with more than four fields.
	ErrInvalidFormat = errors.New("invalid format string")
)

// Sentinel errors for array iteration.
var (
	// ErrNoArray indicates an iteration body with no array-valued field.
	ErrNoArray = errors.New("no array found in array matcher")

	// ErrArrayLengthMismatch indicates array fields of differing lengths in
	// one iteration body. Only returned with WithStrictArrayLengths.
	ErrArrayLengthMismatch = errors.New("array lengths differ in array matcher")

	// ErrNestingTooDeep indicates placeholders nested past the configured
	// maximum depth.
	ErrNestingTooDeep = errors.New("placeholder nesting too deep")
)

// Sentinel errors for kinds and kind-options.
var (
	ErrInvalidKind          = value.ErrInvalidKind
	ErrInvalidOption        = value.ErrInvalidOption
	ErrInvalidDecimalFormat = value.ErrInvalidDecimalFormat
	ErrInvalidCurrency      = value.ErrInvalidCurrency
)

// ErrUnsupportedArg indicates a value ArgsOf cannot convert.
var ErrUnsupportedArg = errors.New("unsupported argument value")

// PlaceholderError ties a fatal error to the placeholder that caused it.
// For nested placeholders it names the innermost one.
type PlaceholderError struct {
	// Placeholder is the placeholder interior, without the outer braces.
	Placeholder string
	// Offset is the byte offset of the opening brace in the top-level template.
	Offset int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("placeholder {%s} at offset %d: %v", e.Placeholder, e.Offset, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PlaceholderError) Unwrap() error {
	return e.Err
}

// RowError wraps an error with the index of the row that caused it.
type RowError struct {
	// Row is the 0-based row index.
	Row int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RowError) Unwrap() error {
	return e.Err
}
