package value

import (
	"fmt"
	"strings"
)

// Kind identifies how a raw scalar is interpreted and displayed.
type Kind int

const (
	// KindNone passes the raw value through unchanged.
	// It is selected when a placeholder names no kind.
	KindNone Kind = iota

	// KindString applies an optional text transform.
	KindString

	// KindDate parses an ISO-like date-time.
	KindDate

	// KindExcelDate parses a spreadsheet day-serial number.
	KindExcelDate

	// KindDecimal is fixed-point with grouping.
	KindDecimal

	// KindNumber is plain decimal with number-classification options.
	KindNumber

	// KindPercent displays a ratio as a percentage.
	KindPercent

	// KindCurrency displays a monetary amount.
	KindCurrency

	// KindBoolean maps true/false text to display words.
	KindBoolean
)

// String returns the canonical kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindExcelDate:
		return "exceldate"
	case KindDecimal:
		return "decimal"
	case KindNumber:
		return "number"
	case KindPercent:
		return "percent"
	case KindCurrency:
		return "currency"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// kindNames maps lower-cased kind names to kinds.
var kindNames = map[string]Kind{
	"string":    KindString,
	"enum":      KindString,
	"date":      KindDate,
	"exceldate": KindExcelDate,
	"decimal":   KindDecimal,
	"number":    KindNumber,
	"percent":   KindPercent,
	"currency":  KindCurrency,
	"bool":      KindBoolean,
	"boolean":   KindBoolean,
}

// ParseKind resolves a kind name case-insensitively.
//
// An empty name yields KindNone. The string transforms (lower, upper,
// capitalize, trim, reverse) are accepted as shorthand kinds: ParseKind
// returns KindString together with the transform as the implied option.
// Unknown names return ErrInvalidKind.
func ParseKind(name string) (Kind, string, error) {
	if name == "" {
		return KindNone, "", nil
	}
	lower := strings.ToLower(name)
	if k, ok := kindNames[lower]; ok {
		return k, "", nil
	}
	if _, ok := stringTransforms[lower]; ok {
		return KindString, lower, nil
	}
	return KindNone, "", fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Kinds returns the canonical name of every kind that ParseKind accepts,
// followed by its aliases.
func Kinds() []string {
	return []string{
		"string", "enum",
		"date",
		"exceldate",
		"decimal",
		"number",
		"percent",
		"currency",
		"bool", "boolean",
	}
}
