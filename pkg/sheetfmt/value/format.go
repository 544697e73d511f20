// Package value converts raw scalar strings into display strings.
//
// Each kind (string, date, exceldate, decimal, number, percent, currency,
// boolean) takes the raw text and an optional kind-option. Two failure
// classes are kept apart:
//
//   - A raw value that cannot be interpreted as the kind (an unparseable
//     date or number) is not an error. The formatter returns "".
//   - A bad kind name or kind-option is a template mistake and returns
//     one of the sentinel errors below.
package value

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sentinel errors for invalid kinds and options.
var (
	// ErrInvalidKind indicates an unknown kind name.
	ErrInvalidKind = errors.New("invalid format type")

	// ErrInvalidOption indicates an unknown string transform.
	ErrInvalidOption = errors.New("invalid variable option")

	// ErrInvalidDecimalFormat indicates a decimal option that is neither
	// "rounded" nor a fraction-digit count.
	ErrInvalidDecimalFormat = errors.New("invalid decimal format")

	// ErrInvalidCurrency indicates an unrecognized currency symbol or code.
	ErrInvalidCurrency = errors.New("invalid currency symbol")
)

// Settings fixes the locale-dependent parts of formatting.
// The zero value is not usable; start from DefaultSettings.
type Settings struct {
	// Location is used to interpret zone-less dates and to display all
	// dates. Excel serials are wall-clock times in this location.
	Location *time.Location

	// Language selects digit grouping and decimal separators.
	Language language.Tag

	// Date1904 switches exceldate to the 1904 date system, where serial 0
	// is 1904-01-01.
	Date1904 bool
}

// DefaultSettings returns UTC, American English, 1900 date system.
func DefaultSettings() Settings {
	return Settings{
		Location: time.UTC,
		Language: language.AmericanEnglish,
	}
}

// Formatter formats scalars according to fixed Settings.
// A Formatter is safe for concurrent use.
type Formatter struct {
	loc      *time.Location
	printer  *message.Printer
	date1904 bool
}

// New creates a Formatter. A nil Location falls back to UTC.
func New(s Settings) *Formatter {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{
		loc:      loc,
		printer:  message.NewPrinter(s.Language),
		date1904: s.Date1904,
	}
}

var defaultFormatter = New(DefaultSettings())

// Default returns the Formatter built from DefaultSettings.
func Default() *Formatter {
	return defaultFormatter
}

// Format formats raw as kind using option.
func (f *Formatter) Format(kind Kind, raw, option string) (string, error) {
	switch kind {
	case KindNone:
		return raw, nil
	case KindString:
		return FormatString(raw, option)
	case KindDate:
		return f.FormatDate(raw, option), nil
	case KindExcelDate:
		return f.FormatExcelDate(raw, option), nil
	case KindDecimal:
		return f.FormatDecimal(raw, option)
	case KindNumber:
		return f.FormatNumber(raw, option), nil
	case KindPercent:
		return f.FormatPercent(raw, option), nil
	case KindCurrency:
		return f.FormatCurrency(raw, option)
	case KindBoolean:
		return FormatBoolean(raw, option), nil
	}
	return "", ErrInvalidKind
}

// FormatNamed parses kindName with ParseKind and formats raw.
// A shorthand kind takes no option of its own; one returns ErrInvalidOption.
func (f *Formatter) FormatNamed(kindName, raw, option string) (string, error) {
	kind, implied, err := ParseKind(kindName)
	if err != nil {
		return "", err
	}
	if implied != "" {
		if strings.TrimSpace(option) != "" {
			return "", fmt.Errorf("%w: %q after shorthand kind %q", ErrInvalidOption, option, kindName)
		}
		option = implied
	}
	return f.Format(kind, raw, option)
}
