package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/language"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

// Keys recognized in a configuration document.
const (
	KeyDelimiter          = "delimiter"
	KeyStrictPositions    = "strict_positions"
	KeyStrictArrayLengths = "strict_array_lengths"
	KeyMaxDepth           = "max_depth"
	KeyLocale             = "locale"
	KeyTimezone           = "timezone"
	KeyDate1904           = "date_1904"
	KeyArraySeparator     = "array_separator"
	KeyTemplates          = "templates"
)

// ErrInvalidSettings indicates a setting that cannot be applied.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the resolved sheetfmt configuration.
type Settings struct {
	// Delimiter separates array iteration results.
	Delimiter string
	// StrictPositions fails on positions past the end of the arguments.
	StrictPositions bool
	// StrictArrayLengths fails on array fields of differing lengths.
	StrictArrayLengths bool
	// MaxDepth bounds placeholder nesting.
	MaxDepth int
	// Locale is a BCP 47 tag selecting number separators.
	Locale string
	// Timezone is an IANA zone name used for dates.
	Timezone string
	// Date1904 selects the 1904 spreadsheet date system.
	Date1904 bool
	// ArraySeparator splits row cells into array arguments. Empty disables it.
	ArraySeparator string
	// Templates maps template names to template text.
	Templates map[string]string
}

// Defaults returns the settings used for keys a document leaves out.
func Defaults() Settings {
	return Settings{
		Delimiter:      sheetfmt.DefaultDelimiter,
		MaxDepth:       sheetfmt.DefaultMaxDepth,
		Locale:         "en-US",
		Timezone:       "UTC",
		ArraySeparator: "|",
		Templates:      map[string]string{},
	}
}

// knownKeys lists every top-level key FromConfig reads.
var knownKeys = map[string]bool{
	KeyDelimiter:          true,
	KeyStrictPositions:    true,
	KeyStrictArrayLengths: true,
	KeyMaxDepth:           true,
	KeyLocale:             true,
	KeyTimezone:           true,
	KeyDate1904:           true,
	KeyArraySeparator:     true,
	KeyTemplates:          true,
}

// UnknownKeys returns the sorted top-level keys of c that FromConfig
// ignores.
func UnknownKeys(c Config) []string {
	var unknown []string
	for key := range c.Raw() {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// FromConfig reads Settings from c, falling back to Defaults.
func FromConfig(c Config) Settings {
	d := Defaults()
	return Settings{
		Delimiter:          c.String(KeyDelimiter, d.Delimiter),
		StrictPositions:    c.Bool(KeyStrictPositions, d.StrictPositions),
		StrictArrayLengths: c.Bool(KeyStrictArrayLengths, d.StrictArrayLengths),
		MaxDepth:           c.Int(KeyMaxDepth, d.MaxDepth),
		Locale:             c.String(KeyLocale, d.Locale),
		Timezone:           c.String(KeyTimezone, d.Timezone),
		Date1904:           c.Bool(KeyDate1904, d.Date1904),
		ArraySeparator:     c.String(KeyArraySeparator, d.ArraySeparator),
		Templates:          c.StringMap(KeyTemplates, d.Templates),
	}
}

// Load reads a configuration file and validates it. Keys FromConfig does
// not know are rejected.
func Load(path string) (Settings, error) {
	c, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	if unknown := UnknownKeys(c); len(unknown) > 0 {
		return Settings{}, fmt.Errorf("%s: %w: unknown keys %q", path, ErrInvalidSettings, unknown)
	}
	s := FromConfig(c)
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks every setting, including the brace balance of each
// named template.
func (s Settings) Validate() error {
	if s.MaxDepth < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidSettings, KeyMaxDepth, s.MaxDepth)
	}
	if _, err := language.Parse(s.Locale); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSettings, KeyLocale, s.Locale, err)
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrInvalidSettings, KeyTimezone, s.Timezone, err)
	}
	for name, tmpl := range s.Templates {
		if name == "" {
			return fmt.Errorf("%w: template with empty name", ErrInvalidSettings)
		}
		if err := scan.Validate(tmpl); err != nil {
			return fmt.Errorf("%w: template %q: %w", ErrInvalidSettings, name, err)
		}
	}
	return nil
}

// ValueSettings returns the formatter settings.
func (s Settings) ValueSettings() (value.Settings, error) {
	tag, err := language.Parse(s.Locale)
	if err != nil {
		return value.Settings{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidSettings, KeyLocale, s.Locale, err)
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return value.Settings{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidSettings, KeyTimezone, s.Timezone, err)
	}
	return value.Settings{
		Location: loc,
		Language: tag,
		Date1904: s.Date1904,
	}, nil
}

// Options converts the settings into Expander options.
func (s Settings) Options() ([]sheetfmt.Option, error) {
	vs, err := s.ValueSettings()
	if err != nil {
		return nil, err
	}
	return []sheetfmt.Option{
		sheetfmt.WithDelimiter(s.Delimiter),
		sheetfmt.WithStrictPositions(s.StrictPositions),
		sheetfmt.WithStrictArrayLengths(s.StrictArrayLengths),
		sheetfmt.WithMaxDepth(s.MaxDepth),
		sheetfmt.WithSettings(vs),
	}, nil
}
