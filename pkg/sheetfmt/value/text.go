package value

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stringTransforms = map[string]func(string) string{
	"lower": func(s string) string {
		return cases.Lower(language.Und).String(s)
	},
	"upper": func(s string) string {
		return cases.Upper(language.Und).String(s)
	},
	"capitalize": capitalize,
	"trim":       strings.TrimSpace,
	"reverse":    reverse,
}

// FormatString applies the named transform to raw.
// An empty option returns raw unchanged.
func FormatString(raw, option string) (string, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return raw, nil
	}
	fn, ok := stringTransforms[option]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}
	return fn(raw), nil
}

// capitalize upper-cases the first rune and leaves the rest alone.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
