package value

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/number"
)

// Fraction digit limits.
const (
	defaultDecimalDigits = 2
	defaultNumberDigits  = 3
	maxPercentDigits     = 2
	maxFractionDigits    = 20
)

var (
	// numberNoise matches every character a numeric value may not contain.
	numberNoise = regexp.MustCompile(`[^0-9.\-]`)

	// leadingNumber matches the numeric prefix left after sanitizing.
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ParseNumber strips everything but digits, '.' and '-' from raw and
// parses the leading number. "$1,234.50" parses as 1234.5.
func ParseNumber(raw string) (float64, bool) {
	return leadingFloat(numberNoise.ReplaceAllString(raw, ""), leadingNumber)
}

// round rounds half away from zero to digits fraction digits.
func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// decimal renders v with between minFrac and maxFrac fraction digits.
func (f *Formatter) decimal(v float64, minFrac, maxFrac int, grouping bool) string {
	v = round(v, maxFrac)
	opts := []number.Option{
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	}
	if !grouping {
		opts = append(opts, number.NoSeparator())
	}
	return f.printer.Sprint(number.Decimal(v, opts...))
}

// FormatDecimal renders raw as a grouped fixed-point number.
//
// Options:
//   - "" : two fraction digits
//   - "rounded" : nearest integer, halves rounded up
//   - an integer N in [0, 20] : exactly N fraction digits
//
// Any other option returns ErrInvalidDecimalFormat.
func (f *Formatter) FormatDecimal(raw, option string) (string, error) {
	digits := defaultDecimalDigits
	rounded := false

	switch option = strings.TrimSpace(option); option {
	case "":
	case "rounded":
		rounded = true
		digits = 0
	default:
		n, err := strconv.Atoi(option)
		if err != nil || n < 0 || n > maxFractionDigits {
			return "", fmt.Errorf("%w: %q", ErrInvalidDecimalFormat, option)
		}
		digits = n
	}

	v, ok := ParseNumber(raw)
	if !ok {
		return "", nil
	}
	if rounded {
		v = math.Floor(v + 0.5)
	}
	return f.decimal(v, digits, digits, true), nil
}

// FormatNumber renders raw as a plain number or classifies it.
//
// Options:
//   - "" : up to three fraction digits, no grouping
//   - "comma" : same with grouping
//   - "oddEven" : "even" or "odd"
//   - "positiveNegative" : "zero", "positive" or "negative"
//   - "ordinal" : 1st, 2nd, 3rd, 4th, 11th, 12th, 13th, 21st, ...
//
// Unknown options fall back to the plain rendering.
func (f *Formatter) FormatNumber(raw, option string) string {
	v, ok := ParseNumber(raw)
	if !ok {
		return ""
	}

	switch strings.TrimSpace(option) {
	case "oddEven":
		if math.Mod(v, 2) == 0 {
			return "even"
		}
		return "odd"
	case "positiveNegative":
		switch {
		case v == 0:
			return "zero"
		case v > 0:
			return "positive"
		default:
			return "negative"
		}
	case "ordinal":
		return Ordinal(v)
	case "comma":
		return f.decimal(v, 0, defaultNumberDigits, true)
	default:
		return f.decimal(v, 0, defaultNumberDigits, false)
	}
}

// Ordinal appends an English ordinal suffix. Numbers ending in 11, 12 or
// 13 take "th". Non-integers always take "th".
func Ordinal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v != math.Trunc(v) {
		return s + "th"
	}
	n := int64(math.Abs(v))
	if tens := n % 100; tens >= 11 && tens <= 13 {
		return s + "th"
	}
	switch n % 10 {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	default:
		return s + "th"
	}
}

// FormatPercent renders raw as a percentage with at most two fraction
// digits. Values whose magnitude exceeds 1 are taken to be percentages
// already, so "0.15" and "15" both render as "15%". The "inverse" option
// renders 1 - value.
func (f *Formatter) FormatPercent(raw, option string) string {
	v, ok := ParseNumber(raw)
	if !ok {
		return ""
	}
	if math.Abs(v) > 1 {
		v /= 100
	}
	if strings.TrimSpace(option) == "inverse" {
		v = 1 - v
	}
	return f.decimal(v*100, 0, maxPercentDigits, true) + "%"
}
