package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Display layouts.
const (
	defaultDateLayout = "1/2/2006, 3:04:05 PM"
	isoLayout         = "2006-01-02T15:04:05.000Z"
)

// dateNoise matches every character a date value may not contain.
var dateNoise = regexp.MustCompile(`[^0-9\-:TZ.]`)

// zonedLayouts carry their own offset; localLayouts are read in the
// formatter's location.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
		"2006-01",
		"2006",
	}
)

// ParseDate strips everything but digits, '-', ':', 'T', 'Z' and '.' from
// raw and parses what is left. The second result is false when nothing
// parses.
func (f *Formatter) ParseDate(raw string) (time.Time, bool) {
	s := dateNoise.ReplaceAllString(raw, "")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(f.loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate parses raw as a date and formats it.
//
// Options:
//   - "" : 1/2/2006, 3:04:05 PM
//   - "day" : weekday name
//   - "month" : month name
//   - "shortYear" : two-digit year
//   - "iso" : UTC timestamp with milliseconds
//   - anything else : pattern where yyyy, MM and dd are substituted
//
// Unparseable input yields "".
func (f *Formatter) FormatDate(raw, option string) string {
	t, ok := f.ParseDate(raw)
	if !ok {
		return ""
	}
	return f.formatTime(t, option)
}

func (f *Formatter) formatTime(t time.Time, option string) string {
	t = t.In(f.loc)
	switch strings.TrimSpace(option) {
	case "":
		return t.Format(defaultDateLayout)
	case "day":
		return t.Weekday().String()
	case "month":
		return t.Month().String()
	case "shortYear":
		return t.Format("06")
	case "iso":
		return t.UTC().Format(isoLayout)
	default:
		return applyDatePattern(option, t)
	}
}

func applyDatePattern(pattern string, t time.Time) string {
	out := strings.ReplaceAll(pattern, "yyyy", strconv.Itoa(t.Year()))
	out = strings.ReplaceAll(out, "MM", twoDigits(int(t.Month())))
	return strings.ReplaceAll(out, "dd", twoDigits(t.Day()))
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// Spreadsheet serial limits: 2958465 is 9999-12-31.
const (
	maxExcelSerial = 2958465
	msPerDay       = 24 * 60 * 60 * 1000

	// excelPhantomLeapDay is the serial of 1900-02-29, a day the 1900
	// system counts but the calendar never had.
	excelPhantomLeapDay = 60
)

// ExcelTime converts a day-serial to a wall-clock time in the formatter's
// location. The integer part counts days, the fraction is the time of day
// rounded to the millisecond.
//
// In the 1900 system serial 1 is 1900-01-01 and serials after the phantom
// 1900-02-29 are shifted back one day, so 44927 is 2023-01-01. In the 1904
// system serial 0 is 1904-01-01.
func (f *Formatter) ExcelTime(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}

	whole := math.Floor(serial)
	ms := math.Round((serial - whole) * msPerDay)
	days := int(whole)

	year := 1904
	if !f.date1904 {
		year = 1900
		if days > excelPhantomLeapDay {
			days--
		}
		days--
	}
	// time.Date normalizes the day and nanosecond overflow on the wall
	// clock, so DST transitions do not shift the time of day.
	return time.Date(year, time.January, 1+days, 0, 0, 0, int(ms)*int(time.Millisecond), f.loc), true
}

// excelSerial matches the leading numeric part of a serial.
var excelSerial = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FormatExcelDate parses raw as a spreadsheet serial and formats the
// resulting date with the same options as FormatDate.
// Unparseable or negative serials yield "".
func (f *Formatter) FormatExcelDate(raw, option string) string {
	serial, ok := leadingFloat(strings.TrimSpace(raw), excelSerial)
	if !ok {
		return ""
	}
	t, ok := f.ExcelTime(serial)
	if !ok {
		return ""
	}
	return f.formatTime(t, option)
}

// leadingFloat parses the longest prefix of s matched by re.
func leadingFloat(s string, re *regexp.Regexp) (float64, bool) {
	m := re.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
