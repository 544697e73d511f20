package value

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/currency"
)

// DefaultCurrency is used when a currency placeholder names none.
var DefaultCurrency = currency.USD

// currencySymbols maps the well-known symbols to their ISO codes.
var currencySymbols = map[rune]currency.Unit{
	'$': currency.USD,
	'€': currency.EUR,
	'£': currency.GBP,
	'¥': currency.JPY,
	'₩': currency.KRW,
	'₹': currency.INR,
	'₽': currency.RUB,
}

// displaySymbols is the prefix for codes with a well-known symbol.
// Other codes are prefixed with the code and a space.
var displaySymbols = map[currency.Unit]string{
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
	currency.JPY: "¥",
	currency.KRW: "₩",
	currency.INR: "₹",
}

// ParseCurrency resolves a currency option.
//
// The option is a three-letter ISO 4217 code ("EUR"), a five-character
// compound whose last three characters are the code ("en-EUR"), or one
// of the symbols $ € £ ¥ ₩ ₹ ₽. Anything else returns ErrInvalidCurrency.
func ParseCurrency(option string) (currency.Unit, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return DefaultCurrency, nil
	}

	var code string
	switch utf8.RuneCountInString(option) {
	case 3:
		code = option
	case 5:
		runes := []rune(option)
		code = string(runes[2:])
	default:
		r, _ := utf8.DecodeRuneInString(option)
		unit, ok := currencySymbols[r]
		if !ok {
			return currency.Unit{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, option)
		}
		return unit, nil
	}

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, option)
	}
	return unit, nil
}

// FormatCurrency renders raw as a grouped monetary amount in the currency
// named by option (default USD). The number of fraction digits follows
// the currency's standard rounding: "$1,234.50", "¥1,235", "CHF 9.50".
func (f *Formatter) FormatCurrency(raw, option string) (string, error) {
	unit, err := ParseCurrency(option)
	if err != nil {
		return "", err
	}

	v, ok := ParseNumber(raw)
	if !ok {
		return "", nil
	}

	scale, _ := currency.Standard.Rounding(unit)
	amount := f.decimal(round(v, scale), scale, scale, true)

	sign := ""
	if strings.HasPrefix(amount, "-") {
		sign, amount = "-", amount[1:]
	}
	if sym, ok := displaySymbols[unit]; ok {
		return sign + sym + amount, nil
	}
	return sign + unit.String() + " " + amount, nil
}
