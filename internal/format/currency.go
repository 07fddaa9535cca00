package format

import (
	"math"
	"strconv"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencySymbol is the single unit of account. The language only changes
// digit grouping and the decimal separator.
const CurrencySymbol = "R$"

// currencySep separates the symbol from the amount in pt-BR. It is a
// no-break space (U+00A0) so messaging apps never wrap "R$" away from the digits.
const currencySep = "\u00a0"

// FormatCurrency renders v with two decimals using the grouping rules of lang,
// e.g. "R$\u00a01.234,50" for pt-BR and "R$1,234.50" for en-US.
// The sign is decided after rounding, so -0.001 renders as zero.
func FormatCurrency(v float64, lang Language) string {
	v = math.Round(v*100) / 100
	sign := ""
	if v < 0 {
		sign = "-"
	}
	v = math.Abs(v)

	digits := message.NewPrinter(lang.Tag()).Sprint(number.Decimal(v, number.Scale(2)))

	if lang == EnglishUS {
		return sign + CurrencySymbol + digits
	}
	return sign + CurrencySymbol + currencySep + digits
}

// FormatDistance renders km with one decimal place, e.g. "12.3 km".
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64) + " km"
}
