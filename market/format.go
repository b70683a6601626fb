package market

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var subscriptDigits = []rune{'₀', '₁', '₂', '₃', '₄', '₅', '₆', '₇', '₈', '₉'}

// FormatUSD renders a monetary amount as a localized USD string, e.g.
// "$1,234.56". Amounts are rounded to the cent for display only; the
// ledger itself never rounds.
func FormatUSD(amount decimal.Decimal) string {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatPrice renders an asset price with precision scaled to its
// magnitude. Sub-1e-8 prices use subscript zero-run notation, e.g.
// "$0.0₅1234", matching common DEX screeners.
func FormatPrice(price decimal.Decimal) string {
	if price.IsZero() || price.IsNegative() {
		return "$0"
	}

	one := decimal.NewFromInt(1)
	switch {
	case price.GreaterThanOrEqual(one):
		return "$" + price.StringFixed(2)
	case price.GreaterThanOrEqual(decimal.NewFromFloat(0.01)):
		return "$" + price.StringFixed(4)
	case price.GreaterThanOrEqual(decimal.NewFromFloat(0.0001)):
		return "$" + price.StringFixed(6)
	case price.GreaterThanOrEqual(decimal.NewFromFloat(0.00000001)):
		return "$" + price.StringFixed(10)
	}

	// Count the zero run after the decimal point and keep four
	// significant digits past it.
	s := price.StringFixed(20)
	rest, ok := strings.CutPrefix(s, "0.")
	if !ok {
		return "$" + price.StringFixed(10)
	}
	zeros := 0
	for zeros < len(rest) && rest[zeros] == '0' {
		zeros++
	}
	significant := rest[zeros:]
	if len(significant) > 4 {
		significant = significant[:4]
	}
	return fmt.Sprintf("$0.0%s%s", subscript(zeros), significant)
}

// FormatCompact renders large magnitudes with B/M/K suffixes, used for
// volume, liquidity and market-cap columns.
func FormatCompact(n float64) string {
	switch {
	case n == 0:
		return "0"
	case n >= 1e9:
		return strconv.FormatFloat(n/1e9, 'f', 2, 64) + "B"
	case n >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 2, 64) + "M"
	case n >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 2, 64) + "K"
	case n > 0 && n < 0.00001:
		return strconv.FormatFloat(n, 'e', 2, 64)
	default:
		return strconv.FormatFloat(n, 'f', 2, 64)
	}
}

func subscript(n int) string {
	var b strings.Builder
	for _, d := range strconv.Itoa(n) {
		b.WriteRune(subscriptDigits[d-'0'])
	}
	return b.String()
}
