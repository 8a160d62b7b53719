// Package format renders amounts the way an Indian reader expects them:
// lakh/crore digit grouping, rupee symbol and amounts in words.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes formatted currency.
const RupeeSymbol = "₹"

// Currency returns a whole-rupee string with Indian grouping (e.g., "-₹12,34,568").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	grouped := groupIndian(d.Abs().StringFixed(0))
	if d.IsNegative() {
		return "-" + RupeeSymbol + grouped
	}
	return RupeeSymbol + grouped
}

// NumericCurrency returns an amount with paise and Indian grouping but no
// symbol (e.g., "-12,34,567.89").
func NumericCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)
	formatted := groupIndian(parts[0]) + "." + parts[1]
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// Percent renders a percentage with two decimals only when it has a
// fractional part (45 -> "45%", 6.745 -> "6.75%").
func Percent(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	if d.IsInteger() {
		return d.StringFixed(0) + "%"
	}
	return d.StringFixed(2) + "%"
}

// Compact abbreviates large amounts using crore (Cr), lakh (L) and
// thousand (K) units with up to two decimals.
func Compact(amount float64) string {
	d := decimal.NewFromFloat(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	units := []struct {
		size   decimal.Decimal
		suffix string
	}{
		{crore, " Cr"},
		{lakh, " L"},
		{thousand, " K"},
	}
	for _, unit := range units {
		if d.GreaterThanOrEqual(unit.size) {
			return sign + RupeeSymbol + d.Div(unit.size).Round(2).String() + unit.suffix
		}
	}
	return sign + RupeeSymbol + d.Round(0).String()
}

// groupIndian inserts separators after the last three digits and then every
// two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var builder strings.Builder
	for i, digit := range head {
		if i > 0 && (len(head)-i)%2 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String() + "," + tail
}
