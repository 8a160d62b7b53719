package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1000)
	lakh     = decimal.NewFromInt(100000)
	crore    = decimal.NewFromInt(10000000)
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Words spells a whole-rupee amount in the Indian numbering system, e.g.
// 1234567 -> "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven
// Rupees". Paise are rounded away. Amounts too large to spell fall back to
// Currency.
func Words(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	if d.IsZero() {
		return "Zero Rupees"
	}
	if !d.Abs().BigInt().IsInt64() {
		return Currency(amount)
	}

	prefix := ""
	if d.IsNegative() {
		prefix = "Minus "
		d = d.Abs()
	}
	return prefix + spell(d.BigInt().Int64()) + " Rupees"
}

func spell(n int64) string {
	var parts []string
	if n >= 10000000 {
		parts = append(parts, spell(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, belowHundred(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, belowHundred(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
