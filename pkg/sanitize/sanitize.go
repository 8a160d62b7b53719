// Package sanitize turns free-form form input into clamped numbers the
// engines can consume. Input with no digits yields 0, which the engines
// treat as "not yet computable".
package sanitize

import (
	"math"
	"strconv"
	"strings"
)

// Digits strips everything except ASCII digits.
func Digits(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Amount parses a whole currency amount such as "₹12,34,567" and clamps it
// to [lo, hi]. A hi of 0 means no upper bound.
func Amount(raw string, lo, hi float64) float64 {
	digits := Digits(raw)
	if digits == "" {
		return 0
	}
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return clamp(value, lo, hi)
}

// Rate parses a percentage such as "8.75 %" keeping the first decimal point
// and at most two decimals, then clamps it to [lo, hi].
func Rate(raw string, lo, hi float64) float64 {
	var builder strings.Builder
	seenPoint := false
	decimals := 0
	for _, r := range raw {
		switch {
		case r == '.' && !seenPoint:
			seenPoint = true
			builder.WriteRune(r)
		case r >= '0' && r <= '9':
			if seenPoint {
				if decimals == 2 {
					continue
				}
				decimals++
			}
			builder.WriteRune(r)
		}
	}

	cleaned := strings.TrimSuffix(builder.String(), ".")
	if cleaned == "" || cleaned == "." {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return clamp(value, lo, hi)
}

// Months parses a whole number of months and clamps it to [lo, hi].
func Months(raw string, lo, hi int) int {
	digits := Digits(raw)
	if digits == "" {
		return 0
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		// Too many digits for an int: treat as the upper bound.
		if hi > 0 {
			return hi
		}
		return math.MaxInt32
	}
	return int(clamp(float64(value), float64(lo), float64(hi)))
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if hi > 0 && value > hi {
		return hi
	}
	return value
}
