// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Round rounds a value to paise.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundTo rounds a value to the nearest multiple of step. A non-positive step
// returns the value unchanged.
func RoundTo(val, step float64) float64 {
	if step <= 0 {
		return val
	}
	return math.Round(val/step) * step
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// FiniteOr returns val when it is finite and fallback otherwise.
func FiniteOr(val, fallback float64) float64 {
	if IsFinite(val) {
		return val
	}
	return fallback
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// PercentToDecimal converts a percentage such as 8.5 into 0.085.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
