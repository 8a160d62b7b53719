package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Exactly one paisa", 0.01, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		step     float64
		expected float64
	}{
		{"Nearest hundred", 1249, 100, 1200},
		{"Midpoint rounds away from zero", 1250, 100, 1300},
		{"Step of five thousand", 117400, 5000, 115000},
		{"Zero step leaves value", 1234.5, 0, 1234.5},
		{"Negative step leaves value", 1234.5, -10, 1234.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundTo(tt.value, tt.step); got != tt.expected {
				t.Errorf("RoundTo(%v, %v) = %v, expected %v", tt.value, tt.step, got, tt.expected)
			}
		})
	}
}

func TestIsFiniteAndFiniteOr(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		finite   bool
		fallback float64
		expected float64
	}{
		{"Finite number", 123.45, true, 0, 123.45},
		{"Positive infinity", math.Inf(1), false, 7, 7},
		{"Negative infinity", math.Inf(-1), false, 0, 0},
		{"NaN", math.NaN(), false, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.input); got != tt.finite {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, got, tt.finite)
			}
			if got := FiniteOr(tt.input, tt.fallback); got != tt.expected {
				t.Errorf("FiniteOr(%v, %v) = %v, expected %v", tt.input, tt.fallback, got, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Quarter", 25, 100, 25},
		{"Gain over investment", 54000, 120000, 45},
		{"Zero total", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculatePercentage(tt.value, tt.total); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v", tt.value, tt.total, got, tt.expected)
			}
		})
	}
}
