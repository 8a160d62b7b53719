package format

import "testing"

func TestWords(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "Zero Rupees"},
		{7, "Seven Rupees"},
		{19, "Nineteen Rupees"},
		{40, "Forty Rupees"},
		{105, "One Hundred Five Rupees"},
		{21247, "Twenty One Thousand Two Hundred Forty Seven Rupees"},
		{1234567, "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Rupees"},
		{50000000, "Five Crore Rupees"},
		{1500000000, "One Hundred Fifty Crore Rupees"},
		{-2500, "Minus Two Thousand Five Hundred Rupees"},
		{99.6, "One Hundred Rupees"},
		{1e19, "₹1,00,00,00,00,00,00,00,00,000"},
		{-1e19, "-₹1,00,00,00,00,00,00,00,00,000"},
	}

	for _, tt := range tests {
		if got := Words(tt.amount); got != tt.expected {
			t.Errorf("Words(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}
