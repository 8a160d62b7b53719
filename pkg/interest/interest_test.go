package interest

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/rates"
)

func TestSimple(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		rate       float64
		months     int
		interest   float64
		total      float64
		percentage float64
	}{
		{"One lakh at 1% for 12 months", 100000, 1, 12, 12000, 112000, 12},
		{"Fractional rate", 50000, 0.75, 24, 9000, 59000, 18},
		{"Zero rate", 50000, 0, 24, 0, 50000, 0},
		{"Zero principal", 0, 1, 12, 0, 0, 0},
		{"Zero months", 100000, 1, 0, 0, 0, 0},
		{"Negative rate", 100000, -1, 12, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simple(tt.principal, tt.rate, tt.months)
			if math.Abs(got.Interest-tt.interest) > 1e-9 {
				t.Errorf("Interest = %.2f, expected %.2f", got.Interest, tt.interest)
			}
			if math.Abs(got.TotalAmount-tt.total) > 1e-9 {
				t.Errorf("TotalAmount = %.2f, expected %.2f", got.TotalAmount, tt.total)
			}
			if math.Abs(got.TotalPercentage-tt.percentage) > 1e-9 {
				t.Errorf("TotalPercentage = %.2f, expected %.2f", got.TotalPercentage, tt.percentage)
			}
		})
	}
}

func TestDepositMaturity(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		expected  float64
	}{
		{"One year at 8%", 100000, 8, 12, 108243.22},
		{"Three years at 7%", 100000, 7, 36, 123143.93},
		{"Zero rate", 100000, 0, 36, 100000},
		{"Invalid", 0, 7, 36, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DepositMaturity(tt.principal, tt.rate, tt.months); math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("DepositMaturity() = %.2f, expected %.2f", got, tt.expected)
			}
		})
	}
}

func TestCompareDeposits(t *testing.T) {
	banks := []rates.BankRate{
		{Bank: "Zeta Bank", Category: "public", General: 7.0, Senior: 7.5},
		{Bank: "Alpha Bank", Category: "private", General: 7.0, Senior: 7.4},
		{Bank: "Omega Bank", Category: "small-finance", General: 8.0, Senior: 8.5},
	}

	quotes := CompareDeposits(100000, 36, banks, false)
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}
	order := []string{"Omega Bank", "Alpha Bank", "Zeta Bank"}
	for i, bank := range order {
		if quotes[i].Bank != bank {
			t.Errorf("quote %d = %s, expected %s", i, quotes[i].Bank, bank)
		}
	}
	if math.Abs(quotes[1].Interest-(quotes[1].Maturity-100000)) > 1e-9 {
		t.Errorf("interest %.2f does not match maturity %.2f", quotes[1].Interest, quotes[1].Maturity)
	}

	senior := CompareDeposits(100000, 36, banks, true)
	if senior[1].Bank != "Zeta Bank" || senior[1].RatePercent != 7.5 {
		t.Errorf("senior comparison should rank Zeta Bank second, got %+v", senior[1])
	}

	if quotes := CompareDeposits(0, 36, banks, false); quotes != nil {
		t.Errorf("expected no quotes for a zero amount")
	}
}
