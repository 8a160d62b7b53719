package testutil

import (
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

func TestFindTable(t *testing.T) {
	result := &calculator.Result{
		Tables: []calculator.Table{
			{Name: "Source fund", Years: []schedule.YearlySummary{{Year: 1, Value: 1000}}},
			{Name: "Target fund", Years: []schedule.YearlySummary{{Year: 1, Value: 2000}}},
		},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedValue float64
	}{
		{
			name:          "Find source fund",
			searchName:    "Source fund",
			expectFound:   true,
			expectedValue: 1000,
		},
		{
			name:          "Find target fund",
			searchName:    "Target fund",
			expectFound:   true,
			expectedValue: 2000,
		},
		{
			name:        "Non-existent table",
			searchName:  "Amortization",
			expectFound: false,
		},
		{
			name:        "Case sensitive search",
			searchName:  "source fund",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := FindTable(result, tt.searchName)
			if !tt.expectFound {
				if table != nil {
					t.Errorf("expected no table, got %s", table.Name)
				}
				return
			}
			if table == nil {
				t.Fatalf("table %q not found", tt.searchName)
			}
			if table.Years[0].Value != tt.expectedValue {
				t.Errorf("value = %.2f, expected %.2f", table.Years[0].Value, tt.expectedValue)
			}
		})
	}

	if FindTable(nil, "Source fund") != nil {
		t.Error("expected nil for a nil result")
	}
}

func TestFindTableReturnsPointer(t *testing.T) {
	result := &calculator.Result{Tables: []calculator.Table{{Name: "Growth"}}}
	table := FindTable(result, "Growth")
	table.Labels = []string{"2025-01"}
	if len(result.Tables[0].Labels) != 1 {
		t.Error("FindTable should point into the result")
	}
}

func TestFindYear(t *testing.T) {
	years := []schedule.YearlySummary{{Year: 1, Value: 10}, {Year: 2, Value: 20}}
	if year := FindYear(years, 2); year == nil || year.Value != 20 {
		t.Errorf("FindYear(2) = %+v, expected value 20", year)
	}
	if FindYear(years, 3) != nil {
		t.Error("expected nil past the end of the schedule")
	}
	if FindYear(nil, 1) != nil {
		t.Error("expected nil for empty schedule")
	}
}

func TestLastYear(t *testing.T) {
	years := []schedule.YearlySummary{{Year: 1}, {Year: 2, Value: 20}}
	if last := LastYear(years); last == nil || last.Year != 2 {
		t.Errorf("LastYear() = %+v, expected year 2", last)
	}
	if LastYear(nil) != nil {
		t.Error("expected nil for empty schedule")
	}
}

func TestSumContributions(t *testing.T) {
	rows := []schedule.PeriodRow{{Amount: 1000}, {Amount: 0}, {Amount: 2500.5}}
	if got := SumContributions(rows); got != 3500.5 {
		t.Errorf("SumContributions() = %.2f, expected 3500.50", got)
	}
	if got := SumContributions(nil); got != 0 {
		t.Errorf("SumContributions(nil) = %.2f, expected 0", got)
	}
}
