// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

// FindTable finds a schedule by name in a calculation result.
// Returns a pointer to the table if found, nil otherwise.
func FindTable(result *calculator.Result, name string) *calculator.Table {
	if result == nil {
		return nil
	}
	for i := range result.Tables {
		if result.Tables[i].Name == name {
			return &result.Tables[i]
		}
	}
	return nil
}

// FindYear returns the summary for a 1-based year of the tenure, nil when the
// schedule is shorter.
func FindYear(years []schedule.YearlySummary, year int) *schedule.YearlySummary {
	for i := range years {
		if years[i].Year == year {
			return &years[i]
		}
	}
	return nil
}

// LastYear returns the final year of a schedule, nil when it is empty.
func LastYear(years []schedule.YearlySummary) *schedule.YearlySummary {
	if len(years) == 0 {
		return nil
	}
	return &years[len(years)-1]
}

// SumContributions totals the Amount column of monthly rows.
func SumContributions(rows []schedule.PeriodRow) float64 {
	total := 0.0
	for _, row := range rows {
		total += row.Amount
	}
	return total
}
