// Package schedule holds the month-by-month row model shared by every
// projection engine and folds those rows into year-by-year summaries.
package schedule

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// PeriodRow is one elapsed month of a projection.
type PeriodRow struct {
	Period    int     `json:"period"`
	Amount    float64 `json:"amount"`              // installment, contribution, withdrawal or transfer
	Interest  float64 `json:"interest"`            // interest charged or growth earned this month
	Principal float64 `json:"principal,omitempty"` // principal repaid (loans only)
	Invested  float64 `json:"invested,omitempty"`  // cumulative money put in
	Value     float64 `json:"value"`               // outstanding principal or running balance
}

// YearlySummary aggregates the PeriodRows that fall in one year of the tenure.
type YearlySummary struct {
	Year           int     `json:"year"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPrincipal float64 `json:"totalPrincipal,omitempty"`
	Invested       float64 `json:"invested,omitempty"`
	Value          float64 `json:"value"`
	ReturnPercent  float64 `json:"returnPercent"`
}

// AggregateYearly groups consecutive 12-month windows of rows into yearly
// summaries. The last window may be shorter than 12 months.
func AggregateYearly(rows []PeriodRow) []YearlySummary {
	if len(rows) == 0 {
		return nil
	}

	years := make([]YearlySummary, 0, (len(rows)+constants.MonthsPerYear-1)/constants.MonthsPerYear)
	for start := 0; start < len(rows); start += constants.MonthsPerYear {
		end := min(start+constants.MonthsPerYear, len(rows))

		summary := YearlySummary{Year: start/constants.MonthsPerYear + 1}
		for _, row := range rows[start:end] {
			summary.TotalAmount += row.Amount
			summary.TotalInterest += row.Interest
			summary.TotalPrincipal += row.Principal
		}
		last := rows[end-1]
		summary.Invested = last.Invested
		summary.Value = last.Value
		summary.ReturnPercent = ReturnPercent(last.Value, last.Invested)
		years = append(years, summary)
	}
	return years
}

// ForceTerminalValue overwrites the final row's value with the closed-form
// terminal value. The difference is booked as interest on that row so the
// row sums keep reconciling with summaries built from them.
func ForceTerminalValue(rows []PeriodRow, value float64) {
	if len(rows) == 0 || !mathutil.IsFinite(value) {
		return
	}
	last := &rows[len(rows)-1]
	last.Interest += value - last.Value
	last.Value = value
}

// ReturnPercent is the absolute return of value over invested, rounded to two
// decimals. It is zero when nothing was invested.
func ReturnPercent(value, invested float64) float64 {
	if invested <= 0 {
		return 0
	}
	return mathutil.Round(mathutil.CalculatePercentage(value-invested, invested))
}

// Totals sums the yearly rows.
type Totals struct {
	Amount    float64
	Interest  float64
	Principal float64
	Value     float64
	Invested  float64
}

// Sum folds yearly summaries into totals; Value and Invested come from the
// final year.
func Sum(years []YearlySummary) Totals {
	var totals Totals
	for _, year := range years {
		totals.Amount += year.TotalAmount
		totals.Interest += year.TotalInterest
		totals.Principal += year.TotalPrincipal
	}
	if len(years) > 0 {
		totals.Value = years[len(years)-1].Value
		totals.Invested = years[len(years)-1].Invested
	}
	return totals
}
