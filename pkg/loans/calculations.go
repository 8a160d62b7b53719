// Package loans provides the amortization engine: equated monthly
// installments, month-by-month principal/interest schedules and the
// rate-change decision between keeping the tenure or the installment.
package loans

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

// MonthlyRate converts an annual percentage into the simple monthly rate
// used by the amortization formula.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ComputeEMI returns the equated monthly installment rounded to the nearest
// currency unit. Missing or negative input yields 0. A zero rate yields the
// flat installment principal/months.
func ComputeEMI(principal, annualRatePercent float64, months int) float64 {
	return math.Round(ExactInstallment(principal, annualRatePercent, months))
}

// ExactInstallment is the unrounded amortizing installment
// P*r*(1+r)^n / ((1+r)^n - 1).
func ExactInstallment(principal, annualRatePercent float64, months int) float64 {
	if principal <= 0 || months <= 0 || annualRatePercent < 0 || !mathutil.IsFinite(principal) || !mathutil.IsFinite(annualRatePercent) {
		return 0
	}

	flat := principal / float64(months)
	if annualRatePercent == 0 {
		return flat
	}

	r := MonthlyRate(annualRatePercent)
	power := math.Pow(1+r, float64(months))
	return mathutil.FiniteOr(principal*r*power/(power-1), flat)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}

// AmortizationSchedule produces one row per month. The final month repays
// whatever principal is still outstanding so the balance ends at exactly 0
// and the principal portions sum to the original principal.
func AmortizationSchedule(principal, annualRatePercent float64, months int, installment float64) []schedule.PeriodRow {
	if principal <= 0 || months <= 0 || months > constants.MaxTenureMonths || installment <= 0 || annualRatePercent < 0 {
		return nil
	}
	if !mathutil.IsFinite(principal) || !mathutil.IsFinite(installment) || !mathutil.IsFinite(annualRatePercent) {
		return nil
	}

	rows := make([]schedule.PeriodRow, 0, months)
	remaining := principal
	for month := 1; month <= months; month++ {
		interest := CalculateInterestPayment(remaining, annualRatePercent)
		principalPortion := installment - interest

		if month == months {
			principalPortion = remaining
			remaining = 0
		} else {
			principalPortion = min(principalPortion, remaining)
			remaining = max(0, remaining-principalPortion)
		}

		rows = append(rows, schedule.PeriodRow{
			Period:    month,
			Amount:    principalPortion + interest,
			Interest:  interest,
			Principal: principalPortion,
			Value:     remaining,
		})
	}
	return rows
}

// LoanSummary holds the scalar results of an amortized loan.
type LoanSummary struct {
	Principal       float64 `json:"principal"`
	Installment     float64 `json:"installment"`
	Months          int     `json:"months"`
	TotalInterest   float64 `json:"totalInterest"`
	TotalPayment    float64 `json:"totalPayment"`
	InterestPercent float64 `json:"interestPercent"`
}

// Summarize derives the loan summary from its yearly breakdown so the two can
// never disagree.
func Summarize(principal, installment float64, months int, years []schedule.YearlySummary) LoanSummary {
	if len(years) == 0 {
		return LoanSummary{}
	}
	totals := schedule.Sum(years)
	return LoanSummary{
		Principal:       principal,
		Installment:     installment,
		Months:          months,
		TotalInterest:   totals.Interest,
		TotalPayment:    totals.Amount,
		InterestPercent: mathutil.Round(mathutil.CalculatePercentage(totals.Interest, totals.Amount)),
	}
}

// Loan computes the installment, schedule, yearly breakdown and summary for a
// loan. A positive installmentOverride replaces the computed EMI; when it
// repays the loan early the summary tenure is the last month with a payment.
func Loan(principal, annualRatePercent float64, months int, installmentOverride float64) (LoanSummary, []schedule.PeriodRow, []schedule.YearlySummary) {
	installment := installmentOverride
	if installment <= 0 {
		installment = ComputeEMI(principal, annualRatePercent, months)
	}

	rows := AmortizationSchedule(principal, annualRatePercent, months, installment)
	years := schedule.AggregateYearly(rows)
	return Summarize(principal, installment, paidMonths(rows), years), rows, years
}

func paidMonths(rows []schedule.PeriodRow) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Amount > 0 {
			return rows[i].Period
		}
	}
	return 0
}
