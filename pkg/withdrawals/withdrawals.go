// Package withdrawals implements the depletion and transfer engine behind the
// SWP and STP calculators. Balances compound at the true monthly equivalent
// of the annual rate rather than at annual/12.
package withdrawals

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

// Never is the exhaustion period reported for a balance that outlives the
// simulation horizon.
const Never = 0

// MonthlyEquivalentRate is (1 + R/100)^(1/12) - 1.
func MonthlyEquivalentRate(annualRatePercent float64) float64 {
	if annualRatePercent <= 0 {
		return 0
	}
	return math.Pow(1+mathutil.PercentToDecimal(annualRatePercent), 1.0/constants.MonthsPerYear) - 1
}

// WithdrawalResult is the outcome of a systematic withdrawal plan.
type WithdrawalResult struct {
	InitialInvestment float64                  `json:"initialInvestment"`
	WithdrawalAmount  float64                  `json:"withdrawalAmount"`
	RemainingBalance  float64                  `json:"remainingBalance"`
	TotalWithdrawn    float64                  `json:"totalWithdrawn"`
	TotalGrowth       float64                  `json:"totalGrowth"`
	Withdrawals       int                      `json:"withdrawals"`
	Exhausted         bool                     `json:"exhausted"`
	ExhaustedAt       int                      `json:"exhaustedAt,omitempty"`
	Rows              []schedule.PeriodRow     `json:"rows,omitempty"`
	Years             []schedule.YearlySummary `json:"years"`
}

// SystematicWithdrawal grows the balance every month and withdraws
// min(withdrawal, balance) on every interval month. The simulation stops
// early once the balance reaches zero.
func SystematicWithdrawal(initialInvestment, withdrawalAmount, annualRatePercent float64, months int, f investments.Frequency) WithdrawalResult {
	result := WithdrawalResult{InitialInvestment: initialInvestment, WithdrawalAmount: withdrawalAmount}
	if !validPlan(initialInvestment, withdrawalAmount, annualRatePercent, months, f) {
		return result
	}

	rows := simulate(initialInvestment, withdrawalAmount, annualRatePercent, months, f.IntervalMonths())
	for _, row := range rows {
		result.TotalWithdrawn += row.Amount
		result.TotalGrowth += row.Interest
		if row.Amount > 0 {
			result.Withdrawals++
		}
	}

	last := rows[len(rows)-1]
	result.RemainingBalance = last.Value
	if last.Value <= 0 {
		result.Exhausted = true
		result.ExhaustedAt = last.Period
	}
	result.Rows = rows
	result.Years = schedule.AggregateYearly(rows)
	return result
}

// ExhaustionPeriod runs the withdrawal simulation without a tenure, up to
// the 100 year horizon, and returns the month the balance reaches zero. The
// second value is false (and the month Never) when the balance survives.
func ExhaustionPeriod(initialInvestment, withdrawalAmount, annualRatePercent float64, f investments.Frequency) (int, bool) {
	if !validPlan(initialInvestment, withdrawalAmount, annualRatePercent, constants.ExhaustionHorizonMonths, f) {
		return Never, false
	}

	rows := simulate(initialInvestment, withdrawalAmount, annualRatePercent, constants.ExhaustionHorizonMonths, f.IntervalMonths())
	if last := rows[len(rows)-1]; last.Value <= 0 {
		return last.Period, true
	}
	return Never, false
}

func validPlan(initial, amount, rate float64, months int, f investments.Frequency) bool {
	return initial > 0 && amount > 0 && rate >= 0 && months > 0 && months <= constants.MaxTenureMonths && f.Valid() &&
		mathutil.IsFinite(initial) && mathutil.IsFinite(amount) && mathutil.IsFinite(rate)
}

func simulate(initial, amount, rate float64, months, interval int) []schedule.PeriodRow {
	m := MonthlyEquivalentRate(rate)
	balance := initial
	rows := make([]schedule.PeriodRow, 0, months)

	for month := 1; month <= months; month++ {
		growth := balance * m
		balance += growth

		withdrawn := 0.0
		if month%interval == 0 {
			withdrawn = min(amount, balance)
			balance = max(0, balance-withdrawn)
		}

		rows = append(rows, schedule.PeriodRow{
			Period:   month,
			Amount:   withdrawn,
			Interest: growth,
			Invested: initial,
			Value:    balance,
		})
		if balance <= 0 {
			break
		}
	}
	return rows
}
