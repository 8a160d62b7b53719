// Package investments implements the annuity accumulation engine behind the
// SIP, goal and PPF calculators.
package investments

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

// FutureValue is the annuity-due value of periodicAmount contributed at the
// start of every period:
//
//	A * ((1+r)^n - 1) / r * (1+r)
//
// A zero rate yields A*n. Invalid input or a non-finite result yields 0.
func FutureValue(periodicAmount, annualRatePercent float64, months int, f Frequency) float64 {
	n := NumberOfContributions(months, f)
	if periodicAmount <= 0 || n == 0 || annualRatePercent < 0 || !mathutil.IsFinite(periodicAmount) {
		return 0
	}

	if annualRatePercent == 0 {
		return periodicAmount * float64(n)
	}

	r := RatePerPeriod(annualRatePercent, f)
	fv := periodicAmount * (math.Pow(1+r, float64(n)) - 1) / r * (1 + r)
	return mathutil.FiniteOr(fv, 0)
}

// RequiredPeriodicInvestment inverts FutureValue: the contribution per period
// that reaches targetAmount by the end of the tenure.
func RequiredPeriodicInvestment(targetAmount, annualRatePercent float64, months int, f Frequency) float64 {
	n := NumberOfContributions(months, f)
	if targetAmount <= 0 || n == 0 || annualRatePercent < 0 || !mathutil.IsFinite(targetAmount) {
		return 0
	}

	if annualRatePercent == 0 {
		return targetAmount / float64(n)
	}

	r := RatePerPeriod(annualRatePercent, f)
	amount := targetAmount * r / ((math.Pow(1+r, float64(n)) - 1) * (1 + r))
	return mathutil.FiniteOr(amount, 0)
}

// AccumulationSchedule simulates the tenure month by month. On a contribution
// month growth is earned on the prior value and then the contribution is
// added; other months carry the totals forward untouched. The last row is
// forced to terminalValue.
func AccumulationSchedule(periodicAmount, annualRatePercent float64, months int, f Frequency, terminalValue float64) []schedule.PeriodRow {
	interval := f.IntervalMonths()
	if periodicAmount <= 0 || months <= 0 || months > constants.MaxTenureMonths || interval == 0 || annualRatePercent < 0 {
		return nil
	}

	r := RatePerPeriod(annualRatePercent, f)
	rows := make([]schedule.PeriodRow, 0, months)
	value, invested := 0.0, 0.0

	for month := 1; month <= months; month++ {
		row := schedule.PeriodRow{Period: month}
		if (month-1)%interval == 0 {
			row.Interest = value * r
			row.Amount = periodicAmount
			value += row.Interest + periodicAmount
			invested += periodicAmount
		}
		row.Invested = invested
		row.Value = value
		rows = append(rows, row)
	}

	schedule.ForceTerminalValue(rows, terminalValue)
	return rows
}

// Summary holds the scalar results of an accumulation plan.
type Summary struct {
	PeriodicAmount        float64 `json:"periodicAmount"`
	Contributions         int     `json:"contributions"`
	TotalInvestment       float64 `json:"totalInvestment"`
	FinalValue            float64 `json:"finalValue"`
	WealthGained          float64 `json:"wealthGained"`
	AbsoluteReturnPercent float64 `json:"absoluteReturnPercent"`
	TargetAmount          float64 `json:"targetAmount,omitempty"`
}

// Summarize derives the summary metrics of a plan.
func Summarize(periodicAmount float64, contributions int, finalValue float64) Summary {
	total := periodicAmount * float64(contributions)
	gained := finalValue - total
	percent := 0.0
	if total > 0 {
		percent = mathutil.Round(gained / total * constants.PercentageMultiplier)
	}
	return Summary{
		PeriodicAmount:        periodicAmount,
		Contributions:         contributions,
		TotalInvestment:       total,
		FinalValue:            finalValue,
		WealthGained:          gained,
		AbsoluteReturnPercent: percent,
	}
}

// Plan is a complete accumulation projection.
type Plan struct {
	Summary Summary                  `json:"summary"`
	Rows    []schedule.PeriodRow     `json:"rows,omitempty"`
	Years   []schedule.YearlySummary `json:"years"`
}

// SIP projects a systematic investment plan of periodicAmount per period.
func SIP(periodicAmount, annualRatePercent float64, months int, f Frequency) Plan {
	fv := FutureValue(periodicAmount, annualRatePercent, months, f)
	if fv == 0 {
		return Plan{}
	}
	rows := AccumulationSchedule(periodicAmount, annualRatePercent, months, f, fv)
	return Plan{
		Summary: Summarize(periodicAmount, NumberOfContributions(months, f), fv),
		Rows:    rows,
		Years:   schedule.AggregateYearly(rows),
	}
}

// Goal finds the whole-currency contribution that reaches targetAmount and
// projects it. The contribution is rounded up so the goal is never missed.
func Goal(targetAmount, annualRatePercent float64, months int, f Frequency) Plan {
	required := RequiredPeriodicInvestment(targetAmount, annualRatePercent, months, f)
	if required == 0 {
		return Plan{}
	}
	// Shave float noise so an exact 1000.0000000001 stays 1000.
	plan := SIP(math.Ceil(required-1e-9), annualRatePercent, months, f)
	plan.Summary.TargetAmount = targetAmount
	return plan
}

// PPF projects a Public Provident Fund account: one deposit at the start of
// every year.
func PPF(yearlyDeposit, annualRatePercent float64, months int) Plan {
	return SIP(yearlyDeposit, annualRatePercent, months, Yearly)
}

// PPFDepositAllowed reports whether a yearly deposit is inside the statutory
// limits.
func PPFDepositAllowed(yearlyDeposit float64) bool {
	return yearlyDeposit >= constants.PPFMinYearlyDeposit && yearlyDeposit <= constants.PPFMaxYearlyDeposit
}
