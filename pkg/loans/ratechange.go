package loans

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// RateChangeOption describes one way of absorbing an interest rate change.
type RateChangeOption struct {
	Installment      float64 `json:"installment"`
	Months           int     `json:"months"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalPayment     float64 `json:"totalPayment"`
	InstallmentDelta float64 `json:"installmentDelta"`
	MonthsDelta      int     `json:"monthsDelta"`
	InterestDelta    float64 `json:"interestDelta"`
}

// RateChangeScenario compares the current loan against keeping the tenure
// fixed (new installment) or keeping the installment fixed (new tenure).
type RateChangeScenario struct {
	Principal        float64          `json:"principal"`
	CurrentRate      float64          `json:"currentRate"`
	NewRate          float64          `json:"newRate"`
	Current          RateChangeOption `json:"current"`
	FixedTenure      RateChangeOption `json:"fixedTenure"`
	FixedInstallment RateChangeOption `json:"fixedInstallment"`
}

// TenureForInstallment solves n = -ln(1 - P*r/EMI) / ln(1+r) at the given
// rate, rounded up to whole months. When the installment cannot amortize the
// principal within constants.MaxTenureMonths the fallback tenure is returned
// unchanged.
func TenureForInstallment(principal, annualRatePercent, installment float64, fallback int) int {
	if principal <= 0 || installment <= 0 || annualRatePercent < 0 {
		return fallback
	}

	var n float64
	if annualRatePercent == 0 {
		n = principal / installment
	} else {
		r := MonthlyRate(annualRatePercent)
		coverage := principal * r / installment
		if coverage >= 1 {
			return fallback
		}
		n = -math.Log(1-coverage) / math.Log(1+r)
	}
	if !mathutil.IsFinite(n) || n <= 0 || n > constants.MaxTenureMonths {
		return fallback
	}
	// Guard against 119.99999999 style results before taking the ceiling.
	return int(math.Ceil(n - 1e-9))
}

// RateChange evaluates both options for moving a loan from currentRate to
// newRate. Invalid input yields an empty scenario.
func RateChange(principal, currentRate float64, remainingMonths int, newRate float64) RateChangeScenario {
	scenario := RateChangeScenario{Principal: principal, CurrentRate: currentRate, NewRate: newRate}
	if principal <= 0 || remainingMonths <= 0 || currentRate < 0 || newRate < 0 {
		return scenario
	}

	currentSummary, _, _ := Loan(principal, currentRate, remainingMonths, 0)
	scenario.Current = optionFrom(currentSummary)

	tenureSummary, _, _ := Loan(principal, newRate, remainingMonths, 0)
	scenario.FixedTenure = compareOption(optionFrom(tenureSummary), scenario.Current)

	newMonths := TenureForInstallment(principal, newRate, currentSummary.Installment, remainingMonths)
	installmentSummary, _, _ := Loan(principal, newRate, newMonths, currentSummary.Installment)
	scenario.FixedInstallment = compareOption(optionFrom(installmentSummary), scenario.Current)

	return scenario
}

func optionFrom(summary LoanSummary) RateChangeOption {
	return RateChangeOption{
		Installment:   summary.Installment,
		Months:        summary.Months,
		TotalInterest: summary.TotalInterest,
		TotalPayment:  summary.TotalPayment,
	}
}

func compareOption(option, current RateChangeOption) RateChangeOption {
	option.InstallmentDelta = option.Installment - current.Installment
	option.MonthsDelta = option.Months - current.Months
	option.InterestDelta = option.TotalInterest - current.TotalInterest
	return option
}
