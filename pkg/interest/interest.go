// Package interest implements flat simple interest and the fixed deposit
// comparison across banks.
package interest

import (
	"math"
	"sort"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/rates"
)

// depositCompoundingMonths is the quarterly compounding used by bank FDs.
const depositCompoundingMonths = constants.QuarterlyInterval

// SimpleInterest is a flat, non-compounding interest computation.
type SimpleInterest struct {
	Principal       float64 `json:"principal"`
	RatePercent     float64 `json:"ratePercent"`
	TenureMonths    int     `json:"tenureMonths"`
	Interest        float64 `json:"interest"`
	TotalAmount     float64 `json:"totalAmount"`
	TotalPercentage float64 `json:"totalPercentage"`
}

// Simple computes interest = P * R * tenure / 100. The rate is applied once
// per month of tenure.
func Simple(principal, ratePercent float64, tenureMonths int) SimpleInterest {
	result := SimpleInterest{Principal: principal, RatePercent: ratePercent, TenureMonths: tenureMonths}
	if principal <= 0 || ratePercent < 0 || tenureMonths <= 0 || !mathutil.IsFinite(principal) || !mathutil.IsFinite(ratePercent) {
		return result
	}

	result.Interest = principal * ratePercent * float64(tenureMonths) / constants.PercentageMultiplier
	result.TotalAmount = principal + result.Interest
	result.TotalPercentage = ratePercent * float64(tenureMonths)
	return result
}

// DepositMaturity is the value of a fixed deposit compounded quarterly at an
// annual rate, with fractional quarters compounded pro rata.
func DepositMaturity(principal, annualRatePercent float64, tenureMonths int) float64 {
	if principal <= 0 || annualRatePercent < 0 || tenureMonths <= 0 {
		return 0
	}
	quarters := float64(tenureMonths) / depositCompoundingMonths
	perQuarter := mathutil.PercentToDecimal(annualRatePercent) / (constants.MonthsPerYear / depositCompoundingMonths)
	return mathutil.FiniteOr(principal*math.Pow(1+perQuarter, quarters), 0)
}

// DepositQuote is one bank's maturity figure for a comparison.
type DepositQuote struct {
	Bank        string  `json:"bank"`
	Category    string  `json:"category"`
	RatePercent float64 `json:"ratePercent"`
	Maturity    float64 `json:"maturity"`
	Interest    float64 `json:"interest"`
}

// CompareDeposits quotes the maturity of amount at every bank, best first.
// Banks with equal maturity are ordered by name.
func CompareDeposits(amount float64, tenureMonths int, banks []rates.BankRate, senior bool) []DepositQuote {
	if amount <= 0 || tenureMonths <= 0 {
		return nil
	}

	quotes := make([]DepositQuote, 0, len(banks))
	for _, bank := range banks {
		rate := bank.RateFor(senior)
		maturity := DepositMaturity(amount, rate, tenureMonths)
		quotes = append(quotes, DepositQuote{
			Bank:        bank.Bank,
			Category:    bank.Category,
			RatePercent: rate,
			Maturity:    maturity,
			Interest:    maturity - amount,
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		if quotes[i].Maturity != quotes[j].Maturity {
			return quotes[i].Maturity > quotes[j].Maturity
		}
		return quotes[i].Bank < quotes[j].Bank
	})
	return quotes
}
