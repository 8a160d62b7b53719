package withdrawals

import (
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

// TransferResult is the outcome of a systematic transfer plan between a
// source fund and a target fund.
type TransferResult struct {
	InitialInvestment float64                  `json:"initialInvestment"`
	TransferAmount    float64                  `json:"transferAmount"`
	SourceValue       float64                  `json:"sourceValue"`
	TargetValue       float64                  `json:"targetValue"`
	TotalValue        float64                  `json:"totalValue"`
	TotalTransferred  float64                  `json:"totalTransferred"`
	TotalGrowth       float64                  `json:"totalGrowth"`
	Transfers         int                      `json:"transfers"`
	Skipped           int                      `json:"skipped"`
	Source            []schedule.PeriodRow     `json:"source,omitempty"`
	Target            []schedule.PeriodRow     `json:"target,omitempty"`
	SourceYears       []schedule.YearlySummary `json:"sourceYears"`
	TargetYears       []schedule.YearlySummary `json:"targetYears"`
}

// SystematicTransfer moves transferAmount from the source fund to the target
// fund on every interval month. Both funds compound monthly at their own
// rate before the transfer. A transfer the source cannot cover is skipped.
func SystematicTransfer(initialInvestment, transferAmount, sourceRatePercent, targetRatePercent float64, months int, f investments.Frequency) TransferResult {
	result := TransferResult{InitialInvestment: initialInvestment, TransferAmount: transferAmount}
	if !validPlan(initialInvestment, transferAmount, sourceRatePercent, months, f) ||
		targetRatePercent < 0 || !mathutil.IsFinite(targetRatePercent) {
		return result
	}

	interval := f.IntervalMonths()
	sourceRate := MonthlyEquivalentRate(sourceRatePercent)
	targetRate := MonthlyEquivalentRate(targetRatePercent)
	source, target := initialInvestment, 0.0

	result.Source = make([]schedule.PeriodRow, 0, months)
	result.Target = make([]schedule.PeriodRow, 0, months)
	for month := 1; month <= months; month++ {
		sourceGrowth := source * sourceRate
		targetGrowth := target * targetRate
		source += sourceGrowth
		target += targetGrowth

		moved := 0.0
		if month%interval == 0 {
			if source < transferAmount {
				result.Skipped++
			} else {
				moved = transferAmount
				source -= moved
				target += moved
				result.Transfers++
			}
		}
		result.TotalTransferred += moved
		result.TotalGrowth += sourceGrowth + targetGrowth

		result.Source = append(result.Source, schedule.PeriodRow{
			Period:   month,
			Amount:   moved,
			Interest: sourceGrowth,
			Invested: initialInvestment,
			Value:    source,
		})
		result.Target = append(result.Target, schedule.PeriodRow{
			Period:   month,
			Amount:   moved,
			Interest: targetGrowth,
			Invested: result.TotalTransferred,
			Value:    target,
		})
	}

	result.SourceValue = source
	result.TargetValue = target
	result.TotalValue = source + target
	result.SourceYears = schedule.AggregateYearly(result.Source)
	result.TargetYears = schedule.AggregateYearly(result.Target)
	return result
}
