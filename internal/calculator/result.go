package calculator

import (
	"github.com/iwvelando/finance-calculators/pkg/interest"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
	"github.com/iwvelando/finance-calculators/pkg/withdrawals"
)

// Unit tells renderers how to print a metric.
type Unit string

// Metric units.
const (
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
	UnitMonths   Unit = "months"
	UnitCount    Unit = "count"
)

// Metric is one named scalar of a result summary.
type Metric struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// Summary is the ordered list of headline figures of a calculation.
type Summary []Metric

// Value looks a metric up by name.
func (s Summary) Value(name string) (float64, bool) {
	for _, metric := range s {
		if metric.Name == name {
			return metric.Value, true
		}
	}
	return 0, false
}

// Table is a named schedule. Most calculators produce one; STP produces one
// per fund.
type Table struct {
	Name   string                   `json:"name"`
	Rows   []schedule.PeriodRow     `json:"rows,omitempty"`
	Labels []string                 `json:"labels,omitempty"`
	Years  []schedule.YearlySummary `json:"years"`
}

// Result is the output of one calculation. Exactly one of the detail fields
// is set, matching Kind.
type Result struct {
	Kind       Kind       `json:"kind"`
	Title      string     `json:"title"`
	Parameters Parameters `json:"parameters"`
	Summary    Summary    `json:"summary"`
	Tables     []Table    `json:"tables,omitempty"`

	Loan       *loans.LoanSummary        `json:"loan,omitempty"`
	RateChange *loans.RateChangeScenario `json:"rateChange,omitempty"`
	Plan       *investments.Summary      `json:"plan,omitempty"`
	Withdrawal *WithdrawalDetail         `json:"withdrawal,omitempty"`
	Transfer   *TransferDetail           `json:"transfer,omitempty"`
	Interest   *interest.SimpleInterest  `json:"interest,omitempty"`
	Deposits   []interest.DepositQuote   `json:"deposits,omitempty"`
}

// Empty reports whether the engines had nothing to compute.
func (r *Result) Empty() bool {
	return r == nil || len(r.Summary) == 0
}

// WithdrawalDetail is the scalar part of an SWP projection plus its
// open-ended exhaustion month.
type WithdrawalDetail struct {
	RemainingBalance float64 `json:"remainingBalance"`
	TotalWithdrawn   float64 `json:"totalWithdrawn"`
	TotalGrowth      float64 `json:"totalGrowth"`
	Withdrawals      int     `json:"withdrawals"`
	Exhausted        bool    `json:"exhausted"`
	ExhaustedAt      int     `json:"exhaustedAt,omitempty"`
	ExhaustionMonth  int     `json:"exhaustionMonth,omitempty"`
	NeverExhausts    bool    `json:"neverExhausts"`
}

// TransferDetail is the scalar part of an STP projection.
type TransferDetail struct {
	SourceValue      float64 `json:"sourceValue"`
	TargetValue      float64 `json:"targetValue"`
	TotalValue       float64 `json:"totalValue"`
	TotalTransferred float64 `json:"totalTransferred"`
	TotalGrowth      float64 `json:"totalGrowth"`
	Transfers        int     `json:"transfers"`
	Skipped          int     `json:"skipped"`
}

func withdrawalDetail(result withdrawals.WithdrawalResult, month int, exhausts bool) *WithdrawalDetail {
	return &WithdrawalDetail{
		RemainingBalance: result.RemainingBalance,
		TotalWithdrawn:   result.TotalWithdrawn,
		TotalGrowth:      result.TotalGrowth,
		Withdrawals:      result.Withdrawals,
		Exhausted:        result.Exhausted,
		ExhaustedAt:      result.ExhaustedAt,
		ExhaustionMonth:  month,
		NeverExhausts:    !exhausts,
	}
}

func transferDetail(result withdrawals.TransferResult) *TransferDetail {
	return &TransferDetail{
		SourceValue:      result.SourceValue,
		TargetValue:      result.TargetValue,
		TotalValue:       result.TotalValue,
		TotalTransferred: result.TotalTransferred,
		TotalGrowth:      result.TotalGrowth,
		Transfers:        result.Transfers,
		Skipped:          result.Skipped,
	}
}
