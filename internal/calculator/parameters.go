package calculator

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Parameters is the stored input of a calculation. Which fields are read
// depends on Kind:
//
//	emi          Principal, RatePercent, TenureMonths, Amount (optional EMI override)
//	rate-change  Principal, RatePercent, NewRatePercent, TenureMonths (remaining)
//	sip          Amount, RatePercent, TenureMonths, Frequency
//	goal         Target, RatePercent, TenureMonths, Frequency
//	ppf          Amount (yearly deposit), RatePercent, TenureMonths
//	swp          Principal, Amount (withdrawal), RatePercent, TenureMonths, Frequency
//	stp          Principal, Amount (transfer), RatePercent, TargetRatePercent, TenureMonths, Frequency
//	interest     Principal, RatePercent, TenureMonths
//	fd           Principal, TenureMonths, Senior, BankCategory
type Parameters struct {
	Kind              Kind                  `json:"kind" yaml:"kind"`
	Principal         float64               `json:"principal,omitempty" yaml:"principal,omitempty"`
	Amount            float64               `json:"amount,omitempty" yaml:"amount,omitempty"`
	Target            float64               `json:"target,omitempty" yaml:"target,omitempty"`
	RatePercent       float64               `json:"ratePercent" yaml:"ratePercent"`
	NewRatePercent    float64               `json:"newRatePercent,omitempty" yaml:"newRatePercent,omitempty"`
	TargetRatePercent float64               `json:"targetRatePercent,omitempty" yaml:"targetRatePercent,omitempty"`
	TenureMonths      int                   `json:"tenureMonths" yaml:"tenureMonths"`
	Frequency         investments.Frequency `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Senior            bool                  `json:"senior,omitempty" yaml:"senior,omitempty"`
	BankCategory      string                `json:"bankCategory,omitempty" yaml:"bankCategory,omitempty"`
	StartMonth        string                `json:"startMonth,omitempty" yaml:"startMonth,omitempty"`
	IncludeRows       bool                  `json:"includeRows,omitempty" yaml:"includeRows,omitempty"`
}

// Normalize canonicalises the kind and frequency. PPF is always yearly.
func (p Parameters) Normalize() (Parameters, error) {
	kind, err := ParseKind(string(p.Kind))
	if err != nil {
		return p, err
	}
	p.Kind = kind

	switch kind {
	case KindSIP, KindGoal, KindSWP, KindSTP:
		frequency, err := investments.ParseFrequency(string(p.Frequency))
		if err != nil {
			return p, fmt.Errorf("%s: %w", kind, err)
		}
		p.Frequency = frequency
	case KindPPF:
		p.Frequency = investments.Yearly
	default:
		p.Frequency = ""
	}
	return p, nil
}

// Validate checks the fields the kind reads against limits.
func (p Parameters) Validate(limits validation.Limits) error {
	values := map[string]float64{
		validation.FieldMonths: float64(p.TenureMonths),
	}

	switch p.Kind {
	case KindEMI:
		values[validation.FieldPrincipal] = p.Principal
		values[validation.FieldRate] = p.RatePercent
		if p.Amount < 0 {
			return fmt.Errorf("installment override cannot be negative: %w", validation.ErrOutOfRange)
		}
	case KindRateChange:
		values[validation.FieldPrincipal] = p.Principal
		values[validation.FieldRate] = p.RatePercent
		if err := limits.Check(validation.FieldRate, p.NewRatePercent); err != nil {
			return fmt.Errorf("new %w", err)
		}
	case KindSIP:
		values[validation.FieldAmount] = p.Amount
		values[validation.FieldRate] = p.RatePercent
	case KindGoal:
		values[validation.FieldTarget] = p.Target
		values[validation.FieldRate] = p.RatePercent
	case KindPPF:
		values[validation.FieldRate] = p.RatePercent
		if err := validation.ValidatePPF(p.Amount, p.TenureMonths); err != nil {
			return err
		}
	case KindSWP:
		values[validation.FieldPrincipal] = p.Principal
		values[validation.FieldWithdrawal] = p.Amount
		values[validation.FieldRate] = p.RatePercent
	case KindSTP:
		values[validation.FieldPrincipal] = p.Principal
		values[validation.FieldTransfer] = p.Amount
		values[validation.FieldRate] = p.RatePercent
		if err := limits.Check(validation.FieldRate, p.TargetRatePercent); err != nil {
			return fmt.Errorf("target fund %w", err)
		}
	case KindInterest:
		values[validation.FieldPrincipal] = p.Principal
		values[validation.FieldRate] = p.RatePercent
	case KindFD:
		values[validation.FieldPrincipal] = p.Principal
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}

	if err := limits.CheckAll(values); err != nil {
		return err
	}

	if p.StartMonth != "" {
		if _, err := datetime.ParseMonth(p.StartMonth); err != nil {
			return err
		}
	}
	return nil
}
