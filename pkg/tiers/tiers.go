// Package tiers maps a 0-100 slider position to a currency amount and back
// using three linear tiers with their own step sizes, so small amounts get
// fine control and large ones coarse control.
package tiers

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Config describes the tier boundaries and step sizes of one slider.
// Positions 0-40 span [MinAmount, MidAmount], 40-70 span
// [MidAmount, MaxAmount] and 70-100 span [MaxAmount, TopAmount].
type Config struct {
	MinAmount  float64 `mapstructure:"minAmount" yaml:"minAmount" json:"minAmount"`
	MidAmount  float64 `mapstructure:"midAmount" yaml:"midAmount" json:"midAmount"`
	MaxAmount  float64 `mapstructure:"maxAmount" yaml:"maxAmount" json:"maxAmount"`
	TopAmount  float64 `mapstructure:"topAmount" yaml:"topAmount" json:"topAmount"`
	FirstStep  float64 `mapstructure:"firstStep" yaml:"firstStep" json:"firstStep"`
	SecondStep float64 `mapstructure:"secondStep" yaml:"secondStep" json:"secondStep"`
	ThirdStep  float64 `mapstructure:"thirdStep" yaml:"thirdStep" json:"thirdStep"`
}

// Validate checks the boundaries are ordered, the steps positive and every
// boundary a multiple of the steps on both sides of it. Without the last
// rule a rounded amount can map back to a different slider reading.
func (c Config) Validate() error {
	if c.MinAmount < 0 {
		return errors.New("minAmount cannot be negative")
	}
	if !(c.MinAmount < c.MidAmount && c.MidAmount < c.MaxAmount && c.MaxAmount < c.TopAmount) {
		return fmt.Errorf("amounts must increase: min %.2f, mid %.2f, max %.2f, top %.2f",
			c.MinAmount, c.MidAmount, c.MaxAmount, c.TopAmount)
	}
	if c.FirstStep <= 0 || c.SecondStep <= 0 || c.ThirdStep <= 0 {
		return errors.New("step sizes must be positive")
	}

	boundaries := []struct {
		name   string
		amount float64
		steps  []float64
	}{
		{"minAmount", c.MinAmount, []float64{c.FirstStep}},
		{"midAmount", c.MidAmount, []float64{c.FirstStep, c.SecondStep}},
		{"maxAmount", c.MaxAmount, []float64{c.SecondStep, c.ThirdStep}},
		{"topAmount", c.TopAmount, []float64{c.ThirdStep}},
	}
	for _, b := range boundaries {
		for _, step := range b.steps {
			if !multipleOf(b.amount, step) {
				return fmt.Errorf("%s %.2f is not a multiple of step %.2f", b.name, b.amount, step)
			}
		}
	}
	return nil
}

func multipleOf(amount, step float64) bool {
	return math.Abs(mathutil.RoundTo(amount, step)-amount) <= 1e-9*max(1, math.Abs(amount))
}

// PositionToAmount converts a slider position into an amount rounded to the
// step of the tier the position falls in. Positions outside 0-100 are
// clamped.
func PositionToAmount(position float64, c Config) float64 {
	position = min(max(position, 0), constants.SliderMaxPosition)

	switch {
	case position <= constants.SliderFirstTierEnd:
		fraction := position / constants.SliderFirstTierEnd
		return mathutil.RoundTo(c.MinAmount+fraction*(c.MidAmount-c.MinAmount), c.FirstStep)
	case position <= constants.SliderSecondTierEnd:
		fraction := (position - constants.SliderFirstTierEnd) / (constants.SliderSecondTierEnd - constants.SliderFirstTierEnd)
		return mathutil.RoundTo(c.MidAmount+fraction*(c.MaxAmount-c.MidAmount), c.SecondStep)
	default:
		fraction := (position - constants.SliderSecondTierEnd) / (constants.SliderMaxPosition - constants.SliderSecondTierEnd)
		return mathutil.RoundTo(c.MaxAmount+fraction*(c.TopAmount-c.MaxAmount), c.ThirdStep)
	}
}

// AmountToPosition is the inverse of PositionToAmount without rounding.
// Amounts below MinAmount map to 0 and the result never exceeds 100.
func AmountToPosition(amount float64, c Config) float64 {
	if amount <= c.MinAmount || !mathutil.IsFinite(amount) {
		if amount > c.MinAmount {
			return constants.SliderMaxPosition
		}
		return 0
	}

	var position float64
	switch {
	case amount <= c.MidAmount:
		position = interpolate(amount, c.MinAmount, c.MidAmount, 0, constants.SliderFirstTierEnd)
	case amount <= c.MaxAmount:
		position = interpolate(amount, c.MidAmount, c.MaxAmount, constants.SliderFirstTierEnd, constants.SliderSecondTierEnd)
	default:
		position = interpolate(amount, c.MaxAmount, c.TopAmount, constants.SliderSecondTierEnd, constants.SliderMaxPosition)
	}
	return min(position, constants.SliderMaxPosition)
}

func interpolate(amount, from, to, startPosition, endPosition float64) float64 {
	if to <= from {
		return endPosition
	}
	return startPosition + (amount-from)/(to-from)*(endPosition-startPosition)
}

// Slider input names used by DefaultConfigs.
const (
	LoanAmount        = "loan-amount"
	SIPAmount         = "sip-amount"
	GoalAmount        = "goal-amount"
	PPFDeposit        = "ppf-deposit"
	SWPInvestment     = "swp-investment"
	SWPWithdrawal     = "swp-withdrawal"
	STPInvestment     = "stp-investment"
	STPTransfer       = "stp-transfer"
	InterestPrincipal = "interest-principal"
	DepositAmount     = "fd-amount"
)

// DefaultConfigs returns a fresh copy of the built-in slider tiers keyed by
// input name. Every boundary is a multiple of the steps on both sides of it.
func DefaultConfigs() map[string]Config {
	large := Config{MinAmount: 100000, MidAmount: 5000000, MaxAmount: 10000000, TopAmount: 50000000, FirstStep: 10000, SecondStep: 100000, ThirdStep: 500000}
	periodic := Config{MinAmount: 500, MidAmount: 50000, MaxAmount: 100000, TopAmount: 1000000, FirstStep: 500, SecondStep: 1000, ThirdStep: 10000}
	deposit := Config{MinAmount: 1000, MidAmount: 100000, MaxAmount: 1000000, TopAmount: 10000000, FirstStep: 1000, SecondStep: 10000, ThirdStep: 100000}

	return map[string]Config{
		LoanAmount:        large,
		SIPAmount:         periodic,
		GoalAmount:        {MinAmount: 100000, MidAmount: 5000000, MaxAmount: 10000000, TopAmount: 100000000, FirstStep: 10000, SecondStep: 100000, ThirdStep: 1000000},
		PPFDeposit:        {MinAmount: 500, MidAmount: 50000, MaxAmount: 100000, TopAmount: 150000, FirstStep: 500, SecondStep: 1000, ThirdStep: 5000},
		SWPInvestment:     large,
		SWPWithdrawal:     periodic,
		STPInvestment:     large,
		STPTransfer:       periodic,
		InterestPrincipal: deposit,
		DepositAmount:     deposit,
	}
}
