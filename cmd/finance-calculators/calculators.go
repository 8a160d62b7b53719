package main

import (
	"github.com/spf13/cobra"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/sanitize"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Amount flags are strings so "₹12,34,567" and "12 lakh"-style pasted
// values go through the same sanitising as the web inputs.

func newEMICmd(a *app) *cobra.Command {
	var principal, rate, months, installment string
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Monthly installment and amortization schedule of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindEMI,
				Principal:    a.amount(principal, validation.FieldPrincipal),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
				Amount:       sanitize.Amount(installment, 0, 0),
			})
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().StringVar(&months, "months", "", "tenure in months")
	cmd.Flags().StringVar(&installment, "installment", "", "pay this installment instead of the computed EMI")
	markRequired(cmd, "principal", "rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newRateChangeCmd(a *app) *cobra.Command {
	var principal, rate, newRate, months string
	cmd := &cobra.Command{
		Use:   "rate-change",
		Short: "Compare keeping the tenure or the installment after a rate change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.calculate(cmd, calculator.Parameters{
				Kind:           calculator.KindRateChange,
				Principal:      a.amount(principal, validation.FieldPrincipal),
				RatePercent:    a.rate(rate),
				NewRatePercent: a.rate(newRate),
				TenureMonths:   a.months(months),
			})
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "outstanding loan amount")
	cmd.Flags().StringVar(&rate, "rate", "", "current annual interest rate in percent")
	cmd.Flags().StringVar(&newRate, "new-rate", "", "new annual interest rate in percent")
	cmd.Flags().StringVar(&months, "months", "", "remaining tenure in months")
	markRequired(cmd, "principal", "rate", "new-rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newSIPCmd(a *app) *cobra.Command {
	var amount, rate, months, frequency string
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Future value of a systematic investment plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := investments.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindSIP,
				Amount:       a.amount(amount, validation.FieldAmount),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
				Frequency:    f,
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount invested each period")
	cmd.Flags().StringVar(&rate, "rate", "", "expected annual return in percent")
	cmd.Flags().StringVar(&months, "months", "", "investment horizon in months")
	addFrequencyFlag(cmd, &frequency)
	markRequired(cmd, "amount", "rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newGoalCmd(a *app) *cobra.Command {
	var target, rate, months, frequency string
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Periodic investment needed to reach a target amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := investments.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindGoal,
				Target:       a.amount(target, validation.FieldTarget),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
				Frequency:    f,
			})
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "amount to accumulate")
	cmd.Flags().StringVar(&rate, "rate", "", "expected annual return in percent")
	cmd.Flags().StringVar(&months, "months", "", "time to reach the goal in months")
	addFrequencyFlag(cmd, &frequency)
	markRequired(cmd, "target", "rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newPPFCmd(a *app) *cobra.Command {
	var deposit, rate, months string
	cmd := &cobra.Command{
		Use:   "ppf",
		Short: "Maturity of yearly Public Provident Fund deposits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindPPF,
				Amount:       sanitize.Amount(deposit, constants.PPFMinYearlyDeposit, constants.PPFMaxYearlyDeposit),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
			})
		},
	}
	cmd.Flags().StringVar(&deposit, "deposit", "", "yearly deposit")
	cmd.Flags().StringVar(&rate, "rate", "7.1", "annual interest rate in percent")
	cmd.Flags().StringVar(&months, "months", "180", "tenure in months, at least 15 years")
	markRequired(cmd, "deposit")
	addCalculationFlags(cmd, a)
	return cmd
}

func newSWPCmd(a *app) *cobra.Command {
	var investment, withdrawal, rate, months, frequency string
	cmd := &cobra.Command{
		Use:   "swp",
		Short: "Balance left after systematic withdrawals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := investments.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindSWP,
				Principal:    a.amount(investment, validation.FieldPrincipal),
				Amount:       a.amount(withdrawal, validation.FieldWithdrawal),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
				Frequency:    f,
			})
		},
	}
	cmd.Flags().StringVar(&investment, "investment", "", "initial corpus")
	cmd.Flags().StringVar(&withdrawal, "withdrawal", "", "amount withdrawn each period")
	cmd.Flags().StringVar(&rate, "rate", "", "expected annual return in percent")
	cmd.Flags().StringVar(&months, "months", "", "withdrawal horizon in months")
	addFrequencyFlag(cmd, &frequency)
	markRequired(cmd, "investment", "withdrawal", "rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newSTPCmd(a *app) *cobra.Command {
	var investment, transfer, rate, targetRate, months, frequency string
	cmd := &cobra.Command{
		Use:   "stp",
		Short: "Systematic transfer from a source fund into a target fund",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := investments.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			return a.calculate(cmd, calculator.Parameters{
				Kind:              calculator.KindSTP,
				Principal:         a.amount(investment, validation.FieldPrincipal),
				Amount:            a.amount(transfer, validation.FieldTransfer),
				RatePercent:       a.rate(rate),
				TargetRatePercent: a.rate(targetRate),
				TenureMonths:      a.months(months),
				Frequency:         f,
			})
		},
	}
	cmd.Flags().StringVar(&investment, "investment", "", "amount placed in the source fund")
	cmd.Flags().StringVar(&transfer, "transfer", "", "amount moved each period")
	cmd.Flags().StringVar(&rate, "rate", "", "source fund annual return in percent")
	cmd.Flags().StringVar(&targetRate, "target-rate", "", "target fund annual return in percent")
	cmd.Flags().StringVar(&months, "months", "", "transfer horizon in months")
	addFrequencyFlag(cmd, &frequency)
	markRequired(cmd, "investment", "transfer", "rate", "target-rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newInterestCmd(a *app) *cobra.Command {
	var principal, rate, months string
	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Simple interest on a principal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindInterest,
				Principal:    a.amount(principal, validation.FieldPrincipal),
				RatePercent:  a.rate(rate),
				TenureMonths: a.months(months),
			})
		},
	}
	cmd.Flags().StringVar(&principal, "principal", "", "principal amount")
	cmd.Flags().StringVar(&rate, "rate", "", "interest rate in percent per month")
	cmd.Flags().StringVar(&months, "months", "", "duration in months")
	markRequired(cmd, "principal", "rate", "months")
	addCalculationFlags(cmd, a)
	return cmd
}

func newFDCmd(a *app) *cobra.Command {
	var amount, months, category string
	var senior bool
	cmd := &cobra.Command{
		Use:   "fd",
		Short: "Compare fixed deposit maturity across banks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.calculate(cmd, calculator.Parameters{
				Kind:         calculator.KindFD,
				Principal:    a.amount(amount, validation.FieldPrincipal),
				TenureMonths: a.months(months),
				Senior:       senior,
				BankCategory: category,
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "deposit amount")
	cmd.Flags().StringVar(&months, "months", "12", "deposit tenure in months")
	cmd.Flags().StringVar(&category, "category", "", "bank category: public, private or small-finance")
	cmd.Flags().BoolVar(&senior, "senior", false, "use senior citizen rates")
	markRequired(cmd, "amount")
	addCalculationFlags(cmd, a)
	return cmd
}

func addFrequencyFlag(cmd *cobra.Command, frequency *string) {
	cmd.Flags().StringVar(frequency, "frequency", string(investments.Monthly),
		"monthly, quarterly, half-yearly or yearly")
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
