package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/rates"
	"github.com/iwvelando/finance-calculators/pkg/sanitize"
	"github.com/iwvelando/finance-calculators/pkg/tiers"
)

func newSliderCmd(a *app) *cobra.Command {
	var input, position, amount string
	cmd := &cobra.Command{
		Use:   "slider",
		Short: "Map a tiered slider position to an amount or back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, ok := a.conf.Slider(input)
			if !ok {
				return fmt.Errorf("unknown slider %q", input)
			}

			reading := output.SliderReading{Input: input}
			switch {
			case cmd.Flags().Changed("position"):
				value, err := strconv.ParseFloat(position, 64)
				if err != nil {
					return fmt.Errorf("invalid position %q: %w", position, err)
				}
				reading.Amount = tiers.PositionToAmount(value, cfg)
				reading.Position = tiers.AmountToPosition(reading.Amount, cfg)
			case cmd.Flags().Changed("amount"):
				reading.Amount = sanitize.Amount(amount, 0, 0)
				reading.Position = tiers.AmountToPosition(reading.Amount, cfg)
			default:
				return errors.New("one of --position or --amount is required")
			}
			return output.Slider(a.stdout, a.outputFormat, reading)
		},
	}
	cmd.Flags().StringVar(&input, "input", tiers.LoanAmount, "slider name from the configuration")
	cmd.Flags().StringVar(&position, "position", "", "slider position between 0 and 100")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to place on the slider")
	cmd.MarkFlagsMutuallyExclusive("position", "amount")
	return cmd
}

func newRatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Browse the bundled deposit and scheme rates",
	}
	cmd.AddCommand(newDepositRatesCmd(a), newSchemeRatesCmd(a))
	return cmd
}

func newDepositRatesCmd(a *app) *cobra.Command {
	var filter rates.BankFilter
	var minRate string
	cmd := &cobra.Command{
		Use:   "deposits",
		Short: "Fixed deposit rates by bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := a.newCalculator()
			if err != nil {
				return err
			}
			filter.MinRate = sanitize.Rate(minRate, 0, 0)
			return output.Deposits(a.stdout, a.outputFormat, calc.Catalog().SelectBanks(filter), filter.Senior)
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "bank category: public, private or small-finance")
	cmd.Flags().StringVar(&filter.Search, "search", "", "part of the bank name")
	cmd.Flags().StringVar(&minRate, "min-rate", "", "lowest rate to list, in percent")
	cmd.Flags().BoolVar(&filter.Senior, "senior", false, "filter and sort by senior citizen rates")
	return cmd
}

func newSchemeRatesCmd(a *app) *cobra.Command {
	var filter rates.SchemeFilter
	var maxLockIn string
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Small savings and market-linked schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := a.newCalculator()
			if err != nil {
				return err
			}
			filter.MaxLockInYears = sanitize.Rate(maxLockIn, 0, 0)
			return output.Schemes(a.stdout, a.outputFormat, calc.Catalog().SelectSchemes(filter))
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "scheme category")
	cmd.Flags().StringVar(&maxLockIn, "max-lock-in", "", "longest lock-in to list, in years")
	return cmd
}
