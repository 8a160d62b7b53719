package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/pkg/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show and delete saved calculations",
	}
	cmd.AddCommand(newHistoryListCmd(a), newHistoryShowCmd(a), newHistoryDeleteCmd(a))
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved calculations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter calculator.Kind
			if kind != "" {
				parsed, err := calculator.ParseKind(kind)
				if err != nil {
					return err
				}
				filter = parsed
			}
			return a.withHistory(cmd.Context(), func(store history.Store) error {
				records, err := store.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return output.Records(a.stdout, a.outputFormat, records)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list this calculator")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var recompute bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withHistory(cmd.Context(), func(store history.Store) error {
				record, err := store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !recompute {
					return output.Records(a.stdout, a.outputFormat, []history.Record{record})
				}

				calc, err := a.newCalculator()
				if err != nil {
					return err
				}
				result, err := calc.Recompute(cmd.Context(), record)
				if err != nil {
					return err
				}
				return output.Write(a.stdout, a.outputFormat, result)
			})
		},
	}
	cmd.Flags().BoolVar(&recompute, "recompute", false, "rerun the calculation from its saved inputs")
	return cmd
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.withHistory(cmd.Context(), func(store history.Store) error {
				if err := store.Delete(cmd.Context(), id); err != nil {
					return err
				}
				_, err := fmt.Fprintf(a.stderr, "deleted %s\n", id)
				return err
			})
		},
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid calculation ID %q: %w", raw, err)
	}
	return id, nil
}
