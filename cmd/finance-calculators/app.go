package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/internal/tracing"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/sanitize"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// app carries the global flags and the resources built from them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath   string
	logLevel     string
	outputFormat string

	// per-calculation flags
	saveName string
	schedule bool
	start    string

	conf     *config.Configuration
	logger   *zap.Logger
	recorder *metrics.Recorder
	tracing  *tracing.Provider
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:                "finance-calculators",
		Short:              "Loan, investment and deposit calculators",
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to configuration file")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		newEMICmd(a),
		newRateChangeCmd(a),
		newSIPCmd(a),
		newGoalCmd(a),
		newPPFCmd(a),
		newSWPCmd(a),
		newSTPCmd(a),
		newInterestCmd(a),
		newFDCmd(a),
		newSliderCmd(a),
		newRatesCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	conf, err := config.LoadConfiguration(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %q: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	// CLI override takes precedence over config
	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	format, err := validation.ParseOutputFormat(a.outputFormat)
	if err != nil {
		return err
	}
	a.outputFormat = format

	provider, err := tracing.Init(cmd.Context(), conf.Tracing, version, logger)
	if err != nil {
		return err
	}
	a.tracing = provider
	a.recorder = metrics.New()
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.tracing != nil {
		if err := a.tracing.Shutdown(cmd.Context()); err != nil {
			a.logger.Warn("failed to flush traces", zap.String("op", "main.teardown"), zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return nil
}

func (a *app) newCalculator() (*calculator.Calculator, error) {
	return calculator.New(a.logger,
		calculator.WithLimits(a.conf.Limits),
		calculator.WithMetrics(a.recorder),
		calculator.WithTracer(a.tracing.Tracer()),
	)
}

// calculate runs one calculation, prints it and saves it when --save is set.
func (a *app) calculate(cmd *cobra.Command, params calculator.Parameters) error {
	params.StartMonth = a.start
	params.IncludeRows = a.schedule

	calc, err := a.newCalculator()
	if err != nil {
		return err
	}
	result, err := calc.Calculate(cmd.Context(), params)
	if err != nil {
		return err
	}
	if err := output.Write(a.stdout, a.outputFormat, result); err != nil {
		return err
	}

	if a.saveName == "" {
		return nil
	}
	if result.Empty() {
		return errors.New("nothing to save for the given input")
	}
	return a.withHistory(cmd.Context(), func(store history.Store) error {
		record, err := store.Save(cmd.Context(), history.NewRecord(a.saveName, result))
		if err != nil {
			return fmt.Errorf("failed to save calculation: %w", err)
		}
		_, err = fmt.Fprintf(a.stderr, "saved %q as %s\n", record.Name, record.ID)
		return err
	})
}

func (a *app) withHistory(ctx context.Context, fn func(history.Store) error) error {
	if a.conf.History.Backend == constants.HistoryBackendMemory {
		a.logger.Warn("memory history is discarded when the command exits",
			zap.String("op", "main.withHistory"))
	}

	store, err := history.Open(ctx, a.conf.History, a.recorder, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn("failed to close history store", zap.String("op", "main.withHistory"), zap.Error(closeErr))
		}
	}()
	return fn(store)
}

func addCalculationFlags(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVar(&a.saveName, "save", "", "save the calculation under this name")
	cmd.Flags().BoolVar(&a.schedule, "schedule", false, "include the month-by-month schedule")
	cmd.Flags().StringVar(&a.start, "start", "", "first month of the schedule (YYYY-MM)")
}

// amount sanitizes a currency flag and clamps it to the configured limit
// for field.
func (a *app) amount(raw, field string) float64 {
	r := a.conf.Limits[field]
	return a.clamped(field, sanitize.Amount(raw, 0, 0), sanitize.Amount(raw, r.Min, r.Max))
}

func (a *app) rate(raw string) float64 {
	r := a.conf.Limits[validation.FieldRate]
	return a.clamped(validation.FieldRate, sanitize.Rate(raw, 0, 0), sanitize.Rate(raw, r.Min, r.Max))
}

func (a *app) months(raw string) int {
	r := a.conf.Limits[validation.FieldMonths]
	return int(a.clamped(validation.FieldMonths,
		float64(sanitize.Months(raw, 0, 0)),
		float64(sanitize.Months(raw, int(r.Min), int(r.Max)))))
}

func (a *app) clamped(field string, parsed, value float64) float64 {
	if parsed != value {
		a.logger.Warn("input clamped to the allowed range",
			zap.String("op", "main.clamped"),
			zap.String("field", field),
			zap.Float64("input", parsed),
			zap.Float64("value", value),
		)
	}
	return value
}
