// Package calculator is the single entry point to the projection engines.
// Live requests and rehydrated history records go through the same
// Calculate path, so identical parameters always give identical results.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/interest"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/rates"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/iwvelando/finance-calculators/pkg/withdrawals"
)

// Stored is anything that carries the parameters of an earlier calculation.
type Stored interface {
	StoredParameters() Parameters
}

// Calculator validates parameters and dispatches them to the engines.
type Calculator struct {
	logger  *zap.Logger
	limits  validation.Limits
	catalog rates.Catalog
	metrics *metrics.Recorder
	tracer  trace.Tracer
}

// Option customises a Calculator.
type Option func(*Calculator)

// WithLimits overrides the default input ranges.
func WithLimits(limits validation.Limits) Option {
	return func(c *Calculator) {
		c.limits = c.limits.Merge(limits)
	}
}

// WithCatalog replaces the embedded rate catalog.
func WithCatalog(catalog rates.Catalog) Option {
	return func(c *Calculator) {
		c.catalog = catalog
	}
}

// WithMetrics records every calculation on recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(c *Calculator) {
		c.metrics = recorder
	}
}

// WithTracer wraps every calculation in a span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Calculator) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// New creates a Calculator with the embedded rate catalog and default limits.
func New(logger *zap.Logger, opts ...Option) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := rates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load rate catalog: %w", err)
	}

	c := &Calculator{
		logger:  logger,
		limits:  validation.DefaultLimits(),
		catalog: catalog,
		tracer:  noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Catalog returns the rate catalog used for deposit comparisons.
func (c *Calculator) Catalog() rates.Catalog {
	return c.catalog
}

// Limits returns the input ranges in force.
func (c *Calculator) Limits() validation.Limits {
	return c.limits
}

// Recompute reruns a stored calculation and always includes its yearly
// breakdown.
func (c *Calculator) Recompute(ctx context.Context, stored Stored) (*Result, error) {
	return c.Calculate(ctx, stored.StoredParameters())
}

// Calculate validates p and runs the matching engine. Parameters the engines
// cannot use yield a Result with an empty Summary rather than an error; only
// unknown kinds and out-of-range values are errors.
func (c *Calculator) Calculate(ctx context.Context, p Parameters) (*Result, error) {
	started := time.Now()
	_, span := c.tracer.Start(ctx, "calculator.Calculate")
	defer span.End()

	p, err := p.Normalize()
	if err != nil {
		c.fail(span, p, metrics.StatusValidationError, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("kind", string(p.Kind)),
		attribute.Float64("principal", p.Principal),
		attribute.Float64("amount", p.Amount),
		attribute.Float64("rate_percent", p.RatePercent),
		attribute.Int("tenure_months", p.TenureMonths),
	)

	if err := p.Validate(c.limits); err != nil {
		c.fail(span, p, metrics.StatusValidationError, err)
		return nil, fmt.Errorf("invalid %s parameters: %w", p.Kind, err)
	}

	result := c.dispatch(p)
	if err := c.label(result, p.StartMonth); err != nil {
		c.fail(span, p, metrics.StatusError, err)
		return nil, err
	}

	status := metrics.StatusOK
	if result.Empty() {
		status = metrics.StatusEmpty
		c.logger.Info("calculation produced no result",
			zap.String("op", "calculator.Calculate"),
			zap.String("kind", string(p.Kind)))
	}
	c.metrics.ObserveCalculation(string(p.Kind), status, time.Since(started))
	span.SetAttributes(attribute.String("status", status))

	c.logger.Debug("calculation complete",
		zap.String("op", "calculator.Calculate"),
		zap.String("kind", string(p.Kind)),
		zap.Int("metrics", len(result.Summary)),
		zap.Duration("elapsed", time.Since(started)))
	return result, nil
}

func (c *Calculator) fail(span trace.Span, p Parameters, errorType string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, errorType)
	kind := string(p.Kind)
	if errors.Is(err, ErrUnknownKind) {
		kind, errorType = "unknown", "unknown_kind"
	}
	c.metrics.ObserveCalculationError(kind, errorType)
	c.logger.Warn("calculation rejected",
		zap.String("op", "calculator.Calculate"),
		zap.String("kind", kind),
		zap.Error(err))
}

func (c *Calculator) dispatch(p Parameters) *Result {
	result := &Result{Kind: p.Kind, Title: p.Kind.Title(), Parameters: p}

	switch p.Kind {
	case KindEMI:
		c.emi(result, p)
	case KindRateChange:
		c.rateChange(result, p)
	case KindSIP:
		c.plan(result, p, investments.SIP(p.Amount, p.RatePercent, p.TenureMonths, p.Frequency))
	case KindGoal:
		c.plan(result, p, investments.Goal(p.Target, p.RatePercent, p.TenureMonths, p.Frequency))
	case KindPPF:
		c.plan(result, p, investments.PPF(p.Amount, p.RatePercent, p.TenureMonths))
	case KindSWP:
		c.withdrawal(result, p)
	case KindSTP:
		c.transfer(result, p)
	case KindInterest:
		c.simpleInterest(result, p)
	case KindFD:
		c.deposits(result, p)
	}
	return result
}

func (c *Calculator) emi(result *Result, p Parameters) {
	summary, rows, years := loans.Loan(p.Principal, p.RatePercent, p.TenureMonths, p.Amount)
	if len(years) == 0 {
		return
	}
	result.Loan = &summary
	result.Summary = Summary{
		{Name: "Monthly EMI", Value: summary.Installment, Unit: UnitCurrency},
		{Name: "Principal", Value: summary.Principal, Unit: UnitCurrency},
		{Name: "Total interest", Value: summary.TotalInterest, Unit: UnitCurrency},
		{Name: "Total payment", Value: summary.TotalPayment, Unit: UnitCurrency},
		{Name: "Interest share", Value: summary.InterestPercent, Unit: UnitPercent},
		{Name: "Tenure", Value: float64(summary.Months), Unit: UnitMonths},
	}
	result.Tables = []Table{table("Amortization", p, rows, years)}
}

func (c *Calculator) rateChange(result *Result, p Parameters) {
	scenario := loans.RateChange(p.Principal, p.RatePercent, p.TenureMonths, p.NewRatePercent)
	if scenario.Current.Installment == 0 {
		return
	}
	result.RateChange = &scenario
	result.Summary = Summary{
		{Name: "Current EMI", Value: scenario.Current.Installment, Unit: UnitCurrency},
		{Name: "Current total interest", Value: scenario.Current.TotalInterest, Unit: UnitCurrency},
		{Name: "New EMI (same tenure)", Value: scenario.FixedTenure.Installment, Unit: UnitCurrency},
		{Name: "EMI change", Value: scenario.FixedTenure.InstallmentDelta, Unit: UnitCurrency},
		{Name: "Interest change (same tenure)", Value: scenario.FixedTenure.InterestDelta, Unit: UnitCurrency},
		{Name: "New tenure (same EMI)", Value: float64(scenario.FixedInstallment.Months), Unit: UnitMonths},
		{Name: "Tenure change", Value: float64(scenario.FixedInstallment.MonthsDelta), Unit: UnitMonths},
		{Name: "Interest change (same EMI)", Value: scenario.FixedInstallment.InterestDelta, Unit: UnitCurrency},
	}

	_, fixedTenureRows, fixedTenureYears := loans.Loan(p.Principal, p.NewRatePercent, scenario.FixedTenure.Months, scenario.FixedTenure.Installment)
	_, fixedEMIRows, fixedEMIYears := loans.Loan(p.Principal, p.NewRatePercent, scenario.FixedInstallment.Months, scenario.FixedInstallment.Installment)
	result.Tables = []Table{
		table("Same tenure", p, fixedTenureRows, fixedTenureYears),
		table("Same EMI", p, fixedEMIRows, fixedEMIYears),
	}
}

func (c *Calculator) plan(result *Result, p Parameters, plan investments.Plan) {
	if len(plan.Years) == 0 {
		return
	}
	summary := plan.Summary
	result.Plan = &summary
	result.Summary = Summary{
		{Name: "Periodic investment", Value: summary.PeriodicAmount, Unit: UnitCurrency},
	}
	if summary.TargetAmount > 0 {
		result.Summary = append(result.Summary, Metric{Name: "Target", Value: summary.TargetAmount, Unit: UnitCurrency})
	}
	result.Summary = append(result.Summary,
		Metric{Name: "Contributions", Value: float64(summary.Contributions), Unit: UnitCount},
		Metric{Name: "Total investment", Value: summary.TotalInvestment, Unit: UnitCurrency},
		Metric{Name: "Wealth gained", Value: summary.WealthGained, Unit: UnitCurrency},
		Metric{Name: "Final value", Value: summary.FinalValue, Unit: UnitCurrency},
		Metric{Name: "Absolute return", Value: summary.AbsoluteReturnPercent, Unit: UnitPercent},
	)
	result.Tables = []Table{table("Growth", p, plan.Rows, plan.Years)}
}

func (c *Calculator) withdrawal(result *Result, p Parameters) {
	swp := withdrawals.SystematicWithdrawal(p.Principal, p.Amount, p.RatePercent, p.TenureMonths, p.Frequency)
	if len(swp.Years) == 0 {
		return
	}
	month, exhausts := withdrawals.ExhaustionPeriod(p.Principal, p.Amount, p.RatePercent, p.Frequency)
	result.Withdrawal = withdrawalDetail(swp, month, exhausts)
	result.Summary = Summary{
		{Name: "Initial investment", Value: p.Principal, Unit: UnitCurrency},
		{Name: "Withdrawal", Value: p.Amount, Unit: UnitCurrency},
		{Name: "Total withdrawn", Value: swp.TotalWithdrawn, Unit: UnitCurrency},
		{Name: "Total growth", Value: swp.TotalGrowth, Unit: UnitCurrency},
		{Name: "Remaining balance", Value: swp.RemainingBalance, Unit: UnitCurrency},
	}
	if exhausts {
		result.Summary = append(result.Summary, Metric{Name: "Money lasts", Value: float64(month), Unit: UnitMonths})
	}
	result.Tables = []Table{table("Withdrawals", p, swp.Rows, swp.Years)}
}

func (c *Calculator) transfer(result *Result, p Parameters) {
	stp := withdrawals.SystematicTransfer(p.Principal, p.Amount, p.RatePercent, p.TargetRatePercent, p.TenureMonths, p.Frequency)
	if len(stp.SourceYears) == 0 {
		return
	}
	result.Transfer = transferDetail(stp)
	result.Summary = Summary{
		{Name: "Source fund value", Value: stp.SourceValue, Unit: UnitCurrency},
		{Name: "Target fund value", Value: stp.TargetValue, Unit: UnitCurrency},
		{Name: "Total value", Value: stp.TotalValue, Unit: UnitCurrency},
		{Name: "Total transferred", Value: stp.TotalTransferred, Unit: UnitCurrency},
		{Name: "Total growth", Value: stp.TotalGrowth, Unit: UnitCurrency},
		{Name: "Transfers", Value: float64(stp.Transfers), Unit: UnitCount},
		{Name: "Skipped transfers", Value: float64(stp.Skipped), Unit: UnitCount},
	}
	result.Tables = []Table{
		table("Source fund", p, stp.Source, stp.SourceYears),
		table("Target fund", p, stp.Target, stp.TargetYears),
	}
}

func (c *Calculator) simpleInterest(result *Result, p Parameters) {
	si := interest.Simple(p.Principal, p.RatePercent, p.TenureMonths)
	if si.TotalAmount == 0 {
		return
	}
	result.Interest = &si
	result.Summary = Summary{
		{Name: "Principal", Value: si.Principal, Unit: UnitCurrency},
		{Name: "Interest", Value: si.Interest, Unit: UnitCurrency},
		{Name: "Total amount", Value: si.TotalAmount, Unit: UnitCurrency},
		{Name: "Total percentage", Value: si.TotalPercentage, Unit: UnitPercent},
	}
}

func (c *Calculator) deposits(result *Result, p Parameters) {
	selection := c.catalog.SelectBanks(rates.BankFilter{Category: p.BankCategory, Senior: p.Senior})
	quotes := interest.CompareDeposits(p.Principal, p.TenureMonths, selection.Records, p.Senior)
	if len(quotes) == 0 {
		return
	}
	result.Deposits = quotes
	best := quotes[0]
	result.Summary = Summary{
		{Name: "Deposit", Value: p.Principal, Unit: UnitCurrency},
		{Name: "Best rate", Value: best.RatePercent, Unit: UnitPercent},
		{Name: "Best maturity", Value: best.Maturity, Unit: UnitCurrency},
		{Name: "Best interest", Value: best.Interest, Unit: UnitCurrency},
		{Name: "Banks compared", Value: float64(len(quotes)), Unit: UnitCount},
	}
}

// table keeps monthly rows only when they were asked for.
func table(name string, p Parameters, rows []schedule.PeriodRow, years []schedule.YearlySummary) Table {
	t := Table{Name: name, Years: years}
	if p.IncludeRows {
		t.Rows = rows
	}
	return t
}

func (c *Calculator) label(result *Result, start string) error {
	if start == "" {
		return nil
	}
	for i := range result.Tables {
		if len(result.Tables[i].Rows) == 0 {
			continue
		}
		labels, err := datetime.MonthLabels(start, len(result.Tables[i].Rows))
		if err != nil {
			return err
		}
		result.Tables[i].Labels = labels
	}
	return nil
}
