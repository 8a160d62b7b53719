package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// ErrOutOfRange is wrapped by every range violation.
var ErrOutOfRange = errors.New("value out of range")

// Field names checked against Limits.
const (
	FieldPrincipal  = "principal"
	FieldAmount     = "amount"
	FieldTarget     = "target"
	FieldWithdrawal = "withdrawal"
	FieldTransfer   = "transfer"
	FieldRate       = "rate"
	FieldMonths     = "months"
)

// Range is an inclusive interval. A zero Max leaves the range unbounded above.
type Range struct {
	Min float64 `mapstructure:"min" yaml:"min" json:"min"`
	Max float64 `mapstructure:"max" yaml:"max" json:"max"`
}

// Contains reports whether value lies in the range.
func (r Range) Contains(value float64) bool {
	return value >= r.Min && (r.Max == 0 || value <= r.Max)
}

// Limits maps a field name to its allowed range.
type Limits map[string]Range

// DefaultLimits are the ranges the calculators declare for their inputs.
func DefaultLimits() Limits {
	return Limits{
		FieldPrincipal:  {Min: 1000, Max: 1000000000},
		FieldAmount:     {Min: 100, Max: 100000000},
		FieldTarget:     {Min: 1000, Max: 10000000000},
		FieldWithdrawal: {Min: 100, Max: 100000000},
		FieldTransfer:   {Min: 100, Max: 100000000},
		FieldRate:       {Min: 0, Max: 50},
		FieldMonths:     {Min: 1, Max: 600},
	}
}

// Merge returns a copy of l with overrides applied on top.
func (l Limits) Merge(overrides Limits) Limits {
	merged := make(Limits, len(l)+len(overrides))
	for field, r := range l {
		merged[field] = r
	}
	for field, r := range overrides {
		merged[field] = r
	}
	return merged
}

// Check verifies value against the range declared for field. Fields without
// a declared range always pass.
func (l Limits) Check(field string, value float64) error {
	r, ok := l[field]
	if !ok || r.Contains(value) {
		return nil
	}
	if r.Max == 0 {
		return fmt.Errorf("%s %.2f is below the minimum %.2f: %w", field, value, r.Min, ErrOutOfRange)
	}
	return fmt.Errorf("%s %.2f must be between %.2f and %.2f: %w", field, value, r.Min, r.Max, ErrOutOfRange)
}

// CheckAll verifies every field in values and joins the violations in field
// order.
func (l Limits) CheckAll(values map[string]float64) error {
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs []error
	for _, field := range fields {
		if err := l.Check(field, values[field]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidatePPF applies the statutory deposit limits and the minimum 15 year
// tenure of a Public Provident Fund account.
func ValidatePPF(yearlyDeposit float64, months int) error {
	var problems []string
	if yearlyDeposit < constants.PPFMinYearlyDeposit || yearlyDeposit > constants.PPFMaxYearlyDeposit {
		problems = append(problems, fmt.Sprintf("yearly deposit %.2f must be between %.0f and %.0f",
			yearlyDeposit, constants.PPFMinYearlyDeposit, constants.PPFMaxYearlyDeposit))
	}
	if months < constants.PPFMinTenureMonths {
		problems = append(problems, fmt.Sprintf("tenure of %d months is shorter than the %d month lock-in",
			months, constants.PPFMinTenureMonths))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid PPF account: %s: %w", strings.Join(problems, "; "), ErrOutOfRange)
}
