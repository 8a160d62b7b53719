package investments

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Frequency is how often money is contributed, withdrawn or transferred.
type Frequency string

// Supported frequencies.
const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	HalfYearly Frequency = "half-yearly"
	Yearly     Frequency = "yearly"
)

// Frequencies lists the supported frequencies from most to least frequent.
func Frequencies() []Frequency {
	return []Frequency{Monthly, Quarterly, HalfYearly, Yearly}
}

// ParseFrequency accepts the canonical names case-insensitively, along with
// "half_yearly", "halfyearly" and "annually". An empty string means monthly.
func ParseFrequency(raw string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "half-yearly", "half_yearly", "halfyearly":
		return HalfYearly, nil
	case "yearly", "annually":
		return Yearly, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", raw)
	}
}

// IntervalMonths is the number of months between two contributions. It is 0
// for an unknown frequency.
func (f Frequency) IntervalMonths() int {
	switch f {
	case Monthly:
		return constants.MonthlyInterval
	case Quarterly:
		return constants.QuarterlyInterval
	case HalfYearly:
		return constants.HalfYearlyInterval
	case Yearly:
		return constants.YearlyInterval
	default:
		return 0
	}
}

// PeriodsPerYear is the number of compounding periods in a year.
func (f Frequency) PeriodsPerYear() int {
	interval := f.IntervalMonths()
	if interval == 0 {
		return 0
	}
	return constants.MonthsPerYear / interval
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	return f.IntervalMonths() > 0
}

func (f Frequency) String() string {
	return string(f)
}

// NumberOfContributions is ceil(months / interval).
func NumberOfContributions(months int, f Frequency) int {
	interval := f.IntervalMonths()
	if months <= 0 || months > constants.MaxTenureMonths || interval == 0 {
		return 0
	}
	return (months + interval - 1) / interval
}

// RatePerPeriod converts an annual percentage to the simple per-period rate
// for the frequency.
func RatePerPeriod(annualRatePercent float64, f Frequency) float64 {
	periods := f.PeriodsPerYear()
	if periods == 0 {
		return 0
	}
	return annualRatePercent / constants.PercentageMultiplier / float64(periods)
}
