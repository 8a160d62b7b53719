// Package datetime labels projection months with calendar dates.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// DateTimeLayout is the accepted start month format and is also the label
// format of monthly rows.
const DateTimeLayout = constants.DateTimeLayout

// ParseMonth parses a YYYY-MM month.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start month %q, expected YYYY-MM: %w", month, err)
	}
	return t, nil
}

// MonthLabels returns the label of each of n consecutive months starting at
// start, so period 1 is labelled start itself.
func MonthLabels(start string, n int) ([]string, error) {
	t, err := ParseMonth(start)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	labels := make([]string, n)
	for i := range labels {
		labels[i] = t.AddDate(0, i, 0).Format(DateTimeLayout)
	}
	return labels, nil
}
