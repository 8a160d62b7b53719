// Package validation checks calculator inputs and option values.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// ParseOutputFormat returns the canonical output format name for raw, which
// may differ in case or surrounding whitespace.
func ParseOutputFormat(raw string) (string, error) {
	switch format := strings.ToLower(strings.TrimSpace(raw)); format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("expected output format of %s, %s or %s, got %q",
			constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, raw)
	}
}
