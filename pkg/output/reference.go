package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/rates"
)

// SliderReading pairs a slider position with the amount it stands for.
type SliderReading struct {
	Input    string  `json:"input"`
	Position float64 `json:"position"`
	Amount   float64 `json:"amount"`
}

// Slider renders one slider reading.
func Slider(w io.Writer, outputFormat string, reading SliderReading) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return json.NewEncoder(w).Encode(reading)
	case constants.OutputFormatCSV:
		return csv.NewWriter(w).WriteAll([][]string{
			{"input", "position", "amount"},
			{reading.Input, money(reading.Position), money(reading.Amount)},
		})
	case constants.OutputFormatPretty:
		_, err := fmt.Fprintf(w, "%s at %s: %s (%s)\n%s\n", reading.Input,
			strconv.FormatFloat(reading.Position, 'f', -1, 64),
			format.Currency(reading.Amount), format.Compact(reading.Amount), format.Words(reading.Amount))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// Deposits renders a bank rate selection. senior picks which rate column the
// pretty table highlights.
func Deposits(w io.Writer, outputFormat string, selection rates.Selection, senior bool) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(selection)
	case constants.OutputFormatCSV:
		records := [][]string{{"bank", "category", "general", "senior"}}
		for _, bank := range selection.Records {
			records = append(records, []string{bank.Bank, bank.Category, money(bank.General), money(bank.Senior)})
		}
		return csv.NewWriter(w).WriteAll(records)
	case constants.OutputFormatPretty:
		if len(selection.Records) == 0 {
			_, err := fmt.Fprintln(w, "No banks match the filter.")
			return err
		}
		applicable := "General"
		if senior {
			applicable = "Senior citizen"
		}
		t := newTable().Headers("Bank", "Category", "General", "Senior citizen", "Applicable")
		for _, bank := range selection.Records {
			t.Row(bank.Bank, bank.Category, format.Percent(bank.General), format.Percent(bank.Senior),
				applicable+" "+format.Percent(bank.RateFor(senior)))
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// Schemes renders the small savings schemes.
func Schemes(w io.Writer, outputFormat string, schemes []rates.Scheme) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(schemes)
	case constants.OutputFormatCSV:
		records := [][]string{{"name", "category", "rate", "lockInYears", "minInvestment", "taxNote"}}
		for _, scheme := range schemes {
			records = append(records, []string{scheme.Name, scheme.Category, money(scheme.Rate),
				money(scheme.LockInYears), money(scheme.MinInvestment), scheme.TaxNote})
		}
		return csv.NewWriter(w).WriteAll(records)
	case constants.OutputFormatPretty:
		t := newTable().Headers("Scheme", "Category", "Rate", "Lock-in", "Minimum", "Tax")
		for _, scheme := range schemes {
			t.Row(scheme.Name, scheme.Category, format.Percent(scheme.Rate),
				strconv.FormatFloat(scheme.LockInYears, 'f', -1, 64)+" years",
				format.Currency(scheme.MinInvestment), scheme.TaxNote)
		}
		_, err := fmt.Fprintln(w, t.String())
		return err
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}
