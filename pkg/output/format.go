// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/schedule"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Write renders result in the named output format.
func Write(w io.Writer, outputFormat string, result *calculator.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result *calculator.Result) error {
	if result.Empty() {
		_, err := fmt.Fprintln(w, "Nothing to calculate for the given input.")
		return err
	}

	p := message.NewPrinter(language.English)
	if _, err := fmt.Fprintf(w, "%s\n", titleStyle.Render("--- "+result.Title+" ---")); err != nil {
		return err
	}

	summary := newTable()
	for _, metric := range result.Summary {
		summary.Row(metric.Name, metricValue(p, metric))
	}
	if _, err := fmt.Fprintln(w, summary.String()); err != nil {
		return err
	}
	if metric, ok := headlineAmount(result.Summary); ok {
		if _, err := fmt.Fprintf(w, "%s in words: %s\n", metric.Name, format.Words(metric.Value)); err != nil {
			return err
		}
	}

	if len(result.Deposits) > 0 {
		deposits := newTable().Headers("Bank", "Category", "Rate", "Maturity", "Interest")
		for _, quote := range result.Deposits {
			deposits.Row(quote.Bank, quote.Category, format.Percent(quote.RatePercent),
				format.Currency(quote.Maturity), format.Currency(quote.Interest))
		}
		if _, err := fmt.Fprintln(w, deposits.String()); err != nil {
			return err
		}
	}

	cols := columnsFor(result.Kind)
	for _, t := range result.Tables {
		if _, err := fmt.Fprintf(w, "\n%s\n", titleStyle.Render(t.Name)); err != nil {
			return err
		}
		yearly := newTable().Headers(cols.headers("Year")...)
		for _, year := range t.Years {
			yearly.Row(cols.yearCells(year)...)
		}
		if _, err := fmt.Fprintln(w, yearly.String()); err != nil {
			return err
		}

		if len(t.Rows) == 0 {
			continue
		}
		monthly := newTable().Headers(cols.headers("Month")...)
		for i, row := range t.Rows {
			monthly.Row(cols.rowCells(periodLabel(t, i), row)...)
		}
		if _, err := fmt.Fprintln(w, monthly.String()); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format. Every record starts with
// a section column: summary, deposit, year or month.
func CsvFormat(w io.Writer, result *calculator.Result) error {
	writer := csv.NewWriter(w)
	if result.Empty() {
		writer.Flush()
		return writer.Error()
	}

	records := [][]string{{"section", "table", "name", "value", "unit"}}
	for _, metric := range result.Summary {
		records = append(records, []string{"summary", "", metric.Name, money(metric.Value), string(metric.Unit)})
	}
	for _, quote := range result.Deposits {
		records = append(records, []string{"deposit", quote.Category, quote.Bank,
			money(quote.Maturity), money(quote.RatePercent)})
	}

	records = append(records, []string{"section", "table", "period", "amount", "interest", "principal", "invested", "value", "returnPercent"})
	for _, t := range result.Tables {
		for _, year := range t.Years {
			records = append(records, []string{"year", t.Name, strconv.Itoa(year.Year),
				money(year.TotalAmount), money(year.TotalInterest), money(year.TotalPrincipal),
				money(year.Invested), money(year.Value), money(year.ReturnPercent)})
		}
		for i, row := range t.Rows {
			records = append(records, []string{"month", t.Name, periodLabel(t, i),
				money(row.Amount), money(row.Interest), money(row.Principal),
				money(row.Invested), money(row.Value), ""})
		}
	}
	return writer.WriteAll(records)
}

// JSONFormat outputs the full result as indented JSON.
func JSONFormat(w io.Writer, result *calculator.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// Records renders a list of saved calculations.
func Records(w io.Writer, outputFormat string, records []history.Record) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case constants.OutputFormatCSV:
		writer := csv.NewWriter(w)
		rows := [][]string{{"id", "name", "kind", "createdAt", "headline", "value"}}
		for _, record := range records {
			name, value := headline(record.Summary)
			rows = append(rows, []string{record.ID.String(), record.Name, string(record.Kind),
				record.CreatedAt.Format(time.RFC3339), name, value})
		}
		return writer.WriteAll(rows)
	case constants.OutputFormatPretty:
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "No saved calculations.")
			return err
		}
		p := message.NewPrinter(language.English)
		list := newTable().Headers("ID", "Name", "Kind", "Saved", "Headline")
		for _, record := range records {
			summary := ""
			if len(record.Summary) > 0 {
				summary = record.Summary[0].Name + ": " + metricValue(p, record.Summary[0])
			}
			list.Row(record.ID.String(), record.Name, string(record.Kind),
				record.CreatedAt.Local().Format("2006-01-02 15:04"), summary)
		}
		_, err := fmt.Fprintln(w, list.String())
		return err
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func metricValue(p *message.Printer, metric calculator.Metric) string {
	switch metric.Unit {
	case calculator.UnitCurrency:
		return format.Currency(metric.Value)
	case calculator.UnitPercent:
		return format.Percent(metric.Value)
	case calculator.UnitMonths:
		return p.Sprintf("%d months", int(metric.Value))
	default:
		return p.Sprintf("%d", int(metric.Value))
	}
}

func headlineAmount(summary calculator.Summary) (calculator.Metric, bool) {
	for _, metric := range summary {
		if metric.Unit == calculator.UnitCurrency {
			return metric, true
		}
	}
	return calculator.Metric{}, false
}

func headline(summary calculator.Summary) (string, string) {
	if len(summary) == 0 {
		return "", ""
	}
	return summary[0].Name, money(summary[0].Value)
}

func periodLabel(t calculator.Table, i int) string {
	if i < len(t.Labels) {
		return t.Labels[i]
	}
	return strconv.Itoa(t.Rows[i].Period)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// columns describes how one calculator's schedule reads in a table.
type columns struct {
	amount    string
	interest  string
	value     string
	principal bool
	invested  bool
	returns   bool
}

func columnsFor(kind calculator.Kind) columns {
	switch kind {
	case calculator.KindEMI, calculator.KindRateChange:
		return columns{amount: "Paid", interest: "Interest", value: "Balance", principal: true}
	case calculator.KindSWP:
		return columns{amount: "Withdrawn", interest: "Growth", value: "Balance"}
	case calculator.KindSTP:
		return columns{amount: "Transferred", interest: "Growth", value: "Value", invested: true, returns: true}
	default:
		return columns{amount: "Invested", interest: "Growth", value: "Value", invested: true, returns: true}
	}
}

func (c columns) headers(period string) []string {
	headers := []string{period, c.amount, c.interest}
	if c.principal {
		headers = append(headers, "Principal")
	}
	if c.invested {
		headers = append(headers, "Total invested")
	}
	headers = append(headers, c.value)
	if c.returns && period == "Year" {
		headers = append(headers, "Return")
	}
	return headers
}

func (c columns) yearCells(year schedule.YearlySummary) []string {
	cells := []string{strconv.Itoa(year.Year), format.Currency(year.TotalAmount), format.Currency(year.TotalInterest)}
	if c.principal {
		cells = append(cells, format.Currency(year.TotalPrincipal))
	}
	if c.invested {
		cells = append(cells, format.Currency(year.Invested))
	}
	cells = append(cells, format.Currency(year.Value))
	if c.returns {
		cells = append(cells, format.Percent(year.ReturnPercent))
	}
	return cells
}

func (c columns) rowCells(label string, row schedule.PeriodRow) []string {
	cells := []string{label, format.NumericCurrency(row.Amount), format.NumericCurrency(row.Interest)}
	if c.principal {
		cells = append(cells, format.NumericCurrency(row.Principal))
	}
	if c.invested {
		cells = append(cells, format.NumericCurrency(row.Invested))
	}
	return append(cells, format.NumericCurrency(row.Value))
}
