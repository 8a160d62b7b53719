package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/rates"
)

func TestPrettyFormatWords(t *testing.T) {
	var buf bytes.Buffer
	if err := PrettyFormat(&buf, emiResult(t, false)); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	want := "Monthly EMI in words: Forty Six Thousand One Hundred Forty Five Rupees"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in output:\n%s", want, buf.String())
	}
}

func TestSlider(t *testing.T) {
	reading := SliderReading{Input: "loan-amount", Position: 41.2, Amount: 5200000}

	tests := []struct {
		format   string
		contains []string
	}{
		{constants.OutputFormatPretty, []string{"loan-amount at 41.2: ₹52,00,000 (₹52 L)", "Fifty Two Lakh Rupees"}},
		{constants.OutputFormatCSV, []string{"input,position,amount", "loan-amount,41.20,5200000.00"}},
		{constants.OutputFormatJSON, []string{`"position":41.2`, `"amount":5200000`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Slider(&buf, tt.format, reading); err != nil {
				t.Fatalf("Slider() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q in output:\n%s", want, buf.String())
				}
			}
		})
	}

	if err := Slider(&bytes.Buffer{}, "xml", reading); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestDeposits(t *testing.T) {
	catalog, err := rates.Load()
	if err != nil {
		t.Fatalf("rates.Load() error = %v", err)
	}
	selection := catalog.SelectBanks(rates.BankFilter{Category: "small-finance"})

	t.Run("pretty senior", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Deposits(&buf, constants.OutputFormatPretty, selection, true); err != nil {
			t.Fatalf("Deposits() error = %v", err)
		}
		for _, want := range []string{"Ujjivan Small Finance Bank", "Senior citizen 8.75%"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in output:\n%s", want, buf.String())
			}
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Deposits(&buf, constants.OutputFormatCSV, selection, false); err != nil {
			t.Fatalf("Deposits() error = %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected a header and 3 banks, got %d lines", len(lines))
		}
		if lines[1] != "AU Small Finance Bank,small-finance,7.75,8.25" {
			t.Errorf("unexpected first bank row %q", lines[1])
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Deposits(&buf, constants.OutputFormatJSON, selection, false); err != nil {
			t.Fatalf("Deposits() error = %v", err)
		}
		var decoded rates.Selection
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode output: %v", err)
		}
		if len(decoded.BankNames) != 3 {
			t.Errorf("expected 3 bank names, got %v", decoded.BankNames)
		}
	})

	t.Run("pretty empty", func(t *testing.T) {
		var buf bytes.Buffer
		empty := catalog.SelectBanks(rates.BankFilter{Search: "no such bank"})
		if err := Deposits(&buf, constants.OutputFormatPretty, empty, false); err != nil {
			t.Fatalf("Deposits() error = %v", err)
		}
		if !strings.Contains(buf.String(), "No banks match the filter.") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})
}

func TestSchemes(t *testing.T) {
	catalog, err := rates.Load()
	if err != nil {
		t.Fatalf("rates.Load() error = %v", err)
	}
	schemes := catalog.SelectSchemes(rates.SchemeFilter{Category: "government", MaxLockInYears: 5})

	var buf bytes.Buffer
	if err := Schemes(&buf, constants.OutputFormatPretty, schemes); err != nil {
		t.Fatalf("Schemes() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Senior Citizens Savings Scheme") {
		t.Errorf("expected SCSS in output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Public Provident Fund") {
		t.Errorf("PPF lock-in exceeds the filter:\n%s", buf.String())
	}

	buf.Reset()
	if err := Schemes(&buf, constants.OutputFormatCSV, schemes); err != nil {
		t.Fatalf("Schemes() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "name,category,rate,lockInYears,minInvestment,taxNote\n") {
		t.Errorf("unexpected csv header in %q", buf.String())
	}
}
