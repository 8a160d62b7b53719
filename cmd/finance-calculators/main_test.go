package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/history"
	"github.com/iwvelando/finance-calculators/pkg/output"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
	}{
		{name: "Defaults", config: config.LoggingConfig{}},
		{name: "Console debug", config: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "Override wins", config: config.LoggingConfig{Level: "bogus"}, override: "warn"},
		{name: "Invalid level", config: config.LoggingConfig{Level: "verbose"}, wantError: true},
		{name: "Invalid format", config: config.LoggingConfig{Format: "xml"}, wantError: true},
		{name: "Log file", config: config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "fincalc.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("initializeLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("initializeLogger() returned nil logger")
			}
			if tt.config.OutputFile != "" {
				if _, err := os.Stat(tt.config.OutputFile); err != nil {
					t.Errorf("expected log file to be created: %v", err)
				}
			}
		})
	}
}

// execute runs the CLI with args and returns what it wrote to stdout and
// stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeResult(t *testing.T, out string) calculator.Result {
	t.Helper()
	var result calculator.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	return result
}

func TestEMICommand(t *testing.T) {
	out, _, err := execute(t, "--output-format", "json",
		"emi", "--principal", "₹10,00,000", "--rate", "10", "--months", "60")
	if err != nil {
		t.Fatalf("emi error = %v", err)
	}

	result := decodeResult(t, out)
	if emi, _ := result.Summary.Value("Monthly EMI"); emi != 21247 {
		t.Errorf("Monthly EMI = %.2f, expected 21247", emi)
	}
	if result.Parameters.Principal != 1000000 {
		t.Errorf("principal = %.2f, expected 1000000", result.Parameters.Principal)
	}
}

func TestCalculationCommandsClampInput(t *testing.T) {
	out, _, err := execute(t, "--output-format", "json",
		"emi", "--principal", "500000", "--rate", "9", "--months", "5000")
	if err != nil {
		t.Fatalf("emi error = %v", err)
	}
	if result := decodeResult(t, out); result.Parameters.TenureMonths != 600 {
		t.Errorf("tenure = %d, expected the 600 month limit", result.Parameters.TenureMonths)
	}
}

func TestCommandsRender(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"SIP", []string{"sip", "--amount", "1000", "--rate", "12", "--months", "12"}, "12,809"},
		{"Goal quarterly", []string{"goal", "--target", "100000", "--rate", "12", "--months", "24", "--frequency", "quarterly"}, "Goal"},
		{"PPF defaults", []string{"ppf", "--deposit", "150000"}, "Provident"},
		{"SWP", []string{"swp", "--investment", "1000000", "--withdrawal", "10000", "--rate", "8", "--months", "120"}, "Withdraw"},
		{"STP", []string{"stp", "--investment", "500000", "--transfer", "50000", "--rate", "6", "--target-rate", "12", "--months", "12"}, "Transfer"},
		{"Interest", []string{"interest", "--principal", "100000", "--rate", "1", "--months", "12"}, "12,000"},
		{"FD", []string{"fd", "--amount", "100000", "--category", "small-finance"}, "Bank"},
		{"Rate change", []string{"rate-change", "--principal", "1000000", "--rate", "9", "--new-rate", "10", "--months", "120"}, "EMI"},
		{"Slider", []string{"slider", "--position", "41"}, "52,00,000"},
		{"Deposit rates", []string{"rates", "deposits", "--category", "public"}, "Bank"},
		{"Schemes", []string{"rates", "schemes"}, "Scheme"},
		{"Config", []string{"config"}, "maxBodySize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append([]string{"--output-format", "pretty"}, tt.args...)...)
			if err != nil {
				t.Fatalf("%v error = %v", tt.args, err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, out)
			}
		})
	}
}

func TestSliderCommandAmount(t *testing.T) {
	out, _, err := execute(t, "--output-format", "json", "slider", "--amount", "52,00,000")
	if err != nil {
		t.Fatalf("slider error = %v", err)
	}
	var reading output.SliderReading
	if err := json.Unmarshal([]byte(out), &reading); err != nil {
		t.Fatalf("failed to decode output %q: %v", out, err)
	}
	if reading.Position != 41.2 {
		t.Errorf("position = %v, expected 41.2", reading.Position)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Invalid output format", []string{"--output-format", "xml", "emi", "--principal", "100000", "--rate", "9", "--months", "12"}},
		{"Missing required flag", []string{"emi", "--principal", "100000"}},
		{"Unknown frequency", []string{"sip", "--amount", "1000", "--rate", "12", "--months", "12", "--frequency", "weekly"}},
		{"Unknown slider", []string{"slider", "--input", "boat", "--position", "10"}},
		{"Slider without reading", []string{"slider"}},
		{"Missing config", []string{"--config", "missing.yaml", "config"}},
		{"Bad history ID", []string{"history", "show", "not-a-uuid"}},
		{"Unknown history kind", []string{"history", "list", "--kind", "crypto"}},
		{"Position and amount together", []string{"slider", "--position", "10", "--amount", "1000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Errorf("%v expected error but got none", tt.args)
			}
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	contents := "history:\n  backend: sqlite\n  path: " + filepath.Join(dir, "history.db") + "\n"
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, stderr, err := execute(t, "--config", configPath, "--output-format", "json",
		"emi", "--principal", "1000000", "--rate", "10", "--months", "60", "--save", "Home loan")
	if err != nil {
		t.Fatalf("emi --save error = %v", err)
	}
	if !strings.Contains(stderr, `saved "Home loan"`) {
		t.Errorf("expected save confirmation, got %q", stderr)
	}

	out, _, err := execute(t, "--config", configPath, "--output-format", "json", "history", "list", "--kind", "emi")
	if err != nil {
		t.Fatalf("history list error = %v", err)
	}
	var records []history.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("failed to decode records %q: %v", out, err)
	}
	if len(records) != 1 || records[0].Name != "Home loan" {
		t.Fatalf("expected the saved loan, got %+v", records)
	}
	id := records[0].ID.String()

	out, _, err = execute(t, "--config", configPath, "--output-format", "json", "history", "show", id, "--recompute")
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if emi, _ := decodeResult(t, out).Summary.Value("Monthly EMI"); emi != 21247 {
		t.Errorf("recomputed EMI = %.2f, expected 21247", emi)
	}

	if _, _, err := execute(t, "--config", configPath, "history", "delete", id); err != nil {
		t.Fatalf("history delete error = %v", err)
	}
	if _, _, err := execute(t, "--config", configPath, "history", "show", id); err == nil {
		t.Error("expected show of a deleted calculation to fail")
	}
}
