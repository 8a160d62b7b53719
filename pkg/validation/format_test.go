package validation

import "testing"

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		raw       string
		expected  string
		expectErr bool
	}{
		{raw: "pretty", expected: "pretty"},
		{raw: "csv", expected: "csv"},
		{raw: "JSON", expected: "json"},
		{raw: " Pretty\n", expected: "pretty"},
		{raw: "", expectErr: true},
		{raw: "xml", expectErr: true},
		{raw: "c s v", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.raw)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for %q, got format %q", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.raw, err)
			}
			if got != tt.expected {
				t.Errorf("ParseOutputFormat(%q) = %q, expected %q", tt.raw, got, tt.expected)
			}
		})
	}
}
