package etl

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		raw      string
		want     string
		wantErr  bool
	}{
		{"dollar prefix", "USD", "$100", "100", false},
		{"dollar with decimals", "USD", "$99.99", "99.99", false},
		{"no symbol", "USD", "250", "250", false},
		{"whitespace", "USD", "  $42  ", "42", false},
		{"symbol then space", "USD", "$ 100", "100", false},
		{"euro prefix", "EUR", "€50.25", "50.25", false},
		{"negative amount", "USD", "$-12.50", "-12.5", false},
		{"non-numeric", "USD", "$abc", "", true},
		{"empty", "USD", "", "", true},
		{"symbol only", "USD", "$", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.currency, tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrValueConversion) {
					t.Fatalf("parseAmount(%q, %q) error = %v, want ErrValueConversion", tt.currency, tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q, %q) failed: %v", tt.currency, tt.raw, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseAmount(%q, %q) = %q, want %q", tt.currency, tt.raw, got.String(), tt.want)
			}
		})
	}
}

func TestParseAmount_UnknownCurrencyCode(t *testing.T) {
	// An unrecognized code strips nothing; bare numbers still parse.
	got, err := parseAmount("ZZZ", "100")
	if err != nil {
		t.Fatalf("parseAmount failed: %v", err)
	}
	if got.String() != "100" {
		t.Errorf("got %q, want %q", got.String(), "100")
	}
}
