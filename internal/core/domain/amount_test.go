package domain

import (
	"errors"
	"math/big"
	"testing"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"integer", "5", 6, "5000000"},
		{"fraction", "1.5", 6, "1500000"},
		{"full precision", "0.000001", 6, "1"},
		{"excess digits truncated", "1.1234567", 6, "1123456"},
		{"zero", "0", 6, "0"},
		{"no integer part", ".5", 6, "500000"},
		{"zero decimals", "42", 0, "42"},
		{"leading plus", "+2", 6, "2000000"},
		{"whitespace", "  3  ", 6, "3000000"},
		{"large", "999999999999.999999", 6, "999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ToBaseUnits(%q, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestToBaseUnits_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"empty", ""},
		{"negative", "-1"},
		{"letters", "abc"},
		{"two points", "1.2.3"},
		{"scientific", "1e6"},
		{"bare point", "."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToBaseUnits(tt.amount, 6); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount for %q, got %v", tt.amount, err)
			}
		})
	}
}

func TestToDisplayUnits(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		decimals int
		want     string
	}{
		{"whole", "5000000", 6, "5"},
		{"fraction", "1500000", 6, "1.5"},
		{"smallest unit", "1", 6, "0.000001"},
		{"zero", "0", 6, "0"},
		{"trailing zeros stripped", "1230000", 6, "1.23"},
		{"zero decimals", "42", 0, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := new(big.Int).SetString(tt.base, 10)
			got, err := ToDisplayUnits(n, tt.decimals)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToDisplayUnits(%s, %d) = %s, want %s", tt.base, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestToDisplayUnits_Invalid(t *testing.T) {
	if _, err := ToDisplayUnits(nil, 6); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for nil, got %v", err)
	}
	if _, err := ToDisplayUnits(big.NewInt(-1), 6); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "1.5", "0.000001", "123456.789"} {
		base, err := ToBaseUnits(s, 6)
		if err != nil {
			t.Fatalf("to base %q: %v", s, err)
		}
		back, err := ToDisplayUnits(base, 6)
		if err != nil {
			t.Fatalf("to display %q: %v", s, err)
		}
		if back != s {
			t.Errorf("round trip %q -> %s -> %s", s, base, back)
		}
	}
}

func TestTruncateFraction(t *testing.T) {
	tests := []struct {
		in      string
		maxFrac int
		want    string
	}{
		{"1.2345678", 6, "1.234567"},
		{"1.2", 6, "1.2"},
		{"1", 6, "1"},
		{"1.0000001", 6, "1"},
		{"0.123", 2, "0.12"},
	}
	for _, tt := range tests {
		if got := TruncateFraction(tt.in, tt.maxFrac); got != tt.want {
			t.Errorf("TruncateFraction(%q, %d) = %q, want %q", tt.in, tt.maxFrac, got, tt.want)
		}
	}
}
