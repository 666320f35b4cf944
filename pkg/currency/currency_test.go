package currency

import (
	"errors"
	"math"
	"testing"
)

func TestFormat_IndianGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{1, "₹1.00"},
		{999.5, "₹999.50"},
		{1000, "₹1,000.00"},
		{100000, "₹1,00,000.00"},
		{1234567.89, "₹12,34,567.89"},
		{10000000, "₹1,00,00,000.00"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParse_AcceptedForms(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"1", 1},
		{"999999.99", 999999.99},
		{"1,00,000", 100000},
		{"₹1,00,000.00", 100000},
		{" 12 345 ", 12345},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParse_RejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "abc", "12a", "₹", "1.2.3"} {
		if _, err := Parse(in); !errors.Is(err, ErrNotNumeric) {
			t.Errorf("Parse(%q): expected ErrNotNumeric, got %v", in, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "1", "999999.99", "1,00,000"} {
		first, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		again, err := Parse(Format(first))
		if err != nil {
			t.Fatalf("Parse(Format(%v)): %v", first, err)
		}
		if math.Abs(again-first) > 1e-9 {
			t.Errorf("round trip of %q: %v != %v", in, again, first)
		}
	}
}
