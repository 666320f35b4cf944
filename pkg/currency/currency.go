// Package currency parses and formats rupee amounts using Indian digit
// grouping (1,00,000). Amounts are float64 rupees; parsing tolerates the ₹
// symbol, grouping commas and spaces, nothing else.
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Symbol is prefixed by Format.
const Symbol = "₹"

var ErrNotNumeric = errors.New("currency: not a numeric amount")

// Parse converts a user-entered amount ("1,00,000", "₹999.50", "1200") into
// a float64 rupee value. Grouping commas are stripped wherever the user put
// them; anything else non-numeric is rejected.
func Parse(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	neg := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, Symbol)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0, ErrNotNumeric
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// Format renders an amount as ₹ with lakh/crore grouping and two decimals,
// e.g. 100000 → "₹1,00,000.00". Format and Parse round-trip.
func Format(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(whole, ".")

	grouped := groupIndian(intPart)
	out := Symbol + grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas per the Indian numbering system: the last three
// digits form one group, every two digits above that form another.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
