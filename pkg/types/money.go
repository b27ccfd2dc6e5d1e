package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Prices travel the wire as decimal strings (the settlement backend owns the
// catalog and serializes money that way). Internally everything is integer
// cents so totals stay exact; decimal is only touched at this boundary.

var centsFactor = decimal.NewFromInt(100)

// ParseCents converts a decimal money string ("10.50") into integer cents.
func ParseCents(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty money value")
	}
	dec, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parsing money value %q: %w", value, err)
	}
	if dec.IsNegative() {
		return 0, fmt.Errorf("negative money value %q", value)
	}
	cents := dec.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("money value %q has sub-cent precision", value)
	}
	return cents.IntPart(), nil
}

// FormatCents renders integer cents back into a two-decimal string.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}
