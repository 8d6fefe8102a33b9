package calc

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount extracts the numeric portion of free-form operator input.
// Operators type things like "1,500.00", "27 MT G" or "FIX+RTO" into amount
// fields, so every rune that is not a digit, '.' or '-' is stripped before
// parsing. Unparsable input yields 0; the function never panics and never
// returns NaN or Inf.
func ParseAmount(text string) float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount renders a derived amount back into the string-typed record
// fields with two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
