package services

import (
	"fmt"
	"strings"
)

// FormatEUR formats an amount in the Italian euro notation: thousands
// separated by periods, comma before exactly 2 decimal places
// (e.g. €12.345.678,90).
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "€" + applyThousandsGrouping(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts a period every 3 digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "." + result
	}

	return result
}
