package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Round2 rounds an amount to 2 decimal places, half away from zero.
// Every stored ledger figure (running balances, closing stock, consumed
// values) passes through this so recomputation is deterministic.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatINR formats an amount in Indian Rupee notation: the rightmost 3
// digits form one group, digits before them are grouped in pairs
// (₹1,23,45,678.90). Always 2 decimal places.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	return sign + "₹" + groupIndian(intPart) + "." + decPart
}

// groupIndian inserts commas into a digit string using the Indian system:
// last 3 digits together, then pairs from the right.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	groups := []string{digits[n-3:]}
	rest := digits[:n-3]
	for len(rest) > 2 {
		groups = append(groups, rest[len(rest)-2:])
		rest = rest[:len(rest)-2]
	}
	if rest != "" {
		groups = append(groups, rest)
	}

	// groups were collected right to left
	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		if i > 0 {
			b.WriteString(",")
		}
	}
	return b.String()
}

// FormatQty renders a quantity without decimals when whole, otherwise
// with 2 decimal places.
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}

// FormatDateDMY converts an ISO date string (2006-01-02) to the
// DD-MM-YYYY form used on printed documents. Unparseable input is
// returned unchanged.
func FormatDateDMY(iso string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return t.Format("02-01-2006")
}
