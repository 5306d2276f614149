package services

import (
	"math"
	"strings"
)

// LineItemAmounts holds the calculated amounts for a single PO line item.
type LineItemAmounts struct {
	Qty          float64
	Rate         float64
	GSTPercent   float64
	TaxableValue float64 // Rate * Qty
	GSTAmount    float64 // TaxableValue * GSTPercent / 100
	Total        float64 // TaxableValue + GSTAmount
}

// POTotals holds the aggregated amounts for a purchase order.
type POTotals struct {
	TaxableValue float64
	GSTPercent   float64 // effective rate, weighted by taxable value
	GSTAmount    float64
	RoundOff     float64
	GrandTotal   float64
}

// ValidGSTPercent reports whether a rate is one of the GST slabs.
func ValidGSTPercent(percent float64) bool {
	if percent != float64(int(percent)) {
		return false
	}
	for _, option := range GSTOptions {
		if int(percent) == option {
			return true
		}
	}
	return false
}

// CalcLineItem calculates the amounts for a single PO line item.
func CalcLineItem(rate, qty, gstPercent float64) LineItemAmounts {
	taxable := rate * qty
	gst := taxable * gstPercent / 100
	return LineItemAmounts{
		Qty:          qty,
		Rate:         rate,
		GSTPercent:   gstPercent,
		TaxableValue: taxable,
		GSTAmount:    gst,
		Total:        taxable + gst,
	}
}

// CalcPOTotals aggregates line items into order totals. The effective
// GST percent is weighted by taxable value, and the subtotal is rounded
// to the nearest rupee via a signed round-off.
func CalcPOTotals(lines []LineItemAmounts) POTotals {
	var totals POTotals

	for _, line := range lines {
		totals.TaxableValue += line.TaxableValue
		totals.GSTAmount += line.GSTAmount
	}

	if totals.TaxableValue > 0 {
		totals.GSTPercent = (totals.GSTAmount / totals.TaxableValue) * 100
	}

	subtotal := totals.TaxableValue + totals.GSTAmount
	totals.RoundOff = calcRoundOff(subtotal)
	totals.GrandTotal = subtotal + totals.RoundOff

	return totals
}

// calcRoundOff returns the signed adjustment to the nearest rupee.
// Fractional part < 0.50 rounds down (negative round-off), >= 0.50
// rounds up (positive round-off).
func calcRoundOff(amount float64) float64 {
	return math.Round(amount) - amount
}

// AmountToWords converts an amount to Indian English words, including
// paise when present.
// 913183.45 → "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three
// Rupees and Forty Five Paise Only/-"
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	// Work in paise to avoid float drift on the fractional part.
	totalPaise := int64(math.Round(amount * 100))
	rupees := totalPaise / 100
	paise := totalPaise % 100

	if rupees == 0 && paise == 0 {
		return "Zero Rupees Only/-"
	}

	var b strings.Builder
	if rupees > 0 {
		b.WriteString(convertToIndianWords(rupees))
		b.WriteString(" Rupees")
	}
	if paise > 0 {
		if rupees > 0 {
			b.WriteString(" and ")
		}
		b.WriteString(convertUnder100(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only/-")
	return b.String()
}

func convertToIndianWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= 10000000 {
		parts = append(parts, convertUnder100(n/10000000)+" Crores")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, convertUnder100(n/100000)+" Lakhs")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, convertUnder100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+convertUnder100(n))
		} else {
			parts = append(parts, convertUnder100(n))
		}
	}

	return strings.Join(parts, " ")
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
