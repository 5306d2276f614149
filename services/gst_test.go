package services

import (
	"math"
	"testing"
)

func TestCalcLineItem(t *testing.T) {
	tests := []struct {
		name          string
		rate          float64
		qty           float64
		gstPercent    float64
		expectTaxable float64
		expectGST     float64
		expectTotal   float64
	}{
		{"basic 18 percent", 100, 10, 18, 1000, 180, 1180},
		{"zero gst", 250, 4, 0, 1000, 0, 1000},
		{"five percent", 80, 25, 5, 2000, 100, 2100},
		{"fractional qty", 99.50, 2.5, 12, 248.75, 29.85, 278.60},
		{"zero qty", 500, 0, 18, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLineItem(tt.rate, tt.qty, tt.gstPercent)
			if !floatClose(got.TaxableValue, tt.expectTaxable) {
				t.Errorf("TaxableValue = %v, want %v", got.TaxableValue, tt.expectTaxable)
			}
			if !floatClose(got.GSTAmount, tt.expectGST) {
				t.Errorf("GSTAmount = %v, want %v", got.GSTAmount, tt.expectGST)
			}
			if !floatClose(got.Total, tt.expectTotal) {
				t.Errorf("Total = %v, want %v", got.Total, tt.expectTotal)
			}
		})
	}
}

func TestCalcPOTotals(t *testing.T) {
	t.Run("uniform gst", func(t *testing.T) {
		lines := []LineItemAmounts{
			CalcLineItem(100, 10, 18),
			CalcLineItem(200, 5, 18),
		}
		got := CalcPOTotals(lines)
		if !floatClose(got.TaxableValue, 2000) {
			t.Errorf("TaxableValue = %v, want 2000", got.TaxableValue)
		}
		if !floatClose(got.GSTPercent, 18) {
			t.Errorf("GSTPercent = %v, want 18", got.GSTPercent)
		}
		if !floatClose(got.GSTAmount, 360) {
			t.Errorf("GSTAmount = %v, want 360", got.GSTAmount)
		}
		if !floatClose(got.GrandTotal, 2360) {
			t.Errorf("GrandTotal = %v, want 2360", got.GrandTotal)
		}
	})

	t.Run("mixed gst weights percent", func(t *testing.T) {
		lines := []LineItemAmounts{
			CalcLineItem(100, 10, 18), // taxable 1000, gst 180
			CalcLineItem(100, 10, 5),  // taxable 1000, gst 50
		}
		got := CalcPOTotals(lines)
		if !floatClose(got.GSTPercent, 11.5) {
			t.Errorf("GSTPercent = %v, want 11.5", got.GSTPercent)
		}
		if !floatClose(got.GSTAmount, 230) {
			t.Errorf("GSTAmount = %v, want 230", got.GSTAmount)
		}
	})

	t.Run("round off up", func(t *testing.T) {
		// taxable 105.50, gst 5% = 5.275, subtotal 110.775 → 111
		lines := []LineItemAmounts{CalcLineItem(105.50, 1, 5)}
		got := CalcPOTotals(lines)
		if !floatClose(got.RoundOff, 0.225) {
			t.Errorf("RoundOff = %v, want 0.225", got.RoundOff)
		}
		if !floatClose(got.GrandTotal, 111) {
			t.Errorf("GrandTotal = %v, want 111", got.GrandTotal)
		}
	})

	t.Run("round off down", func(t *testing.T) {
		// taxable 100.40, no gst → 100
		lines := []LineItemAmounts{CalcLineItem(100.40, 1, 0)}
		got := CalcPOTotals(lines)
		if !floatClose(got.RoundOff, -0.40) {
			t.Errorf("RoundOff = %v, want -0.40", got.RoundOff)
		}
		if !floatClose(got.GrandTotal, 100) {
			t.Errorf("GrandTotal = %v, want 100", got.GrandTotal)
		}
	})

	t.Run("empty lines", func(t *testing.T) {
		got := CalcPOTotals(nil)
		if got.GrandTotal != 0 || got.GSTPercent != 0 {
			t.Errorf("empty totals = %+v, want zeros", got)
		}
	})
}

func TestCalcRoundOff(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect float64
	}{
		{"below half rounds down", 110.49, -0.49},
		{"half rounds up", 110.50, 0.50},
		{"above half rounds up", 110.51, 0.49},
		{"whole number", 110.00, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calcRoundOff(tt.amount)
			if !floatClose(got, tt.expect) {
				t.Errorf("calcRoundOff(%v) = %v, want %v", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		expect string
	}{
		{"zero", 0, "Zero Rupees Only/-"},
		{"single digit", 5, "Five Rupees Only/-"},
		{"teens", 17, "Seventeen Rupees Only/-"},
		{"tens", 40, "Forty Rupees Only/-"},
		{"compound tens", 87, "Eighty Seven Rupees Only/-"},
		{"hundreds", 300, "Three Hundred Rupees Only/-"},
		{"hundreds with remainder", 345, "Three Hundred and Forty Five Rupees Only/-"},
		{"thousands", 5000, "Five Thousand Rupees Only/-"},
		{"lakhs", 913183, "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three Rupees Only/-"},
		{"crores", 25000000, "Two Crores Fifty Lakhs Rupees Only/-"},
		{"with paise", 345.45, "Three Hundred and Forty Five Rupees and Forty Five Paise Only/-"},
		{"paise only", 0.75, "Seventy Five Paise Only/-"},
		{"negative", -100, "Negative One Hundred Rupees Only/-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmountToWords(tt.amount)
			if got != tt.expect {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestValidGSTPercent(t *testing.T) {
	for _, valid := range []float64{0, 5, 12, 18, 28} {
		if !ValidGSTPercent(valid) {
			t.Errorf("expected %v to be a valid GST slab", valid)
		}
	}
	for _, invalid := range []float64{3, 18.5, -5, 100} {
		if ValidGSTPercent(invalid) {
			t.Errorf("expected %v to be rejected", invalid)
		}
	}
}

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
