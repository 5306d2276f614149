package services

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect float64
	}{
		{"already rounded", 10.25, 10.25},
		{"round down", 10.254, 10.25},
		{"round up", 10.255, 10.26},
		{"half away from zero positive", 0.005, 0.01},
		{"half away from zero negative", -0.005, -0.01},
		{"negative round down", -10.254, -10.25},
		{"whole number", 42, 42},
		{"repeating fraction", 1.0 / 3.0, 0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if !floatClose(got, tt.expect) {
				t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatINR_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "₹0.00"},
		{"small integer", 5, "₹5.00"},
		{"with decimals", 42.50, "₹42.50"},
		{"hundreds", 999.99, "₹999.99"},
		{"thousands", 1234.56, "₹1,234.56"},
		{"lakhs", 123456.78, "₹1,23,456.78"},
		{"ten lakhs", 1234567.89, "₹12,34,567.89"},
		{"crores", 12345678.90, "₹1,23,45,678.90"},
		{"ten crores", 123456789.00, "₹12,34,56,789.00"},
		{"negative small", -100.00, "-₹100.00"},
		{"negative lakhs", -250000.50, "-₹2,50,000.50"},
		{"exact thousands boundary", 1000, "₹1,000.00"},
		{"exact lakh boundary", 100000, "₹1,00,000.00"},
		{"exact crore boundary", 10000000, "₹1,00,00,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatINR(tt.input)
			if got != tt.expect {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestGroupIndian(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"single digit", "5", "5"},
		{"three digits", "999", "999"},
		{"four digits", "1234", "1,234"},
		{"five digits", "12345", "12,345"},
		{"six digits", "123456", "1,23,456"},
		{"seven digits", "1234567", "12,34,567"},
		{"eight digits", "12345678", "1,23,45,678"},
		{"ten digits", "1234567890", "1,23,45,67,890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupIndian(tt.input)
			if got != tt.expect {
				t.Errorf("groupIndian(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"whole", 150, "150"},
		{"fractional", 12.5, "12.50"},
		{"two decimals", 0.75, "0.75"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQty(tt.input); got != tt.expect {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatDateDMY(t *testing.T) {
	if got := FormatDateDMY("2026-04-01"); got != "01-04-2026" {
		t.Errorf("FormatDateDMY ISO = %q, want 01-04-2026", got)
	}
	if got := FormatDateDMY("not-a-date"); got != "not-a-date" {
		t.Errorf("FormatDateDMY passthrough = %q, want unchanged input", got)
	}
}
