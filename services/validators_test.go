package services

import "testing"

func TestValidateGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "27AAPFU0939F1ZV", true},
		{"valid lowercase normalized", "27aapfu0939f1zv", true},
		{"empty is valid", "", true},
		{"too short", "27AAPFU0939F1Z", false},
		{"missing Z at position 14", "27AAPFU0939F1XV", false},
		{"bad state code", "2XAAPFU0939F1ZV", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateGSTIN(tt.input); got != tt.valid {
				t.Errorf("ValidateGSTIN(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestValidatePAN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "ABCDE1234F", true},
		{"empty is valid", "", true},
		{"digits in wrong place", "AB1DE1234F", false},
		{"too long", "ABCDE1234FX", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePAN(tt.input); got != tt.valid {
				t.Errorf("ValidatePAN(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "9437012345", true},
		{"starts with 5", "5437012345", false},
		{"too short", "943701234", false},
		{"empty is valid", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePhone(tt.input); got != tt.valid {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestValidateIFSC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid SBI", "SBIN0001234", true},
		{"valid with letters in branch", "HDFC0KANPUR", true},
		{"fifth char not zero", "SBIN1001234", false},
		{"too short", "SBIN000123", false},
		{"empty is valid", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateIFSC(tt.input); got != tt.valid {
				t.Errorf("ValidateIFSC(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestValidateVendorFormat(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		errs := ValidateVendorFormat(map[string]string{
			"gstin":     "27AAPFU0939F1ZV",
			"pan":       "ABCDE1234F",
			"pin_code":  "751001",
			"phone":     "9437012345",
			"email":     "accounts@vendor.in",
			"bank_ifsc": "SBIN0001234",
		})
		if len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		errs := ValidateVendorFormat(map[string]string{
			"gstin":     "BADGSTIN",
			"pan":       "BADPAN",
			"phone":     "12345",
			"bank_ifsc": "XX",
		})
		for _, field := range []string{"gstin", "pan", "phone", "bank_ifsc"} {
			if errs[field] == "" {
				t.Errorf("expected error for %s, got none", field)
			}
		}
	})

	t.Run("empty fields pass", func(t *testing.T) {
		errs := ValidateVendorFormat(map[string]string{})
		if len(errs) != 0 {
			t.Errorf("expected no errors for empty input, got %v", errs)
		}
	})
}
