package services

import (
	"math"
	"testing"
)

func TestCalcComponentCost(t *testing.T) {
	tests := []struct {
		qtyPerUnit, rate, want float64
	}{
		{8, 380, 3040},   // cement, bags per Cum
		{2.5, 460, 1150}, // sand
		{0.5, 800, 400},  // mason half day
		{0, 500, 0},
		{6, 0, 0},
	}
	for _, tt := range tests {
		if got := CalcComponentCost(tt.qtyPerUnit, tt.rate); got != tt.want {
			t.Errorf("CalcComponentCost(%v, %v) = %v, want %v", tt.qtyPerUnit, tt.rate, got, tt.want)
		}
	}
}

func TestCalcItemBudgetedRate(t *testing.T) {
	tests := []struct {
		name       string
		components []float64
		manual     float64
		want       float64
	}{
		{"sums component costs", []float64{3040, 400, 250}, 0, 3690},
		{"components win over manual rate", []float64{1200}, 4800, 1200},
		{"nil components use manual rate", nil, 5100, 5100},
		{"no components use manual rate", []float64{}, 5100, 5100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcItemBudgetedRate(tt.components, tt.manual); got != tt.want {
				t.Errorf("CalcItemBudgetedRate(%v, %v) = %v, want %v", tt.components, tt.manual, got, tt.want)
			}
		})
	}
}

func TestCalcItemAmount(t *testing.T) {
	if got := CalcItemAmount(5600, 120); got != 672000 {
		t.Errorf("CalcItemAmount(5600, 120) = %v, want 672000", got)
	}
	if got := CalcItemAmount(5600, 0); got != 0 {
		t.Errorf("CalcItemAmount(5600, 0) = %v, want 0", got)
	}
}

func totalsClose(a, b BOQTotals) bool {
	const eps = 0.001
	return math.Abs(a.TotalQuoted-b.TotalQuoted) < eps &&
		math.Abs(a.TotalBudgeted-b.TotalBudgeted) < eps &&
		math.Abs(a.Margin-b.Margin) < eps &&
		math.Abs(a.MarginPercent-b.MarginPercent) < eps
}

func TestCalcBOQTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []WorkItemForTotals
		want  BOQTotals
	}{
		{
			name:  "single work item",
			items: []WorkItemForTotals{{Qty: 120, Rate: 5000, BudgetedRate: 4000}},
			want:  BOQTotals{TotalQuoted: 600000, TotalBudgeted: 480000, Margin: 120000, MarginPercent: 20},
		},
		{
			name: "mixed margins across items",
			items: []WorkItemForTotals{
				{Qty: 100, Rate: 240, BudgetedRate: 252},
				{Qty: 2, Rate: 18000, BudgetedRate: 16200},
			},
			want: BOQTotals{TotalQuoted: 60000, TotalBudgeted: 57600, Margin: 2400, MarginPercent: 4},
		},
		{
			name:  "loss making item",
			items: []WorkItemForTotals{{Qty: 1, Rate: 45000, BudgetedRate: 54000}},
			want:  BOQTotals{TotalQuoted: 45000, TotalBudgeted: 54000, Margin: -9000, MarginPercent: -20},
		},
		{
			name:  "zero quoted keeps percent at zero",
			items: []WorkItemForTotals{{Qty: 10, Rate: 0, BudgetedRate: 35}},
			want:  BOQTotals{TotalBudgeted: 350, Margin: -350},
		},
		{
			name: "no items",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalcBOQTotals(tt.items); !totalsClose(got, tt.want) {
				t.Errorf("CalcBOQTotals() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
