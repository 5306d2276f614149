// Package services holds the calculation, ledger and document pipelines
// shared by the HTTP handlers and the CLI commands.
package services

// CalcComponentCost returns the per-unit cost of one rate analysis
// component.
func CalcComponentCost(qtyPerUnit, rate float64) float64 {
	return qtyPerUnit * rate
}

// CalcItemBudgetedRate sums the component costs of a work item. Items
// without rate analysis fall back to the manually entered rate.
func CalcItemBudgetedRate(componentCosts []float64, manualRate float64) float64 {
	if len(componentCosts) == 0 {
		return manualRate
	}
	var sum float64
	for _, c := range componentCosts {
		sum += c
	}
	return sum
}

func CalcItemAmount(rate, qty float64) float64 {
	return rate * qty
}

// BOQTotals aggregates a bill of quantities.
type BOQTotals struct {
	TotalQuoted   float64
	TotalBudgeted float64
	Margin        float64
	MarginPercent float64
}

// WorkItemForTotals carries the work item fields that feed the totals.
type WorkItemForTotals struct {
	Qty          float64
	Rate         float64
	BudgetedRate float64
}

// CalcBOQTotals sums quoted and budgeted amounts over all work items.
// Both rates are per unit, so each is multiplied by the item quantity.
func CalcBOQTotals(items []WorkItemForTotals) BOQTotals {
	var quoted, budgeted float64
	for _, item := range items {
		quoted += item.Rate * item.Qty
		budgeted += item.BudgetedRate * item.Qty
	}

	totals := BOQTotals{
		TotalQuoted:   quoted,
		TotalBudgeted: budgeted,
		Margin:        quoted - budgeted,
	}
	if quoted != 0 {
		totals.MarginPercent = totals.Margin / quoted * 100
	}
	return totals
}
