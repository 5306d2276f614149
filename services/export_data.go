package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// BOQExportRow represents a single row in a BOQ document: a work item or
// one of its rate analysis components.
type BOQExportRow struct {
	Level          int    // 0 = work item, 1 = component
	Index          string // "1", "1.1" etc
	Description    string
	ComponentType  string // material, labour or machinery on level 1
	Qty            float64
	UOM            string
	Rate           float64
	Amount         float64
	BudgetedRate   float64
	BudgetedAmount float64
	HSNCode        string
	GSTPercent     float64
}

// BOQExportData holds everything a BOQ Excel or PDF document needs.
type BOQExportData struct {
	Title           string
	SiteName        string
	SiteCode        string
	ReferenceNumber string
	CreatedDate     string
	Rows            []BOQExportRow
	TotalQuoted     float64
	TotalBudgeted   float64
	Margin          float64
	MarginPercent   float64
}

// BuildBOQExportData assembles a BOQ document from PocketBase records.
// Work items keep their sort order; components are indexed under their
// parent ("1.1", "1.2").
func BuildBOQExportData(app core.App, boqID string) (*BOQExportData, error) {
	boq, err := app.FindRecordById("boqs", boqID)
	if err != nil {
		return nil, fmt.Errorf("boq not found: %w", err)
	}

	site, err := app.FindRecordById("sites", boq.GetString("site"))
	if err != nil {
		return nil, fmt.Errorf("site for boq %s: %w", boqID, err)
	}

	items, err := app.FindRecordsByFilter(
		"boq_items",
		"boq = {:boqId}",
		"sort_order",
		0,
		0,
		map[string]any{"boqId": boqID},
	)
	if err != nil {
		return nil, fmt.Errorf("load boq items: %w", err)
	}

	data := &BOQExportData{
		Title:           boq.GetString("title"),
		SiteName:        site.GetString("name"),
		SiteCode:        site.GetString("site_code"),
		ReferenceNumber: boq.GetString("reference_number"),
		CreatedDate:     FormatDateDMY(boq.GetDateTime("created").Time().Format("2006-01-02")),
	}

	var forTotals []WorkItemForTotals

	for i, item := range items {
		subs, err := app.FindRecordsByFilter(
			"boq_sub_items",
			"boq_item = {:itemId}",
			"sort_order",
			0,
			0,
			map[string]any{"itemId": item.Id},
		)
		if err != nil {
			return nil, fmt.Errorf("load components for item %s: %w", item.Id, err)
		}

		componentCosts := make([]float64, 0, len(subs))
		for _, sub := range subs {
			componentCosts = append(componentCosts, CalcComponentCost(sub.GetFloat("qty_per_unit"), sub.GetFloat("rate")))
		}

		qty := item.GetFloat("qty")
		rate := item.GetFloat("rate")
		budgetedRate := CalcItemBudgetedRate(componentCosts, item.GetFloat("budgeted_rate"))

		data.Rows = append(data.Rows, BOQExportRow{
			Level:          0,
			Index:          fmt.Sprintf("%d", i+1),
			Description:    item.GetString("description"),
			Qty:            qty,
			UOM:            item.GetString("uom"),
			Rate:           rate,
			Amount:         Round2(CalcItemAmount(rate, qty)),
			BudgetedRate:   Round2(budgetedRate),
			BudgetedAmount: Round2(budgetedRate * qty),
			HSNCode:        item.GetString("hsn_code"),
			GSTPercent:     item.GetFloat("gst_percent"),
		})

		for j, sub := range subs {
			data.Rows = append(data.Rows, BOQExportRow{
				Level:         1,
				Index:         fmt.Sprintf("%d.%d", i+1, j+1),
				Description:   sub.GetString("description"),
				ComponentType: sub.GetString("type"),
				Qty:           sub.GetFloat("qty_per_unit"),
				UOM:           sub.GetString("uom"),
				Rate:          sub.GetFloat("rate"),
				Amount:        Round2(componentCosts[j]),
			})
		}

		forTotals = append(forTotals, WorkItemForTotals{
			Qty:          qty,
			Rate:         rate,
			BudgetedRate: budgetedRate,
		})
	}

	totals := CalcBOQTotals(forTotals)
	data.TotalQuoted = Round2(totals.TotalQuoted)
	data.TotalBudgeted = Round2(totals.TotalBudgeted)
	data.Margin = Round2(totals.Margin)
	data.MarginPercent = totals.MarginPercent

	return data, nil
}
