package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// BOQSubItem is one rate analysis component of a work item.
type BOQSubItem struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	QtyPerUnit  float64 `json:"qty_per_unit"`
	UOM         string  `json:"uom"`
	Rate        float64 `json:"rate"`
	Cost        float64 `json:"cost"`
	SortOrder   float64 `json:"sort_order"`
}

// BOQWorkItem is one work item with its derived amounts and components.
type BOQWorkItem struct {
	ID             string       `json:"id"`
	ItemCode       string       `json:"item_code"`
	Description    string       `json:"description"`
	Qty            float64      `json:"qty"`
	UOM            string       `json:"uom"`
	Rate           float64      `json:"rate"`
	Amount         float64      `json:"amount"`
	BudgetedRate   float64      `json:"budgeted_rate"`
	BudgetedAmount float64      `json:"budgeted_amount"`
	HSNCode        string       `json:"hsn_code"`
	GSTPercent     float64      `json:"gst_percent"`
	SortOrder      float64      `json:"sort_order"`
	SubItems       []BOQSubItem `json:"sub_items"`
}

// BOQViewResponse is the full BOQ detail with nested rate analysis.
type BOQViewResponse struct {
	BOQListItem
	Items []BOQWorkItem `json:"items"`
}

func boqSubItem(rec *core.Record) BOQSubItem {
	cost := services.CalcComponentCost(rec.GetFloat("qty_per_unit"), rec.GetFloat("rate"))
	return BOQSubItem{
		ID:          rec.Id,
		Type:        rec.GetString("type"),
		Description: rec.GetString("description"),
		QtyPerUnit:  rec.GetFloat("qty_per_unit"),
		UOM:         rec.GetString("uom"),
		Rate:        rec.GetFloat("rate"),
		Cost:        services.Round2(cost),
		SortOrder:   rec.GetFloat("sort_order"),
	}
}

// boqWorkItem builds the item payload with components loaded and the
// budgeted rate derived from them.
func boqWorkItem(app *pocketbase.PocketBase, rec *core.Record) BOQWorkItem {
	item := BOQWorkItem{
		ID:          rec.Id,
		ItemCode:    rec.GetString("item_code"),
		Description: rec.GetString("description"),
		Qty:         rec.GetFloat("qty"),
		UOM:         rec.GetString("uom"),
		Rate:        rec.GetFloat("rate"),
		HSNCode:     rec.GetString("hsn_code"),
		GSTPercent:  rec.GetFloat("gst_percent"),
		SortOrder:   rec.GetFloat("sort_order"),
		SubItems:    []BOQSubItem{},
	}

	subs, err := app.FindRecordsByFilter(
		"boq_sub_items",
		"boq_item = {:item}",
		"sort_order", 0, 0,
		map[string]any{"item": rec.Id},
	)
	if err == nil {
		for _, sub := range subs {
			item.SubItems = append(item.SubItems, boqSubItem(sub))
		}
	}

	costs := make([]float64, 0, len(item.SubItems))
	for _, sub := range item.SubItems {
		costs = append(costs, sub.Cost)
	}
	item.BudgetedRate = services.Round2(services.CalcItemBudgetedRate(costs, rec.GetFloat("budgeted_rate")))
	item.Amount = services.Round2(services.CalcItemAmount(item.Rate, item.Qty))
	item.BudgetedAmount = services.Round2(item.BudgetedRate * item.Qty)
	return item
}

// HandleBOQView returns one BOQ with all work items and their rate
// analysis components.
func HandleBOQView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")

		record, err := app.FindRecordById("boqs", boqID)
		if err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		items, err := app.FindRecordsByFilter(
			"boq_items",
			"boq = {:boq}",
			"sort_order", 0, 0,
			map[string]any{"boq": boqID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load BOQ items", err)
		}

		resp := BOQViewResponse{
			BOQListItem: boqListItem(app, record),
			Items:       make([]BOQWorkItem, 0, len(items)),
		}
		for _, item := range items {
			resp.Items = append(resp.Items, boqWorkItem(app, item))
		}

		return ok(e, resp)
	}
}
