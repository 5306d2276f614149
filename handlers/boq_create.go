package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// BOQRequest is the JSON body for creating or renaming a bill of
// quantities.
type BOQRequest struct {
	Title           string `json:"title"`
	ReferenceNumber string `json:"reference_number"`
}

// BOQListItem is one BOQ header with its roll-up totals.
type BOQListItem struct {
	ID              string  `json:"id"`
	SiteID          string  `json:"site"`
	Title           string  `json:"title"`
	ReferenceNumber string  `json:"reference_number"`
	ItemCount       int     `json:"item_count"`
	TotalQuoted     float64 `json:"total_quoted"`
	TotalBudgeted   float64 `json:"total_budgeted"`
	Margin          float64 `json:"margin"`
	MarginPercent   float64 `json:"margin_percent"`
	Created         string  `json:"created"`
}

// boqTotals walks a BOQ's work items and derives the quoted/budgeted
// roll-up. Budgeted rates come from rate analysis components when any
// exist.
func boqTotals(app *pocketbase.PocketBase, boqID string) (int, services.BOQTotals) {
	items, err := app.FindRecordsByFilter(
		"boq_items",
		"boq = {:boq}",
		"sort_order", 0, 0,
		map[string]any{"boq": boqID},
	)
	if err != nil {
		log.Printf("boq: could not load items for %s: %v", boqID, err)
		return 0, services.BOQTotals{}
	}

	var forTotals []services.WorkItemForTotals
	for _, item := range items {
		forTotals = append(forTotals, services.WorkItemForTotals{
			Qty:          item.GetFloat("qty"),
			Rate:         item.GetFloat("rate"),
			BudgetedRate: itemBudgetedRate(app, item),
		})
	}
	return len(items), services.CalcBOQTotals(forTotals)
}

// itemBudgetedRate resolves a work item's budgeted rate, preferring its
// rate analysis components over the manually entered figure.
func itemBudgetedRate(app *pocketbase.PocketBase, item *core.Record) float64 {
	subs, err := app.FindRecordsByFilter(
		"boq_sub_items",
		"boq_item = {:item}",
		"sort_order", 0, 0,
		map[string]any{"item": item.Id},
	)
	if err != nil {
		log.Printf("boq: could not load components for %s: %v", item.Id, err)
		return item.GetFloat("budgeted_rate")
	}
	costs := make([]float64, 0, len(subs))
	for _, sub := range subs {
		costs = append(costs, services.CalcComponentCost(sub.GetFloat("qty_per_unit"), sub.GetFloat("rate")))
	}
	return services.CalcItemBudgetedRate(costs, item.GetFloat("budgeted_rate"))
}

func boqListItem(app *pocketbase.PocketBase, rec *core.Record) BOQListItem {
	count, totals := boqTotals(app, rec.Id)
	return BOQListItem{
		ID:              rec.Id,
		SiteID:          rec.GetString("site"),
		Title:           rec.GetString("title"),
		ReferenceNumber: rec.GetString("reference_number"),
		ItemCount:       count,
		TotalQuoted:     services.Round2(totals.TotalQuoted),
		TotalBudgeted:   services.Round2(totals.TotalBudgeted),
		Margin:          services.Round2(totals.Margin),
		MarginPercent:   services.Round2(totals.MarginPercent),
		Created:         rec.GetDateTime("created").String(),
	}
}

// HandleBOQCreate opens an empty bill of quantities for a site. Titles
// are unique per site; reference numbers are unique across sites when
// set.
func HandleBOQCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req BOQRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		title := strings.TrimSpace(req.Title)
		refNumber := strings.TrimSpace(req.ReferenceNumber)

		if title == "" {
			return fail(e, http.StatusBadRequest, "BOQ title is required", nil)
		}

		existing, _ := app.FindRecordsByFilter(
			"boqs",
			"site = {:site} && title = {:title}",
			"", 1, 0,
			map[string]any{"site": siteID, "title": title},
		)
		if len(existing) > 0 {
			return fail(e, http.StatusConflict, "A BOQ with this title already exists for this site", nil)
		}

		if refNumber != "" {
			existing, _ := app.FindRecordsByFilter(
				"boqs",
				"reference_number = {:ref}",
				"", 1, 0,
				map[string]any{"ref": refNumber},
			)
			if len(existing) > 0 {
				return fail(e, http.StatusConflict, "A BOQ with this reference number already exists", nil)
			}
		}

		col, err := app.FindCollectionByNameOrId("boqs")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("title", title)
		record.Set("reference_number", refNumber)

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save BOQ", err)
		}

		return created(e, boqListItem(app, record))
	}
}
