package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// SiteCounts summarises how much of each module a site carries.
type SiteCounts struct {
	Assets       int `json:"assets"`
	BOQs         int `json:"boqs"`
	Vouchers     int `json:"vouchers"`
	Budgets      int `json:"budgets"`
	Manpower     int `json:"manpower"`
	Indents      int `json:"indents"`
	POs          int `json:"purchase_orders"`
	StockEntries int `json:"stock_entries"`
}

// SiteView is the detail response for one site.
type SiteView struct {
	SiteListItem
	Counts SiteCounts `json:"counts"`
}

// countBySite counts records of a collection scoped to a site. Errors
// count as zero; the view should not fail over one module.
func countBySite(app *pocketbase.PocketBase, collection, siteField, siteID string) int {
	records, err := app.FindRecordsByFilter(
		collection,
		siteField+" = {:siteId}",
		"", 0, 0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return 0
	}
	return len(records)
}

// HandleSiteView returns one site with its per-module record counts.
func HandleSiteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("id")

		record, err := app.FindRecordById("sites", siteID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		view := SiteView{
			SiteListItem: siteListItem(record),
			Counts: SiteCounts{
				Assets:       countBySite(app, "assets", "site", siteID),
				BOQs:         countBySite(app, "boqs", "site", siteID),
				Vouchers:     countBySite(app, "cash_vouchers", "site", siteID),
				Budgets:      countBySite(app, "site_budgets", "site", siteID),
				Manpower:     countBySite(app, "manpower_assignments", "site", siteID),
				Indents:      countBySite(app, "indents", "site", siteID),
				POs:          countBySite(app, "purchase_orders", "site", siteID),
				StockEntries: countBySite(app, "stock_entries", "site", siteID),
			},
		}

		return ok(e, view)
	}
}
