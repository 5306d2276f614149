package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandlePOList returns purchase orders for a site, newest first,
// filterable by status and vendor.
func HandlePOList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)

		filter := "site = {:site}"
		binds := map[string]any{"site": siteID}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !validPOStatus(status) {
				return fail(e, http.StatusBadRequest, "Invalid status filter", nil)
			}
			filter += " && status = {:status}"
			binds["status"] = status
		}
		if vendorID := e.Request.URL.Query().Get("vendor"); vendorID != "" {
			filter += " && vendor = {:vendor}"
			binds["vendor"] = vendorID
		}

		records, err := app.FindRecordsByFilter("purchase_orders", filter, "-order_date,-created", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load purchase orders", err)
		}

		items := make([]POListItem, 0, len(records))
		for _, rec := range records {
			items = append(items, poListItem(app, rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

func validPOStatus(status string) bool {
	for _, s := range services.POStatuses {
		if s == status {
			return true
		}
	}
	return false
}
