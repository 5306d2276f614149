package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleStockLedgerList returns a site's stock ledger in replay order,
// optionally narrowed to one material or entry type.
func HandleStockLedgerList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)

		filter := "site = {:site}"
		binds := map[string]any{"site": siteID}

		if material := e.Request.URL.Query().Get("material"); material != "" {
			filter += " && material = {:material}"
			binds["material"] = material
		}
		if entryType := e.Request.URL.Query().Get("type"); entryType != "" {
			if !validStockEntryType(entryType) {
				return fail(e, http.StatusBadRequest, "Invalid entry type filter", nil)
			}
			filter += " && entry_type = {:entryType}"
			binds["entryType"] = entryType
		}

		records, err := app.FindRecordsByFilter("stock_entries", filter, "entry_date,created", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load stock ledger", err)
		}

		items := make([]StockEntryItem, 0, len(records))
		for _, rec := range records {
			items = append(items, stockEntryItem(app, rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

func validStockEntryType(entryType string) bool {
	for _, t := range services.StockEntryTypes {
		if t == entryType {
			return true
		}
	}
	return false
}

// HandleStockSummary returns closing stock per material for a site,
// with reorder levels so the caller can flag shortages.
func HandleStockSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		rows, err := services.GetStockSummary(app, siteID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load stock summary", err)
		}

		return ok(e, map[string]any{"items": rows})
	}
}

// HandleStockRecalculate replays every material ledger for a site.
// Recovery endpoint for ledgers touched outside the API.
func HandleStockRecalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		err := app.RunInTransaction(func(txApp core.App) error {
			if err := services.RecalculateSiteStock(txApp, siteID); err != nil {
				return err
			}
			return services.RecalculateBudgets(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not recalculate stock", err)
		}

		rows, err := services.GetStockSummary(app, siteID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load stock summary", err)
		}
		return ok(e, map[string]any{"items": rows})
	}
}
