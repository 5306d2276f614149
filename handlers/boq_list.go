package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBOQList returns the BOQs of a site with their totals, newest
// first, searchable by title or reference number.
func HandleBOQList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)

		filter := "site = {:site}"
		binds := map[string]any{"site": siteID}

		if q := e.Request.URL.Query().Get("q"); q != "" {
			filter += " && (title ~ {:q} || reference_number ~ {:q})"
			binds["q"] = q
		}

		records, err := app.FindRecordsByFilter("boqs", filter, "-created", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load BOQs", err)
		}

		items := make([]BOQListItem, 0, len(records))
		for _, rec := range records {
			items = append(items, boqListItem(app, rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}
