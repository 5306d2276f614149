package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleVendorList returns the vendor directory in name order. With a
// site query only vendors linked to that site are returned; a q query
// searches name, GSTIN and contact person.
func HandleVendorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)
		query := e.Request.URL.Query()

		var linkedTo map[string]bool
		if siteID := query.Get("site"); siteID != "" {
			if _, err := app.FindRecordById("sites", siteID); err != nil {
				return fail(e, http.StatusNotFound, "Site not found", err)
			}
			links, err := app.FindRecordsByFilter(
				"site_vendors",
				"site = {:site}",
				"", 0, 0,
				map[string]any{"site": siteID},
			)
			if err != nil {
				return fail(e, http.StatusInternalServerError, "Could not load vendor links", err)
			}
			linkedTo = make(map[string]bool, len(links))
			for _, link := range links {
				linkedTo[link.GetString("vendor")] = true
			}
		}

		filter := "id != ''"
		binds := map[string]any{}
		if q := strings.TrimSpace(query.Get("q")); q != "" {
			filter += " && (name ~ {:q} || gstin ~ {:q} || contact_person ~ {:q})"
			binds["q"] = q
		}

		records, err := app.FindRecordsByFilter("vendors", filter, "name", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load vendors", err)
		}

		items := make([]VendorItem, 0, len(records))
		for _, rec := range records {
			if linkedTo != nil && !linkedTo[rec.Id] {
				continue
			}
			items = append(items, vendorItem(rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}
