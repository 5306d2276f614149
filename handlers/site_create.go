package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// SiteRequest is the JSON body for creating or updating a site.
type SiteRequest struct {
	Name               string  `json:"name"`
	ClientName         string  `json:"client_name"`
	SiteCode           string  `json:"site_code"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Status             string  `json:"status"`
	OpeningCashBalance float64 `json:"opening_cash_balance"`
}

// HandleSiteCreate creates a site. site_code is upper-cased because it
// is embedded in every generated document number.
func HandleSiteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req SiteRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.Name = strings.TrimSpace(req.Name)
		req.SiteCode = strings.ToUpper(strings.TrimSpace(req.SiteCode))
		if req.Name == "" {
			return fail(e, http.StatusBadRequest, "Site name is required", nil)
		}
		if req.Status == "" {
			req.Status = "active"
		}
		if !containsValue(services.SiteStatuses, req.Status) {
			return fail(e, http.StatusBadRequest, "Invalid site status", nil)
		}

		existing, _ := app.FindRecordsByFilter(
			"sites",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": req.Name},
		)
		if len(existing) > 0 {
			return fail(e, http.StatusConflict, "A site with this name already exists", nil)
		}

		col, err := app.FindCollectionByNameOrId("sites")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("name", req.Name)
		record.Set("client_name", strings.TrimSpace(req.ClientName))
		record.Set("site_code", req.SiteCode)
		record.Set("city", strings.TrimSpace(req.City))
		record.Set("state", strings.TrimSpace(req.State))
		record.Set("status", req.Status)
		record.Set("opening_cash_balance", services.Round2(req.OpeningCashBalance))

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save site", err)
		}

		return created(e, siteListItem(record))
	}
}
