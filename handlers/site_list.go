package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// SiteListItem is one row of the site list response.
type SiteListItem struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	ClientName         string  `json:"client_name"`
	SiteCode           string  `json:"site_code"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	Status             string  `json:"status"`
	OpeningCashBalance float64 `json:"opening_cash_balance"`
	CreatedDate        string  `json:"created"`
}

func siteListItem(rec *core.Record) SiteListItem {
	createdDate := ""
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("2006-01-02")
	}
	return SiteListItem{
		ID:                 rec.Id,
		Name:               rec.GetString("name"),
		ClientName:         rec.GetString("client_name"),
		SiteCode:           rec.GetString("site_code"),
		City:               rec.GetString("city"),
		State:              rec.GetString("state"),
		Status:             rec.GetString("status"),
		OpeningCashBalance: rec.GetFloat("opening_cash_balance"),
		CreatedDate:        createdDate,
	}
}

// HandleSiteList lists sites, newest first, optionally filtered by
// status.
func HandleSiteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		filter := "id != ''"
		bind := map[string]any{}
		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !containsValue(services.SiteStatuses, status) {
				return fail(e, http.StatusBadRequest, "Invalid status filter", nil)
			}
			filter = "status = {:status}"
			bind["status"] = status
		}

		all, err := app.FindRecordsByFilter("sites", filter, "-created", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load sites", err)
		}

		page, err := app.FindRecordsByFilter("sites", filter, "-created", params.PerPage, params.Offset(), bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load sites", err)
		}

		items := make([]SiteListItem, 0, len(page))
		for _, rec := range page {
			items = append(items, siteListItem(rec))
		}

		return ok(e, newListResponse(params, len(all), items))
	}
}

// containsValue reports whether v appears in list.
func containsValue(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
