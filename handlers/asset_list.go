package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// AssetListItem is one row of the asset register response.
type AssetListItem struct {
	ID           string  `json:"id"`
	AssetCode    string  `json:"asset_code"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	SiteID       string  `json:"site"`
	SiteName     string  `json:"site_name"`
	PurchaseDate string  `json:"purchase_date"`
	PurchaseCost float64 `json:"purchase_cost"`
	Remarks      string  `json:"remarks"`
}

func assetListItem(app *pocketbase.PocketBase, rec *core.Record) AssetListItem {
	siteName := ""
	if siteID := rec.GetString("site"); siteID != "" {
		site, err := app.FindRecordById("sites", siteID)
		if err != nil {
			log.Printf("asset_list: could not find site %s: %v", siteID, err)
		} else {
			siteName = site.GetString("name")
		}
	}
	return AssetListItem{
		ID:           rec.Id,
		AssetCode:    rec.GetString("asset_code"),
		Name:         rec.GetString("name"),
		Category:     rec.GetString("category"),
		Status:       rec.GetString("status"),
		SiteID:       rec.GetString("site"),
		SiteName:     siteName,
		PurchaseDate: rec.GetString("purchase_date"),
		PurchaseCost: rec.GetFloat("purchase_cost"),
		Remarks:      rec.GetString("remarks"),
	}
}

// HandleAssetList lists assets filtered by site, category and status.
// site=none selects unassigned assets.
func HandleAssetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)
		query := e.Request.URL.Query()

		filter := "id != ''"
		bind := map[string]any{}

		if site := query.Get("site"); site != "" {
			if site == "none" {
				filter += " && site = ''"
			} else {
				filter += " && site = {:site}"
				bind["site"] = site
			}
		}
		if category := query.Get("category"); category != "" {
			if !containsValue(services.AssetCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid asset category", nil)
			}
			filter += " && category = {:category}"
			bind["category"] = category
		}
		if status := query.Get("status"); status != "" {
			if !containsValue(services.AssetStatuses, status) {
				return fail(e, http.StatusBadRequest, "Invalid asset status", nil)
			}
			filter += " && status = {:status}"
			bind["status"] = status
		}

		all, err := app.FindRecordsByFilter("assets", filter, "asset_code", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load assets", err)
		}

		page := pageSlice(all, params)
		items := make([]AssetListItem, 0, len(page))
		for _, rec := range page {
			items = append(items, assetListItem(app, rec))
		}

		return ok(e, newListResponse(params, len(all), items))
	}
}
