package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// AssetRequest is the JSON body for creating or updating an asset.
type AssetRequest struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	SiteID       string  `json:"site"`
	PurchaseDate string  `json:"purchase_date"`
	PurchaseCost float64 `json:"purchase_cost"`
	Remarks      string  `json:"remarks"`
}

// HandleAssetCreate registers an asset. The asset code is generated
// from the category and never supplied by the caller.
func HandleAssetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req AssetRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return fail(e, http.StatusBadRequest, "Asset name is required", nil)
		}
		if !containsValue(services.AssetCategories, req.Category) {
			return fail(e, http.StatusBadRequest, "Invalid asset category", nil)
		}
		if req.Status == "" {
			req.Status = "idle"
			if req.SiteID != "" {
				req.Status = "in_service"
			}
		}
		if !containsValue(services.AssetStatuses, req.Status) {
			return fail(e, http.StatusBadRequest, "Invalid asset status", nil)
		}
		if req.SiteID != "" {
			if _, err := app.FindRecordById("sites", req.SiteID); err != nil {
				return fail(e, http.StatusBadRequest, "Unknown site", err)
			}
		}

		assetCode, err := services.GenerateAssetCode(app, req.Category)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate asset code", err)
		}

		col, err := app.FindCollectionByNameOrId("assets")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("asset_code", assetCode)
		record.Set("name", req.Name)
		record.Set("category", req.Category)
		record.Set("status", req.Status)
		record.Set("site", req.SiteID)
		record.Set("purchase_date", strings.TrimSpace(req.PurchaseDate))
		record.Set("purchase_cost", services.Round2(req.PurchaseCost))
		record.Set("remarks", strings.TrimSpace(req.Remarks))

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save asset", err)
		}

		return created(e, assetListItem(app, record))
	}
}
