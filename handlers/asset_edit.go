package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleAssetUpdate patches an asset. The asset code and the site are
// immutable here: codes are permanent identifiers and site moves must
// go through the transfer endpoint so the movement history stays
// complete.
func HandleAssetUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assetID := e.Request.PathValue("id")

		record, err := app.FindRecordById("assets", assetID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Asset not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if _, has := req["site"]; has {
			return fail(e, http.StatusBadRequest, "Use the transfer endpoint to move an asset between sites", nil)
		}
		if _, has := req["asset_code"]; has {
			return fail(e, http.StatusBadRequest, "Asset codes cannot be changed", nil)
		}

		if v, has := req["name"]; has {
			name := strings.TrimSpace(toString(v))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Asset name cannot be empty", nil)
			}
			record.Set("name", name)
		}
		if v, has := req["category"]; has {
			category := toString(v)
			if !containsValue(services.AssetCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid asset category", nil)
			}
			record.Set("category", category)
		}
		if v, has := req["status"]; has {
			status := toString(v)
			if !containsValue(services.AssetStatuses, status) {
				return fail(e, http.StatusBadRequest, "Invalid asset status", nil)
			}
			record.Set("status", status)
		}
		if v, has := req["purchase_date"]; has {
			record.Set("purchase_date", strings.TrimSpace(toString(v)))
		}
		if v, has := req["purchase_cost"]; has {
			record.Set("purchase_cost", services.Round2(toFloat(v)))
		}
		if v, has := req["remarks"]; has {
			record.Set("remarks", strings.TrimSpace(toString(v)))
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update asset", err)
		}

		return ok(e, assetListItem(app, record))
	}
}
