package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleAssetDelete removes an asset. An asset with movement history is
// protected: deleting it would erase the trail, so it should be marked
// scrapped instead.
func HandleAssetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assetID := e.Request.PathValue("id")

		asset, err := app.FindRecordById("assets", assetID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Asset not found", err)
		}

		transfers, err := app.FindRecordsByFilter(
			"asset_transfers",
			"asset = {:assetId}",
			"", 1, 0,
			map[string]any{"assetId": assetID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(transfers) > 0 {
			return fail(e, http.StatusConflict, "Asset has transfer history. Mark it scrapped instead of deleting.", nil)
		}

		if err := app.Delete(asset); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete asset", err)
		}

		return ok(e, map[string]string{"deleted": assetID})
	}
}
