package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// AssetTransferRequest is the JSON body for moving an asset to a site.
type AssetTransferRequest struct {
	ToSite       string `json:"to_site"`
	TransferDate string `json:"transfer_date"`
	Remarks      string `json:"remarks"`
}

// AssetTransferItem is one row of an asset's movement history.
type AssetTransferItem struct {
	ID           string `json:"id"`
	FromSite     string `json:"from_site"`
	FromSiteName string `json:"from_site_name"`
	ToSite       string `json:"to_site"`
	ToSiteName   string `json:"to_site_name"`
	TransferDate string `json:"transfer_date"`
	Remarks      string `json:"remarks"`
}

// HandleAssetTransfer moves an asset to another site and records the
// movement. The asset comes back in service at the destination.
func HandleAssetTransfer(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assetID := e.Request.PathValue("id")

		asset, err := app.FindRecordById("assets", assetID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Asset not found", err)
		}
		if asset.GetString("status") == "scrapped" {
			return fail(e, http.StatusBadRequest, "Scrapped assets cannot be transferred", nil)
		}

		var req AssetTransferRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if req.ToSite == "" {
			return fail(e, http.StatusBadRequest, "Destination site is required", nil)
		}
		if req.ToSite == asset.GetString("site") {
			return fail(e, http.StatusBadRequest, "Asset is already at this site", nil)
		}
		if _, err := app.FindRecordById("sites", req.ToSite); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown destination site", err)
		}
		if req.TransferDate == "" {
			req.TransferDate = time.Now().Format("2006-01-02")
		}

		transferCol, err := app.FindCollectionByNameOrId("asset_transfers")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		transfer := core.NewRecord(transferCol)
		transfer.Set("asset", assetID)
		transfer.Set("from_site", asset.GetString("site"))
		transfer.Set("to_site", req.ToSite)
		transfer.Set("transfer_date", req.TransferDate)
		transfer.Set("remarks", strings.TrimSpace(req.Remarks))

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(transfer); err != nil {
				return err
			}
			asset.Set("site", req.ToSite)
			asset.Set("status", "in_service")
			return txApp.Save(asset)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not transfer asset", err)
		}

		return ok(e, assetListItem(app, asset))
	}
}

// HandleAssetTransferList returns an asset's movement history, newest
// first.
func HandleAssetTransferList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assetID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("assets", assetID); err != nil {
			return fail(e, http.StatusNotFound, "Asset not found", err)
		}

		records, err := app.FindRecordsByFilter(
			"asset_transfers",
			"asset = {:assetId}",
			"-transfer_date",
			0,
			0,
			map[string]any{"assetId": assetID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load transfers", err)
		}

		items := make([]AssetTransferItem, 0, len(records))
		for _, rec := range records {
			items = append(items, AssetTransferItem{
				ID:           rec.Id,
				FromSite:     rec.GetString("from_site"),
				FromSiteName: siteNameOf(app, rec.GetString("from_site")),
				ToSite:       rec.GetString("to_site"),
				ToSiteName:   siteNameOf(app, rec.GetString("to_site")),
				TransferDate: rec.GetString("transfer_date"),
				Remarks:      rec.GetString("remarks"),
			})
		}

		return ok(e, map[string]any{"items": items})
	}
}

// siteNameOf resolves a site ID to its name, tolerating missing sites.
func siteNameOf(app *pocketbase.PocketBase, siteID string) string {
	if siteID == "" {
		return ""
	}
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		log.Printf("asset_transfer: could not find site %s: %v", siteID, err)
		return ""
	}
	return site.GetString("name")
}
