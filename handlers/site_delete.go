package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSiteDelete deletes a site. Site-scoped ledgers, budgets and
// documents cascade via the schema; assets survive and are detached so
// they can be transferred to another site.
func HandleSiteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("id")
		if siteID == "" {
			return fail(e, http.StatusBadRequest, "Missing site ID", nil)
		}

		record, err := app.FindRecordById("sites", siteID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		assets, err := app.FindRecordsByFilter(
			"assets",
			"site = {:siteId}",
			"", 0, 0,
			map[string]any{"siteId": siteID},
		)
		if err != nil {
			assets = nil
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			for _, asset := range assets {
				asset.Set("site", "")
				asset.Set("status", "idle")
				if err := txApp.Save(asset); err != nil {
					return err
				}
			}
			return txApp.Delete(record)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete site", err)
		}

		return ok(e, map[string]any{"deleted": siteID, "detached_assets": len(assets)})
	}
}
