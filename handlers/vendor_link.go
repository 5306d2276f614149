package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// findSiteVendorLink returns the junction record for the pair, or nil
// when the vendor is not linked to the site.
func findSiteVendorLink(app *pocketbase.PocketBase, siteID, vendorID string) (*core.Record, error) {
	links, err := app.FindRecordsByFilter(
		"site_vendors",
		"site = {:site} && vendor = {:vendor}",
		"", 1, 0,
		map[string]any{"site": siteID, "vendor": vendorID},
	)
	if err != nil || len(links) == 0 {
		return nil, err
	}
	return links[0], nil
}

// HandleVendorLink links a vendor to a site. Linking twice is a no-op.
func HandleVendorLink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		vendorID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}
		if _, err := app.FindRecordById("vendors", vendorID); err != nil {
			return fail(e, http.StatusNotFound, "Vendor not found", err)
		}

		link, err := findSiteVendorLink(app, siteID, vendorID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if link == nil {
			col, err := app.FindCollectionByNameOrId("site_vendors")
			if err != nil {
				return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
			}
			link = core.NewRecord(col)
			link.Set("site", siteID)
			link.Set("vendor", vendorID)
			if err := app.Save(link); err != nil {
				return fail(e, http.StatusInternalServerError, "Could not link vendor", err)
			}
		}

		return ok(e, map[string]any{"site": siteID, "vendor": vendorID, "linked": true})
	}
}

// HandleVendorUnlink removes a vendor's site link. Unlinking an
// unlinked vendor is a no-op; a vendor with purchase orders at the
// site stays linked.
func HandleVendorUnlink(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		vendorID := e.Request.PathValue("id")

		link, err := findSiteVendorLink(app, siteID, vendorID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if link == nil {
			return ok(e, map[string]any{"site": siteID, "vendor": vendorID, "linked": false})
		}

		pos, err := app.FindRecordsByFilter(
			"purchase_orders",
			"site = {:site} && vendor = {:vendor}",
			"", 1, 0,
			map[string]any{"site": siteID, "vendor": vendorID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(pos) > 0 {
			return fail(e, http.StatusConflict, "Vendor has purchase orders at this site and cannot be unlinked", nil)
		}

		if err := app.Delete(link); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not unlink vendor", err)
		}

		return ok(e, map[string]any{"site": siteID, "vendor": vendorID, "linked": false})
	}
}
