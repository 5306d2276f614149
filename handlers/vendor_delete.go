package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleVendorDelete removes a vendor from the directory. Vendors with
// purchase orders stay; their paper trail outlives the relationship.
func HandleVendorDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		vendorID := e.Request.PathValue("id")

		vendor, err := app.FindRecordById("vendors", vendorID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Vendor not found", err)
		}

		pos, err := app.FindRecordsByFilter(
			"purchase_orders",
			"vendor = {:vendor}",
			"", 1, 0,
			map[string]any{"vendor": vendorID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(pos) > 0 {
			return fail(e, http.StatusConflict, "Vendor has purchase orders and cannot be deleted", nil)
		}

		// site links cascade with the vendor
		if err := app.Delete(vendor); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete vendor", err)
		}

		return ok(e, map[string]string{"deleted": vendorID})
	}
}
