package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePODelete removes a draft or cancelled purchase order together
// with its line items. Anything further along the workflow stays as an
// audit record.
func HandlePODelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")

		po, err := app.FindRecordById("purchase_orders", poID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Purchase order not found", err)
		}

		switch po.GetString("status") {
		case "draft", "cancelled":
		default:
			return fail(e, http.StatusConflict, "Only draft or cancelled purchase orders can be deleted", nil)
		}

		if err := app.Delete(po); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete purchase order", err)
		}

		return ok(e, map[string]string{"deleted": poID})
	}
}
