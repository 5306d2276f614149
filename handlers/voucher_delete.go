package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleVoucherDelete removes a voucher and rebuilds the running
// balances of every voucher that followed it.
func HandleVoucherDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		voucherID := e.Request.PathValue("id")

		record, err := app.FindRecordById("cash_vouchers", voucherID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Voucher not found", err)
		}
		siteID := record.GetString("site")

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Delete(record); err != nil {
				return err
			}
			return services.RecalculateCashbook(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete voucher", err)
		}

		return ok(e, map[string]string{"deleted": voucherID})
	}
}
