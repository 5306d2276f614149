package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleVoucherUpdate edits a voucher and rebuilds the site's running
// balances. The voucher number and the site are immutable.
func HandleVoucherUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("cash_vouchers", e.Request.PathValue("id"))
		if err != nil {
			return fail(e, http.StatusNotFound, "Voucher not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if _, has := req["voucher_no"]; has {
			return fail(e, http.StatusBadRequest, "Voucher numbers cannot be changed", nil)
		}
		if _, has := req["site"]; has {
			return fail(e, http.StatusBadRequest, "Vouchers cannot move between sites", nil)
		}

		if v, has := req["voucher_date"]; has {
			record.Set("voucher_date", strings.TrimSpace(toString(v)))
		}
		if v, has := req["type"]; has {
			record.Set("type", toString(v))
		}
		if v, has := req["budget_head"]; has {
			headID := toString(v)
			if _, err := app.FindRecordById("budget_heads", headID); err != nil {
				return fail(e, http.StatusBadRequest, "Unknown budget head", err)
			}
			record.Set("budget_head", headID)
		}
		if v, has := req["particulars"]; has {
			record.Set("particulars", strings.TrimSpace(toString(v)))
		}
		if v, has := req["amount"]; has {
			record.Set("amount", services.Round2(toFloat(v)))
		}
		if v, has := req["payment_mode"]; has {
			record.Set("payment_mode", toString(v))
		}
		if v, has := req["reference"]; has {
			record.Set("reference", strings.TrimSpace(toString(v)))
		}

		input := services.VoucherInput{
			SiteID:      record.GetString("site"),
			VoucherDate: record.GetString("voucher_date"),
			Type:        record.GetString("type"),
			BudgetHead:  record.GetString("budget_head"),
			Particulars: record.GetString("particulars"),
			Amount:      record.GetFloat("amount"),
			PaymentMode: record.GetString("payment_mode"),
			Reference:   record.GetString("reference"),
		}
		if err := input.Validate(); err != nil {
			return fail(e, http.StatusBadRequest, err.Error(), nil)
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			return services.RecalculateCashbook(txApp, record.GetString("site"))
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update voucher", err)
		}

		saved, err := app.FindRecordById("cash_vouchers", record.Id)
		if err != nil {
			saved = record
		}
		return ok(e, voucherItem(app, saved))
	}
}
