package handlers

import (
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// cashbookResponse is the cashbook page plus period totals.
type cashbookResponse struct {
	listResponse
	Totals services.CashbookTotals `json:"totals"`
}

// parseDateRange validates optional from/to query params (YYYY-MM-DD).
func parseDateRange(e *core.RequestEvent) (from, to string, err error) {
	query := e.Request.URL.Query()
	from = query.Get("from")
	to = query.Get("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, perr := time.Parse("2006-01-02", d); perr != nil {
			return "", "", perr
		}
	}
	return from, to, nil
}

// HandleCashbookList lists a site's vouchers in ledger order with the
// period totals. Optional filters: from, to, type, budget_head.
func HandleCashbookList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)
		from, to, err := parseDateRange(e)
		if err != nil {
			return fail(e, http.StatusBadRequest, "Dates must be YYYY-MM-DD", err)
		}

		filter := "site = {:siteId}"
		bind := map[string]any{"siteId": siteID}
		if from != "" {
			filter += " && voucher_date >= {:from}"
			bind["from"] = from
		}
		if to != "" {
			filter += " && voucher_date <= {:to}"
			bind["to"] = to
		}
		if vtype := e.Request.URL.Query().Get("type"); vtype != "" {
			if !containsValue(services.VoucherTypes, vtype) {
				return fail(e, http.StatusBadRequest, "Invalid voucher type", nil)
			}
			filter += " && type = {:vtype}"
			bind["vtype"] = vtype
		}
		if head := e.Request.URL.Query().Get("budget_head"); head != "" {
			filter += " && budget_head = {:head}"
			bind["head"] = head
		}

		all, err := app.FindRecordsByFilter("cash_vouchers", filter, "voucher_date,created", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load cashbook", err)
		}

		page := pageSlice(all, params)
		items := make([]VoucherItem, 0, len(page))
		for _, rec := range page {
			items = append(items, voucherItem(app, rec))
		}

		totals, err := services.GetCashbookTotals(app, siteID, from, to)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not compute totals", err)
		}

		return ok(e, cashbookResponse{
			listResponse: newListResponse(params, len(all), items),
			Totals:       totals,
		})
	}
}

// HandleCashbookTotals returns only the period totals of a cashbook.
func HandleCashbookTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		from, to, err := parseDateRange(e)
		if err != nil {
			return fail(e, http.StatusBadRequest, "Dates must be YYYY-MM-DD", err)
		}

		totals, err := services.GetCashbookTotals(app, siteID, from, to)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not compute totals", err)
		}

		return ok(e, totals)
	}
}

// HandleCashbookRecalculate rebuilds a site's running balances on
// demand. Normally every write does this already; the endpoint exists
// for recovery after manual database edits.
func HandleCashbookRecalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		err := app.RunInTransaction(func(txApp core.App) error {
			return services.RecalculateCashbook(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not recalculate cashbook", err)
		}

		return ok(e, map[string]string{"recalculated": siteID})
	}
}
