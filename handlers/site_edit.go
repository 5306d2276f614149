package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleSiteUpdate patches a site. Only fields present in the body are
// touched. A changed opening balance shifts every running balance, so
// the cashbook is recomputed in the same transaction.
func HandleSiteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("id")

		record, err := app.FindRecordById("sites", siteID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		openingChanged := false

		if v, has := req["name"]; has {
			name := strings.TrimSpace(toString(v))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Site name cannot be empty", nil)
			}
			dup, _ := app.FindRecordsByFilter(
				"sites",
				"name = {:name} && id != {:id}",
				"", 1, 0,
				map[string]any{"name": name, "id": siteID},
			)
			if len(dup) > 0 {
				return fail(e, http.StatusConflict, "A site with this name already exists", nil)
			}
			record.Set("name", name)
		}
		if v, has := req["client_name"]; has {
			record.Set("client_name", strings.TrimSpace(toString(v)))
		}
		if v, has := req["site_code"]; has {
			record.Set("site_code", strings.ToUpper(strings.TrimSpace(toString(v))))
		}
		if v, has := req["city"]; has {
			record.Set("city", strings.TrimSpace(toString(v)))
		}
		if v, has := req["state"]; has {
			record.Set("state", strings.TrimSpace(toString(v)))
		}
		if v, has := req["status"]; has {
			status := toString(v)
			if !containsValue(services.SiteStatuses, status) {
				return fail(e, http.StatusBadRequest, "Invalid site status", nil)
			}
			record.Set("status", status)
		}
		if v, has := req["opening_cash_balance"]; has {
			record.Set("opening_cash_balance", services.Round2(toFloat(v)))
			openingChanged = true
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			if openingChanged {
				return services.RecalculateCashbook(txApp, siteID)
			}
			return nil
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update site", err)
		}

		return ok(e, siteListItem(record))
	}
}

// toString coerces a decoded JSON value to a string.
func toString(v any) string {
	s, _ := v.(string)
	return s
}

// toFloat coerces a decoded JSON value to a float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

// toBool coerces a decoded JSON value to a bool.
func toBool(v any) bool {
	b, _ := v.(bool)
	return b
}
