package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// editablePO loads a purchase order and checks it is still a draft.
func editablePO(app *pocketbase.PocketBase, e *core.RequestEvent, poID string) (*core.Record, error) {
	record, err := app.FindRecordById("purchase_orders", poID)
	if err != nil {
		return nil, fail(e, http.StatusNotFound, "Purchase order not found", err)
	}
	if !services.POEditable(record.GetString("status")) {
		return nil, fail(e, http.StatusConflict, "Only draft purchase orders can be changed", nil)
	}
	return record, nil
}

// HandlePOUpdate patches a draft purchase order header. The PO number,
// site and status never change through this endpoint; the vendor may be
// swapped as long as the replacement is linked to the site.
func HandlePOUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		record, err := editablePO(app, e, poID)
		if err != nil {
			return err
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		for _, locked := range []string{"po_number", "site", "status", "indent"} {
			if _, hit := req[locked]; hit {
				return fail(e, http.StatusBadRequest, "Field "+locked+" cannot be changed", nil)
			}
		}

		if raw, hit := req["vendor"]; hit {
			vendorID := strings.TrimSpace(toString(raw))
			if _, err := app.FindRecordById("vendors", vendorID); err != nil {
				return fail(e, http.StatusBadRequest, "Unknown vendor", err)
			}
			if !vendorLinkedToSite(app, record.GetString("site"), vendorID) {
				return fail(e, http.StatusBadRequest, "Vendor is not linked to this site", nil)
			}
			record.Set("vendor", vendorID)
		}
		if raw, hit := req["order_date"]; hit {
			orderDate := strings.TrimSpace(toString(raw))
			if _, err := time.Parse("2006-01-02", orderDate); err != nil {
				return fail(e, http.StatusBadRequest, "Order date must be YYYY-MM-DD", nil)
			}
			record.Set("order_date", orderDate)
		}
		for _, field := range []string{"quotation_ref", "payment_terms", "delivery_terms", "warranty_terms"} {
			if raw, hit := req[field]; hit {
				record.Set(field, strings.TrimSpace(toString(raw)))
			}
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save purchase order", err)
		}

		return ok(e, poListItem(app, record))
	}
}
