package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// movePO applies one workflow step to a purchase order. The verb and
// target status come from the verb handler; validity and the role guard
// sit in the workflow service.
func movePO(app *pocketbase.PocketBase, e *core.RequestEvent, action, to string) error {
	staff := GetStaff(e.Request)
	if staff == nil {
		return fail(e, http.StatusUnauthorized, "Missing or invalid API token", nil)
	}

	poID := e.Request.PathValue("id")
	record, err := app.FindRecordById("purchase_orders", poID)
	if err != nil {
		return fail(e, http.StatusNotFound, "Purchase order not found", err)
	}

	var req TransitionRequest
	if err := e.BindBody(&req); err != nil {
		return fail(e, http.StatusBadRequest, "Invalid request body", err)
	}

	from := record.GetString("status")
	if err := services.CanTransitionPO(from, to, staff.Role); err != nil {
		if errors.Is(err, services.ErrRoleNotAllowed) {
			return fail(e, http.StatusForbidden, err.Error(), nil)
		}
		return fail(e, http.StatusConflict, err.Error(), nil)
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		return services.ApplyTransition(txApp, record, "purchase_order", action, to, staff.ID, strings.TrimSpace(req.Comment))
	})
	if err != nil {
		return fail(e, http.StatusInternalServerError, "Could not update purchase order status", err)
	}

	return ok(e, poListItem(app, record))
}

// HandlePOSubmit moves a draft purchase order into the approval queue.
// An order with no lines cannot be submitted.
func HandlePOSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		lines, err := app.FindRecordsByFilter(
			"po_line_items",
			"purchase_order = {:po}",
			"", 1, 0,
			map[string]any{"po": poID},
		)
		if err == nil && len(lines) == 0 {
			return fail(e, http.StatusBadRequest, "Add at least one line item before submitting", nil)
		}
		return movePO(app, e, "submit", "pending_approval")
	}
}

// HandlePOApprove signs off a pending purchase order.
func HandlePOApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return movePO(app, e, "approve", "approved")
	}
}

// HandlePOReject rejects a pending purchase order.
func HandlePOReject(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return movePO(app, e, "reject", "rejected")
	}
}

// HandlePOSend marks an approved purchase order as sent to the vendor.
func HandlePOSend(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return movePO(app, e, "send", "sent")
	}
}

// HandlePOComplete closes a sent purchase order once the material has
// been received.
func HandlePOComplete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return movePO(app, e, "complete", "completed")
	}
}

// HandlePOCancel withdraws a purchase order before it is sent.
func HandlePOCancel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return movePO(app, e, "cancel", "cancelled")
	}
}
