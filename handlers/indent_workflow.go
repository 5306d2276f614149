package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// TransitionRequest optionally carries a comment for the audit trail.
type TransitionRequest struct {
	Comment string `json:"comment"`
}

// moveIndent applies one workflow step to an indent. The verb and
// target status come from the verb handler; validity and the role
// guard sit in the workflow service.
func moveIndent(app *pocketbase.PocketBase, e *core.RequestEvent, action, to string) error {
	staff := GetStaff(e.Request)
	if staff == nil {
		return fail(e, http.StatusUnauthorized, "Missing or invalid API token", nil)
	}

	indentID := e.Request.PathValue("id")
	record, err := app.FindRecordById("indents", indentID)
	if err != nil {
		return fail(e, http.StatusNotFound, "Indent not found", err)
	}

	var req TransitionRequest
	if err := e.BindBody(&req); err != nil {
		return fail(e, http.StatusBadRequest, "Invalid request body", err)
	}

	from := record.GetString("status")
	if err := services.CanTransitionIndent(from, to, staff.Role); err != nil {
		if errors.Is(err, services.ErrRoleNotAllowed) {
			return fail(e, http.StatusForbidden, err.Error(), nil)
		}
		return fail(e, http.StatusConflict, err.Error(), nil)
	}

	err = app.RunInTransaction(func(txApp core.App) error {
		return services.ApplyTransition(txApp, record, "indent", action, to, staff.ID, strings.TrimSpace(req.Comment))
	})
	if err != nil {
		return fail(e, http.StatusInternalServerError, "Could not update indent status", err)
	}

	return ok(e, indentListItem(app, record))
}

// HandleIndentSubmit moves a draft indent into the approval queue. An
// indent with no items cannot be submitted.
func HandleIndentSubmit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")
		items, err := app.FindRecordsByFilter(
			"indent_items",
			"indent = {:indent}",
			"", 1, 0,
			map[string]any{"indent": indentID},
		)
		if err == nil && len(items) == 0 {
			return fail(e, http.StatusBadRequest, "Add at least one item before submitting", nil)
		}
		return moveIndent(app, e, "submit", "submitted")
	}
}

// HandleIndentApprove advances an indent one approval level: the store
// keeper's site approval first, head office purchase sign-off second.
func HandleIndentApprove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")
		record, err := app.FindRecordById("indents", indentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent not found", err)
		}

		var to string
		switch record.GetString("status") {
		case "submitted":
			to = "site_approved"
		case "site_approved":
			to = "approved"
		default:
			return fail(e, http.StatusConflict, "Indent is not awaiting approval", nil)
		}
		return moveIndent(app, e, "approve", to)
	}
}

// HandleIndentReject rejects an indent at either approval level.
func HandleIndentReject(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return moveIndent(app, e, "reject", "rejected")
	}
}

// HandleIndentCancel withdraws an indent before final approval.
func HandleIndentCancel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return moveIndent(app, e, "cancel", "cancelled")
	}
}
