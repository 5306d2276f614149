package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleIndentEdit patches a draft indent's date or remarks. Submitted
// indents are frozen; reject or cancel them instead.
func HandleIndentEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")

		record, err := app.FindRecordById("indents", indentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent not found", err)
		}
		if !services.IndentEditable(record.GetString("status")) {
			return fail(e, http.StatusConflict, "Only draft indents can be edited", nil)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		for _, locked := range []string{"indent_no", "site", "status", "requested_by"} {
			if _, hit := req[locked]; hit {
				return fail(e, http.StatusBadRequest, "Only indent_date and remarks can be changed here", nil)
			}
		}

		if raw, hit := req["indent_date"]; hit {
			indentDate := strings.TrimSpace(toString(raw))
			if _, err := time.Parse("2006-01-02", indentDate); err != nil {
				return fail(e, http.StatusBadRequest, "Indent date must be YYYY-MM-DD", nil)
			}
			record.Set("indent_date", indentDate)
		}
		if raw, hit := req["remarks"]; hit {
			record.Set("remarks", strings.TrimSpace(toString(raw)))
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save indent", err)
		}

		return ok(e, indentListItem(app, record))
	}
}

// HandleIndentDelete removes a draft indent and its items. Anything past
// draft stays as an audit record; cancel it instead.
func HandleIndentDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")

		record, err := app.FindRecordById("indents", indentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent not found", err)
		}
		if !services.IndentEditable(record.GetString("status")) {
			return fail(e, http.StatusConflict, "Only draft indents can be deleted. Cancel this one instead.", nil)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete indent", err)
		}

		return ok(e, map[string]string{"deleted": indentID})
	}
}
