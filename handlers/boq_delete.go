package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBOQDelete removes a BOQ. Work items and their rate analysis
// components cascade with it.
func HandleBOQDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")

		boq, err := app.FindRecordById("boqs", boqID)
		if err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		if err := app.Delete(boq); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete BOQ", err)
		}

		return ok(e, map[string]string{"deleted": boqID})
	}
}
