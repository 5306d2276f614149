package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBOQUpdate patches a BOQ header. The owning site never changes.
func HandleBOQUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		record, err := app.FindRecordById("boqs", boqID)
		if err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if _, hit := req["site"]; hit {
			return fail(e, http.StatusBadRequest, "Field site cannot be changed", nil)
		}

		if raw, hit := req["title"]; hit {
			title := strings.TrimSpace(toString(raw))
			if title == "" {
				return fail(e, http.StatusBadRequest, "BOQ title is required", nil)
			}
			dup, _ := app.FindRecordsByFilter(
				"boqs",
				"site = {:site} && title = {:title} && id != {:id}",
				"", 1, 0,
				map[string]any{"site": record.GetString("site"), "title": title, "id": boqID},
			)
			if len(dup) > 0 {
				return fail(e, http.StatusConflict, "A BOQ with this title already exists for this site", nil)
			}
			record.Set("title", title)
		}
		if raw, hit := req["reference_number"]; hit {
			refNumber := strings.TrimSpace(toString(raw))
			if refNumber != "" {
				dup, _ := app.FindRecordsByFilter(
					"boqs",
					"reference_number = {:ref} && id != {:id}",
					"", 1, 0,
					map[string]any{"ref": refNumber, "id": boqID},
				)
				if len(dup) > 0 {
					return fail(e, http.StatusConflict, "A BOQ with this reference number already exists", nil)
				}
			}
			record.Set("reference_number", refNumber)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save BOQ", err)
		}

		return ok(e, boqListItem(app, record))
	}
}
