package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// ApprovalEventItem is one audit row of a document's approval trail.
type ApprovalEventItem struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	Actor      string `json:"actor"`
	ActorName  string `json:"actor_name"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Comment    string `json:"comment"`
	Created    string `json:"created"`
}

// approvalTrail loads the audit rows for one document, oldest first.
func approvalTrail(app *pocketbase.PocketBase, docType, docID string) []ApprovalEventItem {
	records, err := app.FindRecordsByFilter(
		"approval_events",
		"doc_type = {:docType} && doc_id = {:docId}",
		"created", 0, 0,
		map[string]any{"docType": docType, "docId": docID},
	)
	if err != nil {
		log.Printf("approval_trail: could not load events for %s %s: %v", docType, docID, err)
		return nil
	}

	items := make([]ApprovalEventItem, 0, len(records))
	for _, rec := range records {
		item := ApprovalEventItem{
			ID:         rec.Id,
			Action:     rec.GetString("action"),
			Actor:      rec.GetString("actor"),
			FromStatus: rec.GetString("from_status"),
			ToStatus:   rec.GetString("to_status"),
			Comment:    rec.GetString("comment"),
			Created:    rec.GetDateTime("created").String(),
		}
		if item.Actor != "" {
			staff, err := app.FindRecordById("staff", item.Actor)
			if err != nil {
				log.Printf("approval_trail: could not find staff %s: %v", item.Actor, err)
			} else {
				item.ActorName = staff.GetString("name")
			}
		}
		items = append(items, item)
	}
	return items
}

// IndentViewResponse is the full indent detail: header, lines, trail and
// the moves the calling role may make next.
type IndentViewResponse struct {
	IndentListItem
	Items       []IndentItem        `json:"items"`
	Trail       []ApprovalEventItem `json:"trail"`
	NextActions []string            `json:"next_actions"`
}

// HandleIndentView returns one indent with its items and approval trail.
func HandleIndentView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")

		record, err := app.FindRecordById("indents", indentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent not found", err)
		}

		lines, err := app.FindRecordsByFilter(
			"indent_items",
			"indent = {:indent}",
			"sort_order", 0, 0,
			map[string]any{"indent": indentID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load indent items", err)
		}

		resp := IndentViewResponse{
			IndentListItem: indentListItem(app, record),
			Items:          make([]IndentItem, 0, len(lines)),
			Trail:          approvalTrail(app, "indent", indentID),
		}
		for _, line := range lines {
			resp.Items = append(resp.Items, indentItem(app, line))
		}
		if staff := GetStaff(e.Request); staff != nil {
			resp.NextActions = services.NextIndentStatuses(record.GetString("status"), staff.Role)
		}

		return ok(e, resp)
	}
}

// HandleIndentList returns indents for a site, newest first, filterable
// by status.
func HandleIndentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)

		filter := "site = {:site}"
		binds := map[string]any{"site": siteID}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			if !validIndentStatus(status) {
				return fail(e, http.StatusBadRequest, "Invalid status filter", nil)
			}
			filter += " && status = {:status}"
			binds["status"] = status
		}

		records, err := app.FindRecordsByFilter("indents", filter, "-indent_date,-created", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load indents", err)
		}

		items := make([]IndentListItem, 0, len(records))
		for _, rec := range records {
			items = append(items, indentListItem(app, rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

func validIndentStatus(status string) bool {
	for _, s := range services.IndentStatuses {
		if s == status {
			return true
		}
	}
	return false
}
