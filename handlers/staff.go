package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// StaffRequest is the JSON body for creating or updating a staff
// identity.
type StaffRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// StaffItem is a staff identity as listed. Tokens never appear in full
// here; APIToken is set only by create and rotate responses.
type StaffItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	TokenHint string `json:"token_hint"`
	APIToken  string `json:"api_token,omitempty"`
	Created   string `json:"created"`
}

func staffItem(rec *core.Record) StaffItem {
	return StaffItem{
		ID:        rec.Id,
		Name:      rec.GetString("name"),
		Role:      rec.GetString("role"),
		Phone:     rec.GetString("phone"),
		TokenHint: tokenHint(rec.GetString("api_token")),
		Created:   rec.GetDateTime("created").String(),
	}
}

// tokenHint keeps the last 4 characters so an admin can match a token
// to its holder without the list ever exposing a usable token.
func tokenHint(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}

func validStaffRole(role string) bool {
	return containsValue(services.StaffRoles, role)
}

// HandleStaffList lists staff identities with masked tokens.
func HandleStaffList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		filter := "id != ''"
		binds := map[string]any{}
		if role := e.Request.URL.Query().Get("role"); role != "" {
			if !validStaffRole(role) {
				return fail(e, http.StatusBadRequest, "Invalid role", nil)
			}
			filter += " && role = {:role}"
			binds["role"] = role
		}

		records, err := app.FindRecordsByFilter("staff", filter, "name", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load staff", err)
		}

		items := make([]StaffItem, 0, len(records))
		for _, rec := range records {
			items = append(items, staffItem(rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

// HandleStaffCreate registers a staff identity and issues its API
// token. The token is returned once in this response and is masked
// everywhere afterwards.
func HandleStaffCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req StaffRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			return fail(e, http.StatusBadRequest, "Name is required", nil)
		}
		if !validStaffRole(req.Role) {
			return fail(e, http.StatusBadRequest, "Role must be one of: "+strings.Join(services.StaffRoles, ", "), nil)
		}
		phone := strings.TrimSpace(req.Phone)
		if phone != "" && !services.ValidatePhone(phone) {
			return fail(e, http.StatusBadRequest, "Invalid phone number", nil)
		}

		col, err := app.FindCollectionByNameOrId("staff")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("name", name)
		record.Set("role", req.Role)
		record.Set("phone", phone)
		record.Set("api_token", uuid.NewString())

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save staff member", err)
		}

		item := staffItem(record)
		item.APIToken = record.GetString("api_token")
		return created(e, item)
	}
}

// HandleStaffUpdate patches a staff identity's name, role or phone.
// Tokens only change through rotation.
func HandleStaffUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		staffID := e.Request.PathValue("id")
		record, err := app.FindRecordById("staff", staffID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Staff member not found", err)
		}

		var body map[string]any
		if err := e.BindBody(&body); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if _, locked := body["api_token"]; locked {
			return fail(e, http.StatusBadRequest, "Field api_token cannot be changed", nil)
		}

		if v, ok := body["name"]; ok {
			name := strings.TrimSpace(toString(v))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Name cannot be empty", nil)
			}
			record.Set("name", name)
		}
		if v, ok := body["role"]; ok {
			role := toString(v)
			if !validStaffRole(role) {
				return fail(e, http.StatusBadRequest, "Role must be one of: "+strings.Join(services.StaffRoles, ", "), nil)
			}
			record.Set("role", role)
		}
		if v, ok := body["phone"]; ok {
			phone := strings.TrimSpace(toString(v))
			if phone != "" && !services.ValidatePhone(phone) {
				return fail(e, http.StatusBadRequest, "Invalid phone number", nil)
			}
			record.Set("phone", phone)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save staff member", err)
		}

		return ok(e, staffItem(record))
	}
}

// HandleStaffTokenRotate replaces a staff member's API token. The old
// token stops working immediately; the new one is returned once.
func HandleStaffTokenRotate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		staffID := e.Request.PathValue("id")
		record, err := app.FindRecordById("staff", staffID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Staff member not found", err)
		}

		record.Set("api_token", uuid.NewString())
		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not rotate token", err)
		}

		item := staffItem(record)
		item.APIToken = record.GetString("api_token")
		return ok(e, item)
	}
}
