package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// BudgetHeadItem is one row of the budget head master.
type BudgetHeadItem struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// BudgetHeadRequest is the JSON body for creating or updating a head.
type BudgetHeadRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func budgetHeadItem(rec *core.Record) BudgetHeadItem {
	return BudgetHeadItem{
		ID:       rec.Id,
		Code:     rec.GetString("code"),
		Name:     rec.GetString("name"),
		Category: rec.GetString("category"),
	}
}

// HandleBudgetHeadList lists all budget heads ordered by code. The
// master is small, so it is returned without pagination.
func HandleBudgetHeadList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		bind := map[string]any{}
		if category := e.Request.URL.Query().Get("category"); category != "" {
			if !containsValue(services.BudgetHeadCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid budget head category", nil)
			}
			filter = "category = {:category}"
			bind["category"] = category
		}

		records, err := app.FindRecordsByFilter("budget_heads", filter, "code", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load budget heads", err)
		}

		items := make([]BudgetHeadItem, 0, len(records))
		for _, rec := range records {
			items = append(items, budgetHeadItem(rec))
		}

		return ok(e, map[string]any{"items": items})
	}
}

// HandleBudgetHeadCreate adds a budget head. Codes are unique because
// vouchers reference heads by them in exports.
func HandleBudgetHeadCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req BudgetHeadRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
		req.Name = strings.TrimSpace(req.Name)
		if req.Code == "" || req.Name == "" {
			return fail(e, http.StatusBadRequest, "Code and name are required", nil)
		}
		if !containsValue(services.BudgetHeadCategories, req.Category) {
			return fail(e, http.StatusBadRequest, "Invalid budget head category", nil)
		}

		dup, _ := app.FindRecordsByFilter(
			"budget_heads", "code = {:code}", "", 1, 0,
			map[string]any{"code": req.Code},
		)
		if len(dup) > 0 {
			return fail(e, http.StatusConflict, "A budget head with this code already exists", nil)
		}

		col, err := app.FindCollectionByNameOrId("budget_heads")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("code", req.Code)
		record.Set("name", req.Name)
		record.Set("category", req.Category)

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save budget head", err)
		}

		return created(e, budgetHeadItem(record))
	}
}

// HandleBudgetHeadUpdate renames a head or moves it between categories.
func HandleBudgetHeadUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("budget_heads", e.Request.PathValue("id"))
		if err != nil {
			return fail(e, http.StatusNotFound, "Budget head not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if v, has := req["code"]; has {
			code := strings.ToUpper(strings.TrimSpace(toString(v)))
			if code == "" {
				return fail(e, http.StatusBadRequest, "Code cannot be empty", nil)
			}
			dup, _ := app.FindRecordsByFilter(
				"budget_heads", "code = {:code} && id != {:id}", "", 1, 0,
				map[string]any{"code": code, "id": record.Id},
			)
			if len(dup) > 0 {
				return fail(e, http.StatusConflict, "A budget head with this code already exists", nil)
			}
			record.Set("code", code)
		}
		if v, has := req["name"]; has {
			name := strings.TrimSpace(toString(v))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Name cannot be empty", nil)
			}
			record.Set("name", name)
		}
		if v, has := req["category"]; has {
			category := toString(v)
			if !containsValue(services.BudgetHeadCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid budget head category", nil)
			}
			record.Set("category", category)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update budget head", err)
		}

		return ok(e, budgetHeadItem(record))
	}
}

// HandleBudgetHeadDelete removes a head. Heads referenced by vouchers
// are protected so the cashbook keeps its classification.
func HandleBudgetHeadDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		headID := e.Request.PathValue("id")

		record, err := app.FindRecordById("budget_heads", headID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Budget head not found", err)
		}

		vouchers, err := app.FindRecordsByFilter(
			"cash_vouchers", "budget_head = {:head}", "", 1, 0,
			map[string]any{"head": headID},
		)
		if err == nil && len(vouchers) > 0 {
			return fail(e, http.StatusConflict, "Budget head is used by vouchers and cannot be deleted", nil)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete budget head", err)
		}

		return ok(e, map[string]string{"deleted": headID})
	}
}
