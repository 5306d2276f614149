package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// IndentItemRequest is the JSON body for adding or patching an indent line.
type IndentItemRequest struct {
	Material   string  `json:"material"`
	Qty        float64 `json:"qty"`
	RequiredBy string  `json:"required_by"`
	Remarks    string  `json:"remarks"`
}

// IndentItem is one requested material line.
type IndentItem struct {
	ID           string  `json:"id"`
	Material     string  `json:"material"`
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	UOM          string  `json:"uom"`
	Qty          float64 `json:"qty"`
	RequiredBy   string  `json:"required_by"`
	Remarks      string  `json:"remarks"`
	SortOrder    float64 `json:"sort_order"`
}

func indentItem(app *pocketbase.PocketBase, rec *core.Record) IndentItem {
	item := IndentItem{
		ID:         rec.Id,
		Material:   rec.GetString("material"),
		Qty:        rec.GetFloat("qty"),
		RequiredBy: rec.GetString("required_by"),
		Remarks:    rec.GetString("remarks"),
		SortOrder:  rec.GetFloat("sort_order"),
	}
	material, err := app.FindRecordById("materials", item.Material)
	if err != nil {
		log.Printf("indent_items: could not find material %s: %v", item.Material, err)
		return item
	}
	item.MaterialCode = material.GetString("code")
	item.MaterialName = material.GetString("name")
	item.UOM = material.GetString("uom")
	return item
}

// editableIndent loads an indent and checks it is still a draft.
func editableIndent(app *pocketbase.PocketBase, e *core.RequestEvent, indentID string) (*core.Record, error) {
	record, err := app.FindRecordById("indents", indentID)
	if err != nil {
		return nil, fail(e, http.StatusNotFound, "Indent not found", err)
	}
	if !services.IndentEditable(record.GetString("status")) {
		return nil, fail(e, http.StatusConflict, "Items can only be changed on draft indents", nil)
	}
	return record, nil
}

// HandleIndentItemAdd appends a material line to a draft indent.
func HandleIndentItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		indentID := e.Request.PathValue("id")
		if _, err := editableIndent(app, e, indentID); err != nil {
			return err
		}

		var req IndentItemRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if _, err := app.FindRecordById("materials", req.Material); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown material", err)
		}
		if req.Qty <= 0 {
			return fail(e, http.StatusBadRequest, "Quantity must be greater than zero", nil)
		}
		requiredBy := strings.TrimSpace(req.RequiredBy)
		if requiredBy != "" {
			if _, err := time.Parse("2006-01-02", requiredBy); err != nil {
				return fail(e, http.StatusBadRequest, "Required-by date must be YYYY-MM-DD", nil)
			}
		}

		siblings, err := app.FindRecordsByFilter(
			"indent_items",
			"indent = {:indent}",
			"-sort_order", 1, 0,
			map[string]any{"indent": indentID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		sortOrder := 1.0
		if len(siblings) > 0 {
			sortOrder = siblings[0].GetFloat("sort_order") + 1
		}

		col, err := app.FindCollectionByNameOrId("indent_items")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("indent", indentID)
		record.Set("material", req.Material)
		record.Set("qty", req.Qty)
		record.Set("required_by", requiredBy)
		record.Set("remarks", strings.TrimSpace(req.Remarks))
		record.Set("sort_order", sortOrder)

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save indent item", err)
		}

		return created(e, indentItem(app, record))
	}
}

// HandleIndentItemUpdate patches a line on a draft indent.
func HandleIndentItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("indent_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent item not found", err)
		}
		if _, err := editableIndent(app, e, record.GetString("indent")); err != nil {
			return err
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["material"]; hit {
			materialID := toString(raw)
			if _, err := app.FindRecordById("materials", materialID); err != nil {
				return fail(e, http.StatusBadRequest, "Unknown material", err)
			}
			record.Set("material", materialID)
		}
		if raw, hit := req["qty"]; hit {
			qty := toFloat(raw)
			if qty <= 0 {
				return fail(e, http.StatusBadRequest, "Quantity must be greater than zero", nil)
			}
			record.Set("qty", qty)
		}
		if raw, hit := req["required_by"]; hit {
			requiredBy := strings.TrimSpace(toString(raw))
			if requiredBy != "" {
				if _, err := time.Parse("2006-01-02", requiredBy); err != nil {
					return fail(e, http.StatusBadRequest, "Required-by date must be YYYY-MM-DD", nil)
				}
			}
			record.Set("required_by", requiredBy)
		}
		if raw, hit := req["remarks"]; hit {
			record.Set("remarks", strings.TrimSpace(toString(raw)))
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save indent item", err)
		}

		return ok(e, indentItem(app, record))
	}
}

// HandleIndentItemDelete removes a line from a draft indent.
func HandleIndentItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("indent_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Indent item not found", err)
		}
		if _, err := editableIndent(app, e, record.GetString("indent")); err != nil {
			return err
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete indent item", err)
		}

		return ok(e, map[string]string{"deleted": itemID})
	}
}
