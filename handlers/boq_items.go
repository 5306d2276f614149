package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// BOQItemRequest is the JSON body for adding a work item to a BOQ.
type BOQItemRequest struct {
	ItemCode     string  `json:"item_code"`
	Description  string  `json:"description"`
	Qty          float64 `json:"qty"`
	UOM          string  `json:"uom"`
	Rate         float64 `json:"rate"`
	BudgetedRate float64 `json:"budgeted_rate"`
	HSNCode      string  `json:"hsn_code"`
	GSTPercent   float64 `json:"gst_percent"`
}

// BOQSubItemRequest is the JSON body for adding a rate analysis
// component under a work item.
type BOQSubItemRequest struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	QtyPerUnit  float64 `json:"qty_per_unit"`
	UOM         string  `json:"uom"`
	Rate        float64 `json:"rate"`
}

func validComponentType(t string) bool {
	for _, v := range services.ComponentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// nextBOQSortOrder returns one past the highest sort_order among the
// children matching the filter.
func nextBOQSortOrder(app *pocketbase.PocketBase, collection, filterField, parentID string) float64 {
	existing, err := app.FindRecordsByFilter(
		collection,
		filterField+" = {:parent}",
		"-sort_order", 1, 0,
		map[string]any{"parent": parentID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetFloat("sort_order") + 1
}

// HandleBOQItemAdd appends a work item to a BOQ.
func HandleBOQItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("boqs", boqID); err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		var req BOQItemRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		description := strings.TrimSpace(req.Description)
		uom := strings.TrimSpace(req.UOM)

		if description == "" {
			return fail(e, http.StatusBadRequest, "Description is required", nil)
		}
		if uom == "" {
			return fail(e, http.StatusBadRequest, "Unit of measure is required", nil)
		}
		if req.Qty <= 0 {
			return fail(e, http.StatusBadRequest, "Quantity must be greater than zero", nil)
		}
		if req.Rate < 0 || req.BudgetedRate < 0 {
			return fail(e, http.StatusBadRequest, "Rates must be zero or greater", nil)
		}
		if req.GSTPercent != 0 && !services.ValidGSTPercent(req.GSTPercent) {
			return fail(e, http.StatusBadRequest, "GST percent must be one of the GST slabs", nil)
		}

		col, err := app.FindCollectionByNameOrId("boq_items")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("boq", boqID)
		record.Set("item_code", strings.TrimSpace(req.ItemCode))
		record.Set("description", description)
		record.Set("qty", req.Qty)
		record.Set("uom", uom)
		record.Set("rate", services.Round2(req.Rate))
		record.Set("budgeted_rate", services.Round2(req.BudgetedRate))
		record.Set("hsn_code", strings.TrimSpace(req.HSNCode))
		record.Set("gst_percent", req.GSTPercent)
		record.Set("sort_order", nextBOQSortOrder(app, "boq_items", "boq", boqID))

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save work item", err)
		}

		return created(e, boqWorkItem(app, record))
	}
}

// HandleBOQItemUpdate patches a work item.
func HandleBOQItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Work item not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["description"]; hit {
			description := strings.TrimSpace(toString(raw))
			if description == "" {
				return fail(e, http.StatusBadRequest, "Description cannot be empty", nil)
			}
			record.Set("description", description)
		}
		if raw, hit := req["item_code"]; hit {
			record.Set("item_code", strings.TrimSpace(toString(raw)))
		}
		if raw, hit := req["uom"]; hit {
			uom := strings.TrimSpace(toString(raw))
			if uom == "" {
				return fail(e, http.StatusBadRequest, "Unit of measure cannot be empty", nil)
			}
			record.Set("uom", uom)
		}
		if raw, hit := req["qty"]; hit {
			qty := toFloat(raw)
			if qty <= 0 {
				return fail(e, http.StatusBadRequest, "Quantity must be greater than zero", nil)
			}
			record.Set("qty", qty)
		}
		if raw, hit := req["rate"]; hit {
			rate := toFloat(raw)
			if rate < 0 {
				return fail(e, http.StatusBadRequest, "Rate must be zero or greater", nil)
			}
			record.Set("rate", services.Round2(rate))
		}
		if raw, hit := req["budgeted_rate"]; hit {
			rate := toFloat(raw)
			if rate < 0 {
				return fail(e, http.StatusBadRequest, "Budgeted rate must be zero or greater", nil)
			}
			record.Set("budgeted_rate", services.Round2(rate))
		}
		if raw, hit := req["hsn_code"]; hit {
			record.Set("hsn_code", strings.TrimSpace(toString(raw)))
		}
		if raw, hit := req["gst_percent"]; hit {
			gst := toFloat(raw)
			if gst != 0 && !services.ValidGSTPercent(gst) {
				return fail(e, http.StatusBadRequest, "GST percent must be one of the GST slabs", nil)
			}
			record.Set("gst_percent", gst)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save work item", err)
		}

		return ok(e, boqWorkItem(app, record))
	}
}

// HandleBOQItemDelete removes a work item and its components.
func HandleBOQItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Work item not found", err)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete work item", err)
		}

		return ok(e, map[string]string{"deleted": itemID})
	}
}

// HandleBOQSubItemAdd appends a rate analysis component to a work item.
func HandleBOQSubItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")
		item, err := app.FindRecordById("boq_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Work item not found", err)
		}

		var req BOQSubItemRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		description := strings.TrimSpace(req.Description)
		uom := strings.TrimSpace(req.UOM)

		if !validComponentType(req.Type) {
			return fail(e, http.StatusBadRequest, "Type must be material, labour or machinery", nil)
		}
		if description == "" {
			return fail(e, http.StatusBadRequest, "Description is required", nil)
		}
		if uom == "" {
			return fail(e, http.StatusBadRequest, "Unit of measure is required", nil)
		}
		if req.QtyPerUnit <= 0 {
			return fail(e, http.StatusBadRequest, "Quantity per unit must be greater than zero", nil)
		}
		if req.Rate < 0 {
			return fail(e, http.StatusBadRequest, "Rate must be zero or greater", nil)
		}

		col, err := app.FindCollectionByNameOrId("boq_sub_items")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("boq_item", item.Id)
		record.Set("type", req.Type)
		record.Set("description", description)
		record.Set("qty_per_unit", req.QtyPerUnit)
		record.Set("uom", uom)
		record.Set("rate", services.Round2(req.Rate))
		record.Set("sort_order", nextBOQSortOrder(app, "boq_sub_items", "boq_item", item.Id))

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save component", err)
		}

		return created(e, boqSubItem(record))
	}
}

// HandleBOQSubItemUpdate patches a rate analysis component.
func HandleBOQSubItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		subID := e.Request.PathValue("subItemId")

		record, err := app.FindRecordById("boq_sub_items", subID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Component not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["type"]; hit {
			t := toString(raw)
			if !validComponentType(t) {
				return fail(e, http.StatusBadRequest, "Type must be material, labour or machinery", nil)
			}
			record.Set("type", t)
		}
		if raw, hit := req["description"]; hit {
			description := strings.TrimSpace(toString(raw))
			if description == "" {
				return fail(e, http.StatusBadRequest, "Description cannot be empty", nil)
			}
			record.Set("description", description)
		}
		if raw, hit := req["uom"]; hit {
			uom := strings.TrimSpace(toString(raw))
			if uom == "" {
				return fail(e, http.StatusBadRequest, "Unit of measure cannot be empty", nil)
			}
			record.Set("uom", uom)
		}
		if raw, hit := req["qty_per_unit"]; hit {
			qty := toFloat(raw)
			if qty <= 0 {
				return fail(e, http.StatusBadRequest, "Quantity per unit must be greater than zero", nil)
			}
			record.Set("qty_per_unit", qty)
		}
		if raw, hit := req["rate"]; hit {
			rate := toFloat(raw)
			if rate < 0 {
				return fail(e, http.StatusBadRequest, "Rate must be zero or greater", nil)
			}
			record.Set("rate", services.Round2(rate))
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save component", err)
		}

		return ok(e, boqSubItem(record))
	}
}

// HandleBOQSubItemDelete removes a rate analysis component.
func HandleBOQSubItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		subID := e.Request.PathValue("subItemId")

		record, err := app.FindRecordById("boq_sub_items", subID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Component not found", err)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete component", err)
		}

		return ok(e, map[string]string{"deleted": subID})
	}
}
