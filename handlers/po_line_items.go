package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// POLineItemRequest is the JSON body for adding a line to a draft PO.
// When a material is given, description, hsn_code, uom and gst_percent
// default from the item master.
type POLineItemRequest struct {
	Material    string  `json:"material"`
	Description string  `json:"description"`
	HSNCode     string  `json:"hsn_code"`
	Qty         float64 `json:"qty"`
	UOM         string  `json:"uom"`
	Rate        float64 `json:"rate"`
	GSTPercent  float64 `json:"gst_percent"`
}

// POLineItem is one order line with its calculated amounts.
type POLineItem struct {
	ID           string  `json:"id"`
	Material     string  `json:"material"`
	MaterialCode string  `json:"material_code"`
	Description  string  `json:"description"`
	HSNCode      string  `json:"hsn_code"`
	Qty          float64 `json:"qty"`
	UOM          string  `json:"uom"`
	Rate         float64 `json:"rate"`
	TaxableValue float64 `json:"taxable_value"`
	GSTPercent   float64 `json:"gst_percent"`
	GSTAmount    float64 `json:"gst_amount"`
	Total        float64 `json:"total"`
	SortOrder    float64 `json:"sort_order"`
}

func poLineItem(app *pocketbase.PocketBase, rec *core.Record) POLineItem {
	calc := services.CalcLineItem(rec.GetFloat("rate"), rec.GetFloat("qty"), rec.GetFloat("gst_percent"))
	item := POLineItem{
		ID:           rec.Id,
		Material:     rec.GetString("material"),
		Description:  rec.GetString("description"),
		HSNCode:      rec.GetString("hsn_code"),
		Qty:          calc.Qty,
		UOM:          rec.GetString("uom"),
		Rate:         calc.Rate,
		TaxableValue: calc.TaxableValue,
		GSTPercent:   calc.GSTPercent,
		GSTAmount:    calc.GSTAmount,
		Total:        calc.Total,
		SortOrder:    rec.GetFloat("sort_order"),
	}
	if item.Material != "" {
		material, err := app.FindRecordById("materials", item.Material)
		if err != nil {
			log.Printf("po_line_items: could not find material %s: %v", item.Material, err)
		} else {
			item.MaterialCode = material.GetString("code")
		}
	}
	return item
}

// nextPOSortOrder returns one past the highest sort_order on the PO.
func nextPOSortOrder(app *pocketbase.PocketBase, poID string) float64 {
	existing, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:po}",
		"-sort_order", 1, 0,
		map[string]any{"po": poID},
	)
	if err != nil || len(existing) == 0 {
		return 1
	}
	return existing[0].GetFloat("sort_order") + 1
}

// HandlePOLineItemAdd appends a manual line to a draft purchase order.
func HandlePOLineItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		if _, err := editablePO(app, e, poID); err != nil {
			return err
		}

		var req POLineItemRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		description := strings.TrimSpace(req.Description)
		hsnCode := strings.TrimSpace(req.HSNCode)
		uom := strings.TrimSpace(req.UOM)
		gstPercent := req.GSTPercent

		materialID := strings.TrimSpace(req.Material)
		if materialID != "" {
			material, err := app.FindRecordById("materials", materialID)
			if err != nil {
				return fail(e, http.StatusBadRequest, "Unknown material", err)
			}
			if description == "" {
				description = material.GetString("name")
			}
			if hsnCode == "" {
				hsnCode = material.GetString("hsn_code")
			}
			if uom == "" {
				uom = material.GetString("uom")
			}
			if gstPercent == 0 {
				gstPercent = material.GetFloat("gst_percent")
			}
		}

		if description == "" {
			return fail(e, http.StatusBadRequest, "Description is required", nil)
		}
		if uom == "" {
			return fail(e, http.StatusBadRequest, "Unit of measure is required", nil)
		}
		if req.Qty <= 0 {
			return fail(e, http.StatusBadRequest, "Quantity must be greater than zero", nil)
		}
		if req.Rate < 0 {
			return fail(e, http.StatusBadRequest, "Rate must be zero or greater", nil)
		}
		if !services.ValidGSTPercent(gstPercent) {
			return fail(e, http.StatusBadRequest, "GST percent must be one of the GST slabs", nil)
		}

		col, err := app.FindCollectionByNameOrId("po_line_items")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("purchase_order", poID)
		record.Set("material", materialID)
		record.Set("description", description)
		record.Set("hsn_code", hsnCode)
		record.Set("qty", req.Qty)
		record.Set("uom", uom)
		record.Set("rate", services.Round2(req.Rate))
		record.Set("gst_percent", gstPercent)
		record.Set("sort_order", nextPOSortOrder(app, poID))

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save line item", err)
		}

		return created(e, poLineItem(app, record))
	}
}

// HandlePOLineItemsFromIndent copies every line of the PO's source indent
// onto the order. Lines land unpriced; the purchase team fills in the
// negotiated rates afterwards.
func HandlePOLineItemsFromIndent(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")
		po, err := editablePO(app, e, poID)
		if err != nil {
			return err
		}

		indentID := po.GetString("indent")
		if indentID == "" {
			return fail(e, http.StatusBadRequest, "Purchase order has no source indent", nil)
		}
		indent, err := app.FindRecordById("indents", indentID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load source indent", err)
		}
		if indent.GetString("status") != "approved" {
			return fail(e, http.StatusConflict, "Source indent is not approved", nil)
		}

		indentItems, err := app.FindRecordsByFilter(
			"indent_items",
			"indent = {:indent}",
			"sort_order", 0, 0,
			map[string]any{"indent": indentID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load indent items", err)
		}
		if len(indentItems) == 0 {
			return fail(e, http.StatusBadRequest, "Source indent has no items", nil)
		}

		col, err := app.FindCollectionByNameOrId("po_line_items")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		sortOrder := nextPOSortOrder(app, poID)
		var added []*core.Record

		err = app.RunInTransaction(func(txApp core.App) error {
			for _, line := range indentItems {
				materialID := line.GetString("material")
				material, err := txApp.FindRecordById("materials", materialID)
				if err != nil {
					return err
				}

				record := core.NewRecord(col)
				record.Set("purchase_order", poID)
				record.Set("material", materialID)
				record.Set("description", material.GetString("name"))
				record.Set("hsn_code", material.GetString("hsn_code"))
				record.Set("qty", line.GetFloat("qty"))
				record.Set("uom", material.GetString("uom"))
				record.Set("rate", 0)
				record.Set("gst_percent", material.GetFloat("gst_percent"))
				record.Set("sort_order", sortOrder)
				sortOrder++

				if err := txApp.Save(record); err != nil {
					return err
				}
				added = append(added, record)
			}
			return nil
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not copy indent items", err)
		}

		items := make([]POLineItem, 0, len(added))
		for _, rec := range added {
			items = append(items, poLineItem(app, rec))
		}
		return created(e, map[string]any{"items": items})
	}
}

// HandlePOLineItemUpdate patches a line on a draft purchase order.
func HandlePOLineItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("po_line_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Line item not found", err)
		}
		if _, err := editablePO(app, e, record.GetString("purchase_order")); err != nil {
			return err
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["material"]; hit {
			materialID := strings.TrimSpace(toString(raw))
			if materialID != "" {
				if _, err := app.FindRecordById("materials", materialID); err != nil {
					return fail(e, http.StatusBadRequest, "Unknown material", err)
				}
			}
			record.Set("material", materialID)
		}
		if raw, hit := req["description"]; hit {
			description := strings.TrimSpace(toString(raw))
			if description == "" {
				return fail(e, http.StatusBadRequest, "Description cannot be empty", nil)
			}
			record.Set("description", description)
		}
		if raw, hit := req["hsn_code"]; hit {
			record.Set("hsn_code", strings.TrimSpace(toString(raw)))
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
		if raw, hit := req["gst_percent"]; hit {
			gst := toFloat(raw)
			if !services.ValidGSTPercent(gst) {
				return fail(e, http.StatusBadRequest, "GST percent must be one of the GST slabs", nil)
			}
			record.Set("gst_percent", gst)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save line item", err)
		}

		return ok(e, poLineItem(app, record))
	}
}

// HandlePOLineItemDelete removes a line from a draft purchase order.
func HandlePOLineItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("po_line_items", itemID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Line item not found", err)
		}
		if _, err := editablePO(app, e, record.GetString("purchase_order")); err != nil {
			return err
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete line item", err)
		}

		return ok(e, map[string]string{"deleted": itemID})
	}
}
