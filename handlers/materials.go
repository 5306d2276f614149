package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// MaterialItem is one row of the material master.
type MaterialItem struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UOM          string  `json:"uom"`
	HSNCode      string  `json:"hsn_code"`
	GSTPercent   float64 `json:"gst_percent"`
	ReorderLevel float64 `json:"reorder_level"`
}

// MaterialRequest is the JSON body for creating or updating a material.
type MaterialRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UOM          string  `json:"uom"`
	HSNCode      string  `json:"hsn_code"`
	GSTPercent   float64 `json:"gst_percent"`
	ReorderLevel float64 `json:"reorder_level"`
}

func materialItem(rec *core.Record) MaterialItem {
	return MaterialItem{
		ID:           rec.Id,
		Code:         rec.GetString("code"),
		Name:         rec.GetString("name"),
		Category:     rec.GetString("category"),
		UOM:          rec.GetString("uom"),
		HSNCode:      rec.GetString("hsn_code"),
		GSTPercent:   rec.GetFloat("gst_percent"),
		ReorderLevel: rec.GetFloat("reorder_level"),
	}
}

// HandleMaterialList lists materials ordered by code. Supports
// category filter and a q= search over code and name.
func HandleMaterialList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)
		query := e.Request.URL.Query()

		filter := "id != ''"
		bind := map[string]any{}
		if category := query.Get("category"); category != "" {
			if !containsValue(services.MaterialCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid material category", nil)
			}
			filter += " && category = {:category}"
			bind["category"] = category
		}
		if q := strings.TrimSpace(query.Get("q")); q != "" {
			filter += " && (code ~ {:q} || name ~ {:q})"
			bind["q"] = q
		}

		all, err := app.FindRecordsByFilter("materials", filter, "code", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load materials", err)
		}

		page := pageSlice(all, params)
		items := make([]MaterialItem, 0, len(page))
		for _, rec := range page {
			items = append(items, materialItem(rec))
		}

		return ok(e, newListResponse(params, len(all), items))
	}
}

// HandleMaterialCreate adds a material to the master.
func HandleMaterialCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req MaterialRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
		req.Name = strings.TrimSpace(req.Name)
		req.UOM = strings.TrimSpace(req.UOM)
		if req.Code == "" || req.Name == "" || req.UOM == "" {
			return fail(e, http.StatusBadRequest, "Code, name and UOM are required", nil)
		}
		if req.Category != "" && !containsValue(services.MaterialCategories, req.Category) {
			return fail(e, http.StatusBadRequest, "Invalid material category", nil)
		}
		if !services.ValidGSTPercent(req.GSTPercent) {
			return fail(e, http.StatusBadRequest, "GST % must be 0, 5, 12, 18 or 28", nil)
		}
		if req.ReorderLevel < 0 {
			return fail(e, http.StatusBadRequest, "Reorder level cannot be negative", nil)
		}

		dup, _ := app.FindRecordsByFilter(
			"materials", "code = {:code}", "", 1, 0,
			map[string]any{"code": req.Code},
		)
		if len(dup) > 0 {
			return fail(e, http.StatusConflict, "A material with this code already exists", nil)
		}

		col, err := app.FindCollectionByNameOrId("materials")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("code", req.Code)
		record.Set("name", req.Name)
		record.Set("category", req.Category)
		record.Set("uom", req.UOM)
		record.Set("hsn_code", strings.TrimSpace(req.HSNCode))
		record.Set("gst_percent", req.GSTPercent)
		record.Set("reorder_level", req.ReorderLevel)

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save material", err)
		}

		return created(e, materialItem(record))
	}
}

// HandleMaterialUpdate patches a material.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("materials", e.Request.PathValue("id"))
		if err != nil {
			return fail(e, http.StatusNotFound, "Material not found", err)
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
				"materials", "code = {:code} && id != {:id}", "", 1, 0,
				map[string]any{"code": code, "id": record.Id},
			)
			if len(dup) > 0 {
				return fail(e, http.StatusConflict, "A material with this code already exists", nil)
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
			if category != "" && !containsValue(services.MaterialCategories, category) {
				return fail(e, http.StatusBadRequest, "Invalid material category", nil)
			}
			record.Set("category", category)
		}
		if v, has := req["uom"]; has {
			uom := strings.TrimSpace(toString(v))
			if uom == "" {
				return fail(e, http.StatusBadRequest, "UOM cannot be empty", nil)
			}
			record.Set("uom", uom)
		}
		if v, has := req["hsn_code"]; has {
			record.Set("hsn_code", strings.TrimSpace(toString(v)))
		}
		if v, has := req["gst_percent"]; has {
			gst := toFloat(v)
			if !services.ValidGSTPercent(gst) {
				return fail(e, http.StatusBadRequest, "GST % must be 0, 5, 12, 18 or 28", nil)
			}
			record.Set("gst_percent", gst)
		}
		if v, has := req["reorder_level"]; has {
			level := toFloat(v)
			if level < 0 {
				return fail(e, http.StatusBadRequest, "Reorder level cannot be negative", nil)
			}
			record.Set("reorder_level", level)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update material", err)
		}

		return ok(e, materialItem(record))
	}
}

// HandleMaterialDelete removes a material. Materials with stock
// movement are protected; deleting them would orphan the ledger.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		materialID := e.Request.PathValue("id")

		record, err := app.FindRecordById("materials", materialID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Material not found", err)
		}

		entries, err := app.FindRecordsByFilter(
			"stock_entries", "material = {:material}", "", 1, 0,
			map[string]any{"material": materialID},
		)
		if err == nil && len(entries) > 0 {
			return fail(e, http.StatusConflict, "Material has stock movement and cannot be deleted", nil)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete material", err)
		}

		return ok(e, map[string]string{"deleted": materialID})
	}
}
