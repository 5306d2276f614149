package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// SiteBudgetItem is one material budget row of a site.
type SiteBudgetItem struct {
	ID            string  `json:"id"`
	MaterialID    string  `json:"material"`
	MaterialCode  string  `json:"material_code"`
	MaterialName  string  `json:"material_name"`
	UOM           string  `json:"uom"`
	BudgetQty     float64 `json:"budget_qty"`
	BudgetValue   float64 `json:"budget_value"`
	ConsumedQty   float64 `json:"consumed_qty"`
	ConsumedValue float64 `json:"consumed_value"`
	AlertLevel    string  `json:"alert_level"`
}

// SiteBudgetRequest is the JSON body for creating or updating a budget
// row.
type SiteBudgetRequest struct {
	Material    string  `json:"material"`
	BudgetQty   float64 `json:"budget_qty"`
	BudgetValue float64 `json:"budget_value"`
}

func siteBudgetItem(app *pocketbase.PocketBase, rec *core.Record) SiteBudgetItem {
	item := SiteBudgetItem{
		ID:            rec.Id,
		MaterialID:    rec.GetString("material"),
		BudgetQty:     rec.GetFloat("budget_qty"),
		BudgetValue:   rec.GetFloat("budget_value"),
		ConsumedQty:   rec.GetFloat("consumed_qty"),
		ConsumedValue: rec.GetFloat("consumed_value"),
		AlertLevel:    rec.GetString("alert_level"),
	}
	if item.AlertLevel == "" {
		item.AlertLevel = services.AlertNone
	}
	material, err := app.FindRecordById("materials", item.MaterialID)
	if err != nil {
		log.Printf("site_budgets: could not find material %s: %v", item.MaterialID, err)
		return item
	}
	item.MaterialCode = material.GetString("code")
	item.MaterialName = material.GetString("name")
	item.UOM = material.GetString("uom")
	return item
}

// HandleSiteBudgetList lists a site's material budgets with consumption
// and alert levels, optionally only rows at or above a threshold.
func HandleSiteBudgetList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		filter := "site = {:siteId}"
		bind := map[string]any{"siteId": siteID}
		if level := e.Request.URL.Query().Get("alert_level"); level != "" {
			if !containsValue(services.BudgetAlertLevels, level) {
				return fail(e, http.StatusBadRequest, "Invalid alert level", nil)
			}
			filter += " && alert_level = {:level}"
			bind["level"] = level
		}

		records, err := app.FindRecordsByFilter("site_budgets", filter, "created", 0, 0, bind)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load budgets", err)
		}

		items := make([]SiteBudgetItem, 0, len(records))
		for _, rec := range records {
			items = append(items, siteBudgetItem(app, rec))
		}

		return ok(e, map[string]any{"items": items})
	}
}

// HandleSiteBudgetCreate adds a material budget to a site. One row per
// material; consumption is derived, never supplied.
func HandleSiteBudgetCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req SiteBudgetRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if req.Material == "" {
			return fail(e, http.StatusBadRequest, "Material is required", nil)
		}
		if _, err := app.FindRecordById("materials", req.Material); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown material", err)
		}
		if req.BudgetQty < 0 || req.BudgetValue < 0 {
			return fail(e, http.StatusBadRequest, "Budget figures cannot be negative", nil)
		}
		if req.BudgetQty == 0 && req.BudgetValue == 0 {
			return fail(e, http.StatusBadRequest, "Set a quantity budget, a value budget, or both", nil)
		}

		dup, _ := app.FindRecordsByFilter(
			"site_budgets",
			"site = {:siteId} && material = {:material}",
			"", 1, 0,
			map[string]any{"siteId": siteID, "material": req.Material},
		)
		if len(dup) > 0 {
			return fail(e, http.StatusConflict, "This site already budgets this material", nil)
		}

		col, err := app.FindCollectionByNameOrId("site_budgets")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("material", req.Material)
		record.Set("budget_qty", req.BudgetQty)
		record.Set("budget_value", services.Round2(req.BudgetValue))
		record.Set("alert_level", services.AlertNone)

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			return services.RecalculateBudgets(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save budget", err)
		}

		saved, err := app.FindRecordById("site_budgets", record.Id)
		if err != nil {
			saved = record
		}
		return created(e, siteBudgetItem(app, saved))
	}
}

// HandleSiteBudgetUpdate changes the budgeted figures of a row. The
// alert level is recomputed against existing consumption.
func HandleSiteBudgetUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("site_budgets", e.Request.PathValue("id"))
		if err != nil {
			return fail(e, http.StatusNotFound, "Budget not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		for _, locked := range []string{"material", "site", "consumed_qty", "consumed_value", "alert_level"} {
			if _, has := req[locked]; has {
				return fail(e, http.StatusBadRequest, "Only budget_qty and budget_value can be changed", nil)
			}
		}

		if v, has := req["budget_qty"]; has {
			qty := toFloat(v)
			if qty < 0 {
				return fail(e, http.StatusBadRequest, "Budget figures cannot be negative", nil)
			}
			record.Set("budget_qty", qty)
		}
		if v, has := req["budget_value"]; has {
			value := toFloat(v)
			if value < 0 {
				return fail(e, http.StatusBadRequest, "Budget figures cannot be negative", nil)
			}
			record.Set("budget_value", services.Round2(value))
		}

		siteID := record.GetString("site")
		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			return services.RecalculateBudgets(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not update budget", err)
		}

		saved, err := app.FindRecordById("site_budgets", record.Id)
		if err != nil {
			saved = record
		}
		return ok(e, siteBudgetItem(app, saved))
	}
}

// HandleSiteBudgetDelete removes a budget row. Stock keeps flowing
// without it; only the alerting stops.
func HandleSiteBudgetDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		budgetID := e.Request.PathValue("id")

		record, err := app.FindRecordById("site_budgets", budgetID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Budget not found", err)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete budget", err)
		}

		return ok(e, map[string]string{"deleted": budgetID})
	}
}

// HandleSiteBudgetAlerts returns the rows that crossed a threshold,
// most severe first.
func HandleSiteBudgetAlerts(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		alerts, err := services.ListBudgetAlerts(app, siteID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load alerts", err)
		}

		return ok(e, map[string]any{"items": alerts})
	}
}

// HandleSiteBudgetRecalculate recomputes consumption and alert levels
// for every budget row of a site.
func HandleSiteBudgetRecalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		err := app.RunInTransaction(func(txApp core.App) error {
			return services.RecalculateBudgets(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not recalculate budgets", err)
		}

		return ok(e, map[string]string{"recalculated": siteID})
	}
}
