package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// StockEntryRequest is the JSON body for booking a stock movement.
type StockEntryRequest struct {
	Material  string  `json:"material"`
	EntryDate string  `json:"entry_date"`
	EntryType string  `json:"entry_type"`
	Qty       float64 `json:"qty"`
	Rate      float64 `json:"rate"`
	Reference string  `json:"reference"`
}

// StockEntryItem is one ledger row in responses.
type StockEntryItem struct {
	ID           string  `json:"id"`
	Material     string  `json:"material"`
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	UOM          string  `json:"uom"`
	EntryDate    string  `json:"entry_date"`
	EntryType    string  `json:"entry_type"`
	Qty          float64 `json:"qty"`
	Rate         float64 `json:"rate"`
	Value        float64 `json:"value"`
	Reference    string  `json:"reference"`
	ClosingQty   float64 `json:"closing_qty"`
	ClosingValue float64 `json:"closing_value"`
}

func stockEntryItem(app *pocketbase.PocketBase, rec *core.Record) StockEntryItem {
	item := StockEntryItem{
		ID:           rec.Id,
		Material:     rec.GetString("material"),
		EntryDate:    rec.GetString("entry_date"),
		EntryType:    rec.GetString("entry_type"),
		Qty:          rec.GetFloat("qty"),
		Rate:         rec.GetFloat("rate"),
		Value:        rec.GetFloat("value"),
		Reference:    rec.GetString("reference"),
		ClosingQty:   rec.GetFloat("closing_qty"),
		ClosingValue: rec.GetFloat("closing_value"),
	}
	material, err := app.FindRecordById("materials", item.Material)
	if err != nil {
		log.Printf("stock_entry: could not find material %s: %v", item.Material, err)
		return item
	}
	item.MaterialCode = material.GetString("code")
	item.MaterialName = material.GetString("name")
	item.UOM = material.GetString("uom")
	return item
}

// HandleStockEntryCreate books a receipt, issue or adjustment. The
// site+material ledger is replayed and the site's budgets recomputed in
// the same transaction. An issue that would drive stock negative is
// refused.
func HandleStockEntryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req StockEntryRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		input := services.StockEntryInput{
			SiteID:     siteID,
			MaterialID: req.Material,
			EntryDate:  strings.TrimSpace(req.EntryDate),
			EntryType:  req.EntryType,
			Qty:        req.Qty,
			Rate:       req.Rate,
			Reference:  strings.TrimSpace(req.Reference),
		}
		if err := input.Validate(); err != nil {
			return fail(e, http.StatusBadRequest, err.Error(), nil)
		}
		if _, err := app.FindRecordById("materials", input.MaterialID); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown material", err)
		}

		col, err := app.FindCollectionByNameOrId("stock_entries")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("material", input.MaterialID)
		record.Set("entry_date", input.EntryDate)
		record.Set("entry_type", input.EntryType)
		record.Set("qty", input.Qty)
		record.Set("rate", input.Rate)
		record.Set("reference", input.Reference)

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			if err := services.RecalculateStockLedger(txApp, siteID, input.MaterialID); err != nil {
				return err
			}
			return services.RecalculateBudgets(txApp, siteID)
		})
		if errors.Is(err, services.ErrInsufficientStock) {
			return fail(e, http.StatusConflict, err.Error(), nil)
		}
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save stock entry", err)
		}

		saved, err := app.FindRecordById("stock_entries", record.Id)
		if err != nil {
			saved = record
		}
		return created(e, stockEntryItem(app, saved))
	}
}

// HandleStockEntryDelete removes a ledger row and replays what is left.
// Deleting a receipt that later issues depend on is refused.
func HandleStockEntryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		entryID := e.Request.PathValue("id")

		record, err := app.FindRecordById("stock_entries", entryID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Stock entry not found", err)
		}
		siteID := record.GetString("site")
		materialID := record.GetString("material")

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Delete(record); err != nil {
				return err
			}
			if err := services.RecalculateStockLedger(txApp, siteID, materialID); err != nil {
				return err
			}
			return services.RecalculateBudgets(txApp, siteID)
		})
		if errors.Is(err, services.ErrInsufficientStock) {
			return fail(e, http.StatusConflict, err.Error(), nil)
		}
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete stock entry", err)
		}

		return ok(e, map[string]string{"deleted": entryID})
	}
}
