package services

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// ErrInsufficientStock is returned when replaying the ledger finds an
// issue or negative adjustment that would drive closing quantity below
// zero. Callers run the recompute inside the same transaction as the
// mutation, so the offending mutation is rolled back.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockEntryInput is the payload for a stock ledger entry.
type StockEntryInput struct {
	SiteID     string
	MaterialID string
	EntryDate  string
	EntryType  string
	Qty        float64
	Rate       float64
	Reference  string
}

// Validate checks the entry payload. Receipts and issues need a positive
// quantity; adjustments carry a signed quantity and only need to be
// non-zero. Rate is mandatory on receipts because it feeds the weighted
// average valuation.
func (in StockEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SiteID, validation.Required),
		validation.Field(&in.MaterialID, validation.Required),
		validation.Field(&in.EntryDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&in.EntryType, validation.Required, validation.In("receipt", "issue", "adjustment")),
		validation.Field(&in.Qty,
			validation.Required,
			validation.When(in.EntryType != "adjustment", validation.Min(0.001)),
		),
		validation.Field(&in.Rate,
			validation.When(in.EntryType == "receipt", validation.Required, validation.Min(0.01)),
		),
	)
}

// RecalculateStockLedger replays every entry of one site+material pair in
// entry_date then created order. Receipts add qty at their own rate;
// issues consume at the running weighted average rate; adjustments carry
// a signed qty and move stock at the average rate. Each row's value,
// closing_qty and closing_value are written back when changed, rounded to
// 2 decimals. The caller owns the surrounding transaction.
func RecalculateStockLedger(app core.App, siteID, materialID string) error {
	entries, err := app.FindRecordsByFilter(
		"stock_entries",
		"site = {:siteId} && material = {:materialId}",
		"entry_date,created",
		0,
		0,
		map[string]any{"siteId": siteID, "materialId": materialID},
	)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}

	var runQty, runValue float64
	for _, e := range entries {
		qty := e.GetFloat("qty")
		var entryValue float64

		switch e.GetString("entry_type") {
		case "receipt":
			entryValue = Round2(qty * e.GetFloat("rate"))
			runQty += qty
			runValue += entryValue
		case "issue":
			if qty > runQty+0.0001 {
				return fmt.Errorf("%w: issue of %s on %s exceeds available %s",
					ErrInsufficientStock, FormatQty(qty), e.GetString("entry_date"), FormatQty(runQty))
			}
			entryValue = Round2(qty * averageRate(runQty, runValue))
			runQty -= qty
			runValue -= entryValue
		case "adjustment":
			if qty < 0 && -qty > runQty+0.0001 {
				return fmt.Errorf("%w: adjustment of %s on %s exceeds available %s",
					ErrInsufficientStock, FormatQty(qty), e.GetString("entry_date"), FormatQty(runQty))
			}
			entryValue = Round2(qty * averageRate(runQty, runValue))
			runQty += qty
			runValue += entryValue
		}

		runQty = Round2(runQty)
		runValue = Round2(runValue)
		if runQty == 0 {
			// drop residual paise so a fully issued material values at zero
			runValue = 0
		}

		changed := e.GetFloat("value") != entryValue ||
			e.GetFloat("closing_qty") != runQty ||
			e.GetFloat("closing_value") != runValue
		if changed {
			e.Set("value", entryValue)
			e.Set("closing_qty", runQty)
			e.Set("closing_value", runValue)
			if err := app.Save(e); err != nil {
				return fmt.Errorf("save stock entry: %w", err)
			}
		}
	}

	return nil
}

// RecalculateSiteStock replays the ledger of every material with entries
// at a site. The caller owns the surrounding transaction.
func RecalculateSiteStock(app core.App, siteID string) error {
	entries, err := app.FindRecordsByFilter(
		"stock_entries",
		"site = {:siteId}",
		"",
		0,
		0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return fmt.Errorf("load stock entries: %w", err)
	}

	seen := map[string]bool{}
	for _, e := range entries {
		materialID := e.GetString("material")
		if seen[materialID] {
			continue
		}
		seen[materialID] = true
		if err := RecalculateStockLedger(app, siteID, materialID); err != nil {
			return err
		}
	}

	return nil
}

// averageRate returns the current weighted average rate, zero when no
// stock is held.
func averageRate(qty, value float64) float64 {
	if qty <= 0 {
		return 0
	}
	return value / qty
}

// StockSummaryRow is one material's closing position at a site.
type StockSummaryRow struct {
	MaterialID   string  `db:"material_id" json:"material_id"`
	MaterialCode string  `db:"material_code" json:"material_code"`
	MaterialName string  `db:"material_name" json:"material_name"`
	UOM          string  `db:"uom" json:"uom"`
	ReorderLevel float64 `db:"reorder_level" json:"reorder_level"`
	ClosingQty   float64 `db:"closing_qty" json:"closing_qty"`
	ClosingValue float64 `db:"closing_value" json:"closing_value"`
}

// GetStockSummary returns the per-material closing stock of a site via a
// single grouped SQL pass over the ledger.
func GetStockSummary(app core.App, siteID string) ([]StockSummaryRow, error) {
	rows := []StockSummaryRow{}

	err := app.DB().NewQuery(`
		SELECT
			m.id AS material_id,
			m.code AS material_code,
			m.name AS material_name,
			m.uom AS uom,
			m.reorder_level AS reorder_level,
			COALESCE(SUM(CASE s.entry_type
				WHEN 'receipt' THEN s.qty
				WHEN 'adjustment' THEN s.qty
				ELSE -s.qty END), 0) AS closing_qty,
			COALESCE(SUM(CASE s.entry_type
				WHEN 'receipt' THEN s.value
				WHEN 'adjustment' THEN s.value
				ELSE -s.value END), 0) AS closing_value
		FROM stock_entries s
		JOIN materials m ON m.id = s.material
		WHERE s.site = {:site}
		GROUP BY m.id, m.code, m.name, m.uom, m.reorder_level
		ORDER BY m.name
	`).Bind(dbx.Params{"site": siteID}).All(&rows)
	if err != nil {
		return nil, fmt.Errorf("stock summary query: %w", err)
	}

	for i := range rows {
		rows[i].ClosingQty = Round2(rows[i].ClosingQty)
		rows[i].ClosingValue = Round2(rows[i].ClosingValue)
	}

	return rows, nil
}
