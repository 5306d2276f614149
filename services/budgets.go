package services

import (
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// Budget alert levels, ordered by severity.
const (
	AlertNone     = "none"
	AlertWatch50  = "watch_50"
	AlertWarn75   = "warn_75"
	AlertExceeded = "exceeded"
)

// AlertLevelFor maps a consumption ratio (fraction, 0.5 = 50%) to an
// alert level. Thresholds are inclusive.
func AlertLevelFor(ratio float64) string {
	switch {
	case ratio >= 1.0:
		return AlertExceeded
	case ratio >= 0.75:
		return AlertWarn75
	case ratio >= 0.5:
		return AlertWatch50
	default:
		return AlertNone
	}
}

// ConsumptionRatio returns the worse of quantity and value consumption.
// A zero budget on either axis skips that axis rather than dividing by
// zero.
func ConsumptionRatio(consumedQty, budgetQty, consumedValue, budgetValue float64) float64 {
	var ratio float64
	if budgetQty > 0 {
		ratio = consumedQty / budgetQty
	}
	if budgetValue > 0 {
		if vr := consumedValue / budgetValue; vr > ratio {
			ratio = vr
		}
	}
	return ratio
}

// RecalculateBudgets re-aggregates consumption for every budget row of a
// site from the stock ledger's issues and refreshes the alert level.
// Issues consume quantity and value; receipts and adjustments do not
// touch budgets. Rows are written back only when a figure changed. The
// caller owns the surrounding transaction.
func RecalculateBudgets(app core.App, siteID string) error {
	budgets, err := app.FindRecordsByFilter(
		"site_budgets",
		"site = {:siteId}",
		"",
		0,
		0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return fmt.Errorf("load site budgets: %w", err)
	}

	for _, b := range budgets {
		var consumed struct {
			Qty   float64 `db:"qty"`
			Value float64 `db:"value"`
		}
		err := app.DB().NewQuery(`
			SELECT
				COALESCE(SUM(qty), 0) AS qty,
				COALESCE(SUM(value), 0) AS value
			FROM stock_entries
			WHERE site = {:site} AND material = {:material} AND entry_type = 'issue'
		`).Bind(dbx.Params{
			"site":     siteID,
			"material": b.GetString("material"),
		}).One(&consumed)
		if err != nil {
			return fmt.Errorf("aggregate consumption: %w", err)
		}

		consumedQty := Round2(consumed.Qty)
		consumedValue := Round2(consumed.Value)
		ratio := ConsumptionRatio(
			consumedQty, b.GetFloat("budget_qty"),
			consumedValue, b.GetFloat("budget_value"),
		)
		level := AlertLevelFor(ratio)

		changed := b.GetFloat("consumed_qty") != consumedQty ||
			b.GetFloat("consumed_value") != consumedValue ||
			b.GetString("alert_level") != level
		if changed {
			b.Set("consumed_qty", consumedQty)
			b.Set("consumed_value", consumedValue)
			b.Set("alert_level", level)
			if err := app.Save(b); err != nil {
				return fmt.Errorf("save site budget: %w", err)
			}
		}
	}

	return nil
}

// BudgetAlert is one budget row that crossed a threshold.
type BudgetAlert struct {
	BudgetID      string  `json:"budget_id"`
	MaterialID    string  `json:"material_id"`
	MaterialName  string  `json:"material_name"`
	UOM           string  `json:"uom"`
	BudgetQty     float64 `json:"budget_qty"`
	ConsumedQty   float64 `json:"consumed_qty"`
	BudgetValue   float64 `json:"budget_value"`
	ConsumedValue float64 `json:"consumed_value"`
	AlertLevel    string  `json:"alert_level"`
}

// ListBudgetAlerts returns the budget rows of a site sitting at watch_50
// or above, most severe first.
func ListBudgetAlerts(app core.App, siteID string) ([]BudgetAlert, error) {
	budgets, err := app.FindRecordsByFilter(
		"site_budgets",
		"site = {:siteId} && alert_level != 'none'",
		"-alert_level",
		0,
		0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}

	severity := map[string]int{AlertExceeded: 0, AlertWarn75: 1, AlertWatch50: 2}

	alerts := make([]BudgetAlert, 0, len(budgets))
	for _, b := range budgets {
		alert := BudgetAlert{
			BudgetID:      b.Id,
			MaterialID:    b.GetString("material"),
			BudgetQty:     b.GetFloat("budget_qty"),
			ConsumedQty:   b.GetFloat("consumed_qty"),
			BudgetValue:   b.GetFloat("budget_value"),
			ConsumedValue: b.GetFloat("consumed_value"),
			AlertLevel:    b.GetString("alert_level"),
		}
		if material, err := app.FindRecordById("materials", alert.MaterialID); err == nil {
			alert.MaterialName = material.GetString("name")
			alert.UOM = material.GetString("uom")
		}
		alerts = append(alerts, alert)
	}

	// alphabetical sort on alert_level is not severity order, fix up here
	for i := 1; i < len(alerts); i++ {
		for j := i; j > 0 && severity[alerts[j].AlertLevel] < severity[alerts[j-1].AlertLevel]; j-- {
			alerts[j], alerts[j-1] = alerts[j-1], alerts[j]
		}
	}

	return alerts, nil
}
