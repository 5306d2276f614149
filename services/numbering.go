package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// companyCode prefixes every generated document number.
const companyCode = "SBC"

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()

	startYear := year
	if t.Month() < time.April {
		startYear = year - 1
	}

	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// formatDocNumber constructs a document number from its components.
// Uses "-" as separator so site codes containing "/" cannot break parsing.
func formatDocNumber(series, siteRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("%s-%s-%s-%s-%03d", companyCode, series, siteRef, fiscalYear, sequence)
}

// nextDocNumber creates the next number in a per-site, per-fiscal-year
// series. Format: SBC-{series}-{site_code}-{fy}-{seq}, e.g.
// SBC-CV-KNP01-25-26-007. The sequence restarts every fiscal year.
func nextDocNumber(app core.App, series, collection, numberField, siteID string, now time.Time) (string, error) {
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return "", fmt.Errorf("site not found: %w", err)
	}

	siteRef := site.GetString("site_code")
	if siteRef == "" {
		siteRef = siteID
	}

	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("%s-%s-%s-%s-", companyCode, series, siteRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		collection,
		fmt.Sprintf("site = {:siteId} && %s ~ {:prefix}", numberField),
		"",
		0,
		0,
		map[string]any{
			"siteId": siteID,
			"prefix": prefix + "%",
		},
	)
	if err != nil {
		// collection empty or not yet created, start at 1
		existing = nil
	}

	return formatDocNumber(series, siteRef, fiscalYear, len(existing)+1), nil
}

// GenerateVoucherNumber creates the next cash voucher number for a site.
func GenerateVoucherNumber(app core.App, siteID string, now time.Time) (string, error) {
	return nextDocNumber(app, "CV", "cash_vouchers", "voucher_no", siteID, now)
}

// GenerateIndentNumber creates the next indent number for a site.
func GenerateIndentNumber(app core.App, siteID string, now time.Time) (string, error) {
	return nextDocNumber(app, "IND", "indents", "indent_no", siteID, now)
}

// GeneratePONumber creates the next purchase order number for a site.
func GeneratePONumber(app core.App, siteID string, now time.Time) (string, error) {
	return nextDocNumber(app, "PO", "purchase_orders", "po_number", siteID, now)
}

// assetCategoryCodes maps asset categories to the short code embedded in
// generated asset codes.
var assetCategoryCodes = map[string]string{
	"plant_machinery":   "PM",
	"survey_instrument": "SI",
	"shuttering":        "SH",
	"vehicle":           "VH",
	"it_equipment":      "IT",
	"other":             "OT",
}

// GenerateAssetCode creates the next asset code for a category.
// Format: AST-{category code}-{seq}, e.g. AST-PM-0012. Asset codes are
// company wide, not per site, because assets move between sites.
func GenerateAssetCode(app core.App, category string) (string, error) {
	code, ok := assetCategoryCodes[category]
	if !ok {
		code = "OT"
	}

	prefix := fmt.Sprintf("AST-%s-", code)

	existing, err := app.FindRecordsByFilter(
		"assets",
		"asset_code ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		existing = nil
	}

	return fmt.Sprintf("%s%04d", prefix, len(existing)+1), nil
}
