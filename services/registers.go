package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// RegisterColumn defines one column of a tabular register. Width is the
// Excel column width; Span is the column's share of the 12-unit PDF grid,
// columns with Span 0 are left out of PDFs.
type RegisterColumn struct {
	Header string
	Key    string
	Width  float64
	Span   int
	Align  string // left, right or center; defaults to left
}

// RegisterRow maps column keys to display values. Values are
// pre-formatted by the builders so both renderers stay dumb.
type RegisterRow map[string]string

// RegisterSummary is one label/value line below the data rows.
type RegisterSummary struct {
	Label string
	Value string
}

// RegisterSheet is a renderer-independent tabular register. The same
// sheet feeds the Excel and the PDF generator.
type RegisterSheet struct {
	Title    string
	Subtitle string
	Columns  []RegisterColumn
	Rows     []RegisterRow
	Summary  []RegisterSummary
}

// BuildCashbookRegister assembles a site's cashbook as a register.
// Empty fromDate/toDate skip the respective bound. Vouchers appear in
// replay order so the running balance column reads top to bottom.
func BuildCashbookRegister(app core.App, siteID, fromDate, toDate string) (*RegisterSheet, error) {
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return nil, fmt.Errorf("site not found: %w", err)
	}

	filter := "site = {:siteId}"
	params := map[string]any{"siteId": siteID}
	if fromDate != "" {
		filter += " && voucher_date >= {:from}"
		params["from"] = fromDate
	}
	if toDate != "" {
		filter += " && voucher_date <= {:to}"
		params["to"] = toDate
	}

	vouchers, err := app.FindRecordsByFilter("cash_vouchers", filter, "voucher_date,created", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load vouchers: %w", err)
	}

	headNames := map[string]string{}
	heads, err := app.FindAllRecords("budget_heads")
	if err != nil {
		return nil, fmt.Errorf("load budget heads: %w", err)
	}
	for _, h := range heads {
		headNames[h.Id] = h.GetString("name")
	}

	sheet := &RegisterSheet{
		Title:    fmt.Sprintf("Cashbook - %s (%s)", site.GetString("name"), site.GetString("site_code")),
		Subtitle: registerPeriodLine(len(vouchers), "vouchers", fromDate, toDate),
		Columns: []RegisterColumn{
			{Header: "Date", Key: "date", Width: 12, Span: 1},
			{Header: "Voucher No", Key: "voucher_no", Width: 20, Span: 2},
			{Header: "Budget Head", Key: "budget_head", Width: 22, Span: 2},
			{Header: "Particulars", Key: "particulars", Width: 40, Span: 3},
			{Header: "Mode", Key: "mode", Width: 9},
			{Header: "Reference", Key: "reference", Width: 16},
			{Header: "Receipt", Key: "receipt", Width: 14, Span: 1, Align: "right"},
			{Header: "Payment", Key: "payment", Width: 14, Span: 1, Align: "right"},
			{Header: "Balance", Key: "balance", Width: 16, Span: 2, Align: "right"},
		},
	}

	for _, v := range vouchers {
		row := RegisterRow{
			"date":        FormatDateDMY(v.GetString("voucher_date")),
			"voucher_no":  v.GetString("voucher_no"),
			"budget_head": headNames[v.GetString("budget_head")],
			"particulars": v.GetString("particulars"),
			"mode":        v.GetString("payment_mode"),
			"reference":   v.GetString("reference"),
			"balance":     FormatINR(v.GetFloat("running_balance")),
		}
		if v.GetString("type") == "receipt" {
			row["receipt"] = FormatINR(v.GetFloat("amount"))
		} else {
			row["payment"] = FormatINR(v.GetFloat("amount"))
		}
		sheet.Rows = append(sheet.Rows, row)
	}

	totals, err := GetCashbookTotals(app, siteID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	sheet.Summary = []RegisterSummary{
		{Label: "Opening Balance", Value: FormatINR(totals.OpeningBalance)},
		{Label: "Total Receipts", Value: FormatINR(totals.TotalReceipts)},
		{Label: "Total Payments", Value: FormatINR(totals.TotalPayments)},
		{Label: "Closing Balance", Value: FormatINR(totals.ClosingBalance)},
	}

	return sheet, nil
}

// BuildStockRegister assembles a site's closing stock as a register.
// Materials under their reorder level are flagged LOW.
func BuildStockRegister(app core.App, siteID string) (*RegisterSheet, error) {
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return nil, fmt.Errorf("site not found: %w", err)
	}

	rows, err := GetStockSummary(app, siteID)
	if err != nil {
		return nil, err
	}

	sheet := &RegisterSheet{
		Title:    fmt.Sprintf("Stock Register - %s (%s)", site.GetString("name"), site.GetString("site_code")),
		Subtitle: fmt.Sprintf("%d materials", len(rows)),
		Columns: []RegisterColumn{
			{Header: "Code", Key: "code", Width: 12, Span: 2},
			{Header: "Material", Key: "material", Width: 34, Span: 4},
			{Header: "UOM", Key: "uom", Width: 8, Span: 1},
			{Header: "Closing Qty", Key: "closing_qty", Width: 13, Span: 1, Align: "right"},
			{Header: "Avg Rate", Key: "avg_rate", Width: 14, Span: 1, Align: "right"},
			{Header: "Closing Value", Key: "closing_value", Width: 16, Span: 2, Align: "right"},
			{Header: "Reorder Level", Key: "reorder_level", Width: 13, Align: "right"},
			{Header: "Status", Key: "status", Width: 9, Span: 1, Align: "center"},
		},
	}

	var totalValue float64
	for _, r := range rows {
		row := RegisterRow{
			"code":          r.MaterialCode,
			"material":      r.MaterialName,
			"uom":           r.UOM,
			"closing_qty":   FormatQty(r.ClosingQty),
			"avg_rate":      FormatINR(averageRate(r.ClosingQty, r.ClosingValue)),
			"closing_value": FormatINR(r.ClosingValue),
			"reorder_level": FormatQty(r.ReorderLevel),
		}
		if r.ReorderLevel > 0 && r.ClosingQty < r.ReorderLevel {
			row["status"] = "LOW"
		}
		sheet.Rows = append(sheet.Rows, row)
		totalValue += r.ClosingValue
	}

	sheet.Summary = []RegisterSummary{
		{Label: "Total Stock Value", Value: FormatINR(Round2(totalValue))},
	}

	return sheet, nil
}

// BuildAssetRegister assembles the asset register. With a siteID only
// that site's assets are listed; with an empty siteID all assets appear
// with their current site.
func BuildAssetRegister(app core.App, siteID string) (*RegisterSheet, error) {
	filter := "id != ''"
	params := map[string]any{}
	title := "Asset Register - All Sites"

	if siteID != "" {
		site, err := app.FindRecordById("sites", siteID)
		if err != nil {
			return nil, fmt.Errorf("site not found: %w", err)
		}
		filter = "site = {:siteId}"
		params["siteId"] = siteID
		title = fmt.Sprintf("Asset Register - %s (%s)", site.GetString("name"), site.GetString("site_code"))
	}

	assets, err := app.FindRecordsByFilter("assets", filter, "asset_code", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}

	siteNames := map[string]string{}
	sites, err := app.FindAllRecords("sites")
	if err != nil {
		return nil, fmt.Errorf("load sites: %w", err)
	}
	for _, s := range sites {
		siteNames[s.Id] = s.GetString("name")
	}

	sheet := &RegisterSheet{
		Title:    title,
		Subtitle: fmt.Sprintf("%d assets", len(assets)),
		Columns: []RegisterColumn{
			{Header: "Asset Code", Key: "asset_code", Width: 14, Span: 2},
			{Header: "Name", Key: "name", Width: 32, Span: 3},
			{Header: "Category", Key: "category", Width: 18, Span: 2},
			{Header: "Site", Key: "site", Width: 24, Span: 2},
			{Header: "Purchase Date", Key: "purchase_date", Width: 14, Align: "center"},
			{Header: "Purchase Cost", Key: "purchase_cost", Width: 16, Span: 2, Align: "right"},
			{Header: "Status", Key: "status", Width: 13, Span: 1, Align: "center"},
			{Header: "Remarks", Key: "remarks", Width: 28},
		},
	}

	var totalCost float64
	for _, a := range assets {
		sheet.Rows = append(sheet.Rows, RegisterRow{
			"asset_code":    a.GetString("asset_code"),
			"name":          a.GetString("name"),
			"category":      a.GetString("category"),
			"site":          siteNames[a.GetString("site")],
			"purchase_date": FormatDateDMY(a.GetString("purchase_date")),
			"purchase_cost": FormatINR(a.GetFloat("purchase_cost")),
			"status":        a.GetString("status"),
			"remarks":       a.GetString("remarks"),
		})
		totalCost += a.GetFloat("purchase_cost")
	}

	sheet.Summary = []RegisterSummary{
		{Label: "Total Purchase Cost", Value: FormatINR(Round2(totalCost))},
	}

	return sheet, nil
}

// BuildWageRegister renders a site's wage sheet as a register.
func BuildWageRegister(app core.App, siteID string) (*RegisterSheet, error) {
	ws, err := BuildWageSheet(app, siteID)
	if err != nil {
		return nil, err
	}

	sheet := &RegisterSheet{
		Title:    fmt.Sprintf("Wage Sheet - %s (%s)", ws.SiteName, ws.SiteCode),
		Subtitle: fmt.Sprintf("%d workers", len(ws.Rows)),
		Columns: []RegisterColumn{
			{Header: "Emp Code", Key: "emp_code", Width: 12, Span: 1},
			{Header: "Name", Key: "name", Width: 26, Span: 3},
			{Header: "Designation", Key: "designation", Width: 16},
			{Header: "Contractor", Key: "contractor", Width: 20},
			{Header: "Wage Type", Key: "wage_type", Width: 11, Span: 1, Align: "center"},
			{Header: "Rate", Key: "rate", Width: 12, Span: 1, Align: "right"},
			{Header: "Days", Key: "days", Width: 8, Span: 1, Align: "right"},
			{Header: "Gross", Key: "gross", Width: 13, Span: 2, Align: "right"},
			{Header: "PF", Key: "pf", Width: 11, Span: 1, Align: "right"},
			{Header: "ESI", Key: "esi", Width: 11, Span: 1, Align: "right"},
			{Header: "Net", Key: "net", Width: 13, Span: 1, Align: "right"},
		},
	}

	for _, r := range ws.Rows {
		sheet.Rows = append(sheet.Rows, RegisterRow{
			"emp_code":    r.EmpCode,
			"name":        r.Name,
			"designation": r.Designation,
			"contractor":  r.Contractor,
			"wage_type":   r.WageType,
			"rate":        FormatINR(r.WageRate),
			"days":        FormatQty(r.DaysWorked),
			"gross":       FormatINR(r.Gross),
			"pf":          FormatINR(r.PF),
			"esi":         FormatINR(r.ESI),
			"net":         FormatINR(r.Net),
		})
	}

	sheet.Summary = []RegisterSummary{
		{Label: "Total Gross", Value: FormatINR(ws.TotalGross)},
		{Label: "Total PF", Value: FormatINR(ws.TotalPF)},
		{Label: "Total ESI", Value: FormatINR(ws.TotalESI)},
		{Label: "Net Payable", Value: FormatINR(ws.TotalNet)},
	}

	return sheet, nil
}

// BuildVendorRegister assembles the vendor directory as a register.
func BuildVendorRegister(app core.App) (*RegisterSheet, error) {
	vendors, err := app.FindRecordsByFilter("vendors", "id != ''", "name", 0, 0, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("load vendors: %w", err)
	}

	sheet := &RegisterSheet{
		Title:    "Vendor Directory",
		Subtitle: fmt.Sprintf("%d vendors", len(vendors)),
		Columns: []RegisterColumn{
			{Header: "Vendor", Key: "name", Width: 30, Span: 3},
			{Header: "Contact Person", Key: "contact_person", Width: 22, Span: 2},
			{Header: "Phone", Key: "phone", Width: 14, Span: 2},
			{Header: "Email", Key: "email", Width: 26},
			{Header: "City", Key: "city", Width: 16, Span: 2},
			{Header: "State", Key: "state", Width: 14},
			{Header: "GSTIN", Key: "gstin", Width: 18, Span: 3},
			{Header: "PAN", Key: "pan", Width: 13},
			{Header: "Bank", Key: "bank_name", Width: 20},
			{Header: "Account No", Key: "bank_account_no", Width: 18},
			{Header: "IFSC", Key: "bank_ifsc", Width: 13},
		},
	}

	for _, v := range vendors {
		sheet.Rows = append(sheet.Rows, RegisterRow{
			"name":            v.GetString("name"),
			"contact_person":  v.GetString("contact_person"),
			"phone":           v.GetString("phone"),
			"email":           v.GetString("email"),
			"city":            v.GetString("city"),
			"state":           v.GetString("state"),
			"gstin":           v.GetString("gstin"),
			"pan":             v.GetString("pan"),
			"bank_name":       v.GetString("bank_name"),
			"bank_account_no": v.GetString("bank_account_no"),
			"bank_ifsc":       v.GetString("bank_ifsc"),
		})
	}

	return sheet, nil
}

// registerPeriodLine builds the subtitle for period-bounded registers.
func registerPeriodLine(count int, noun, fromDate, toDate string) string {
	line := fmt.Sprintf("%d %s", count, noun)
	switch {
	case fromDate != "" && toDate != "":
		line += fmt.Sprintf(" | %s to %s", FormatDateDMY(fromDate), FormatDateDMY(toDate))
	case fromDate != "":
		line += fmt.Sprintf(" | from %s", FormatDateDMY(fromDate))
	case toDate != "":
		line += fmt.Sprintf(" | up to %s", FormatDateDMY(toDate))
	}
	return line
}
