// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestSite creates a site record with the given name and returns it.
func CreateTestSite(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sites")
	if err != nil {
		t.Fatalf("failed to find sites collection: %v", err)
	}

	code := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	if len(code) > 6 {
		code = code[:6]
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("site_code", code)
	record.Set("status", "active")
	record.Set("state", "Odisha")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test site: %v", err)
	}

	return record
}

// CreateTestStaff creates a staff record with the given role and token.
func CreateTestStaff(t *testing.T, app *pocketbase.PocketBase, name, role, token string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("role", role)
	record.Set("api_token", token)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// CreateTestBudgetHead creates a budget head record.
func CreateTestBudgetHead(t *testing.T, app *pocketbase.PocketBase, code, name, category string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("budget_heads")
	if err != nil {
		t.Fatalf("failed to find budget_heads collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("category", category)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test budget head: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, code, name, uom string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("name", name)
	record.Set("uom", uom)
	record.Set("category", "cement")
	record.Set("gst_percent", 28)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestVoucher creates a cash voucher record. Running balance is
// left at zero; recomputation fills it.
func CreateTestVoucher(t *testing.T, app *pocketbase.PocketBase, siteID, headID, voucherNo, date, vtype string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("cash_vouchers")
	if err != nil {
		t.Fatalf("failed to find cash_vouchers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("budget_head", headID)
	record.Set("voucher_no", voucherNo)
	record.Set("voucher_date", date)
	record.Set("type", vtype)
	record.Set("particulars", "Test voucher "+voucherNo)
	record.Set("amount", amount)
	record.Set("payment_mode", "cash")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test voucher: %v", err)
	}

	return record
}

// CreateTestSiteBudget creates a site budget row for a material.
func CreateTestSiteBudget(t *testing.T, app *pocketbase.PocketBase, siteID, materialID string, budgetQty, budgetValue float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("site_budgets")
	if err != nil {
		t.Fatalf("failed to find site_budgets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("material", materialID)
	record.Set("budget_qty", budgetQty)
	record.Set("budget_value", budgetValue)
	record.Set("alert_level", "none")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test site budget: %v", err)
	}

	return record
}

// CreateTestStockEntry creates a stock ledger entry. Closing figures are
// left at zero; recomputation fills them.
func CreateTestStockEntry(t *testing.T, app *pocketbase.PocketBase, siteID, materialID, date, entryType string, qty, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("stock_entries")
	if err != nil {
		t.Fatalf("failed to find stock_entries collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("material", materialID)
	record.Set("entry_date", date)
	record.Set("entry_type", entryType)
	record.Set("qty", qty)
	record.Set("rate", rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test stock entry: %v", err)
	}

	return record
}

// CreateTestAsset creates an asset record.
func CreateTestAsset(t *testing.T, app *pocketbase.PocketBase, code, name, category, siteID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("assets")
	if err != nil {
		t.Fatalf("failed to find assets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("asset_code", code)
	record.Set("name", name)
	record.Set("category", category)
	record.Set("site", siteID)
	record.Set("status", "in_service")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test asset: %v", err)
	}

	return record
}

// CreateTestEmployee creates an employee record.
func CreateTestEmployee(t *testing.T, app *pocketbase.PocketBase, empCode, name, wageType string, baseWage float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("employees")
	if err != nil {
		t.Fatalf("failed to find employees collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("emp_code", empCode)
	record.Set("name", name)
	record.Set("wage_type", wageType)
	record.Set("base_wage", baseWage)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test employee: %v", err)
	}

	return record
}

// CreateTestAssignment creates an active manpower assignment.
func CreateTestAssignment(t *testing.T, app *pocketbase.PocketBase, employeeID, siteID, fromDate string, wageRate, daysWorked float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("manpower_assignments")
	if err != nil {
		t.Fatalf("failed to find manpower_assignments collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("employee", employeeID)
	record.Set("site", siteID)
	record.Set("from_date", fromDate)
	record.Set("wage_rate", wageRate)
	record.Set("days_worked", daysWorked)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test assignment: %v", err)
	}

	return record
}

// CreateTestVendor creates a vendor record with the given name and returns it.
func CreateTestVendor(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		t.Fatalf("failed to find vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("city", "Bhubaneswar")
	record.Set("state", "Odisha")
	record.Set("gstin", "21AADCB2230M1ZV")
	record.Set("contact_person", "Test Contact")
	record.Set("phone", "9876543210")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test vendor: %v", err)
	}

	return record
}

// LinkVendorToSite creates a site_vendors link record.
func LinkVendorToSite(t *testing.T, app *pocketbase.PocketBase, siteID, vendorID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("site_vendors")
	if err != nil {
		t.Fatalf("failed to find site_vendors collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("vendor", vendorID)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save site-vendor link: %v", err)
	}

	return record
}

// CreateTestIndent creates an indent record in the given status.
func CreateTestIndent(t *testing.T, app *pocketbase.PocketBase, siteID, indentNo, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("indents")
	if err != nil {
		t.Fatalf("failed to find indents collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("indent_no", indentNo)
	record.Set("indent_date", "2026-05-02")
	record.Set("status", status)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test indent: %v", err)
	}

	return record
}

// CreateTestIndentItem creates an indent item.
func CreateTestIndentItem(t *testing.T, app *pocketbase.PocketBase, indentID, materialID string, qty float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("indent_items")
	if err != nil {
		t.Fatalf("failed to find indent_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("indent", indentID)
	record.Set("material", materialID)
	record.Set("qty", qty)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test indent item: %v", err)
	}

	return record
}

// CreateTestPurchaseOrder creates a PO record linked to a site and vendor.
func CreateTestPurchaseOrder(t *testing.T, app *pocketbase.PocketBase, siteID, vendorID, poNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("purchase_orders")
	if err != nil {
		t.Fatalf("failed to find purchase_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("vendor", vendorID)
	record.Set("po_number", poNumber)
	record.Set("order_date", "2026-05-10")
	record.Set("status", "draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test PO: %v", err)
	}

	return record
}

// CreateTestPOLineItem creates a PO line item record.
func CreateTestPOLineItem(t *testing.T, app *pocketbase.PocketBase, poID string, sortOrder int, description string, qty, rate, gstPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("po_line_items")
	if err != nil {
		t.Fatalf("failed to find po_line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("purchase_order", poID)
	record.Set("sort_order", sortOrder)
	record.Set("description", description)
	record.Set("hsn_code", "2523")
	record.Set("qty", qty)
	record.Set("uom", "Bag")
	record.Set("rate", rate)
	record.Set("gst_percent", gstPercent)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test PO line item: %v", err)
	}

	return record
}

// CreateTestBOQ creates a BOQ record linked to a site and returns it.
func CreateTestBOQ(t *testing.T, app *pocketbase.PocketBase, siteID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boqs")
	if err != nil {
		t.Fatalf("failed to find boqs collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("site", siteID)
	record.Set("title", title)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ: %v", err)
	}

	return record
}

// CreateTestBOQItem creates a work item under a BOQ.
func CreateTestBOQItem(t *testing.T, app *pocketbase.PocketBase, boqID, description string, qty, rate float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		t.Fatalf("failed to find boq_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("boq", boqID)
	record.Set("description", description)
	record.Set("qty", qty)
	record.Set("uom", "Cum")
	record.Set("rate", rate)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ item: %v", err)
	}

	return record
}

// CreateTestBOQSubItem creates a rate analysis component under a work item.
func CreateTestBOQSubItem(t *testing.T, app *pocketbase.PocketBase, itemID, description, subType string, qtyPerUnit, rate float64, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("boq_sub_items")
	if err != nil {
		t.Fatalf("failed to find boq_sub_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("boq_item", itemID)
	record.Set("type", subType)
	record.Set("description", description)
	record.Set("qty_per_unit", qtyPerUnit)
	record.Set("uom", "Kg")
	record.Set("rate", rate)
	record.Set("sort_order", sortOrder)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test BOQ sub item: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
