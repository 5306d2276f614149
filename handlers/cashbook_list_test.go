package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/services"
	"sitebooks/testhelpers"
)

func TestHandleCashbookList_LedgerOrderAndTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Ledger Site")
	site.Set("opening_cash_balance", 5000)
	if err := app.Save(site); err != nil {
		t.Fatalf("failed to set opening balance: %v", err)
	}
	head := testhelpers.CreateTestBudgetHead(t, app, "BH-10", "Cement", "material")

	// Inserted out of date order; the list must come back in ledger order
	testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-LEDGER-25-26-002", "2025-06-15", "payment", 1200)
	testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-LEDGER-25-26-001", "2025-06-01", "receipt", 3000)

	handler := HandleCashbookList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/sites/"+site.Id+"/cashbook", nil)
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TotalItems int                     `json:"totalItems"`
		Items      []VoucherItem           `json:"items"`
		Totals     services.CashbookTotals `json:"totals"`
	}
	decodeBody(t, rec, &resp)

	if resp.TotalItems != 2 {
		t.Fatalf("expected 2 vouchers, got %d", resp.TotalItems)
	}
	if resp.Items[0].VoucherDate != "2025-06-01" {
		t.Errorf("expected earliest voucher first, got %s", resp.Items[0].VoucherDate)
	}
	if resp.Totals.OpeningBalance != 5000 {
		t.Errorf("expected opening 5000, got %v", resp.Totals.OpeningBalance)
	}
	if resp.Totals.TotalReceipts != 3000 {
		t.Errorf("expected receipts 3000, got %v", resp.Totals.TotalReceipts)
	}
	if resp.Totals.TotalPayments != 1200 {
		t.Errorf("expected payments 1200, got %v", resp.Totals.TotalPayments)
	}
	if resp.Totals.ClosingBalance != 6800 {
		t.Errorf("expected closing 6800, got %v", resp.Totals.ClosingBalance)
	}
}

func TestHandleCashbookList_DateRangeFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Range Site")
	head := testhelpers.CreateTestBudgetHead(t, app, "BH-10", "Cement", "material")
	testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-RANGES-25-26-001", "2025-05-01", "payment", 100)
	testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-RANGES-25-26-002", "2025-06-01", "payment", 200)
	testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-RANGES-25-26-003", "2025-07-01", "payment", 300)

	handler := HandleCashbookList(app)

	req := httptest.NewRequest(http.MethodGet,
		"/api/sites/"+site.Id+"/cashbook?from=2025-05-15&to=2025-06-15", nil)
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp struct {
		TotalItems int                     `json:"totalItems"`
		Items      []VoucherItem           `json:"items"`
		Totals     services.CashbookTotals `json:"totals"`
	}
	decodeBody(t, rec, &resp)

	if resp.TotalItems != 1 {
		t.Fatalf("expected 1 voucher in range, got %d", resp.TotalItems)
	}
	if resp.Items[0].VoucherDate != "2025-06-01" {
		t.Errorf("expected the June voucher, got %s", resp.Items[0].VoucherDate)
	}
	// Opening carries the pre-period payment
	if resp.Totals.OpeningBalance != -100 {
		t.Errorf("expected opening -100, got %v", resp.Totals.OpeningBalance)
	}
}

func TestHandleCashbookList_BadDate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Bad Date Site")

	handler := HandleCashbookList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/sites/"+site.Id+"/cashbook?from=01-06-2025", nil)
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleCashbookRecalculate_FixesTamperedBalances(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Fix Site")
	head := testhelpers.CreateTestBudgetHead(t, app, "BH-10", "Cement", "material")
	voucher := testhelpers.CreateTestVoucher(t, app, site.Id, head.Id,
		"SBC-CV-FIXSIT-25-26-001", "2025-06-01", "receipt", 750)

	voucher.Set("running_balance", 999999)
	if err := app.Save(voucher); err != nil {
		t.Fatalf("failed to tamper balance: %v", err)
	}

	handler := HandleCashbookRecalculate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/sites/"+site.Id+"/cashbook/recalculate", nil)
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	reloaded, _ := app.FindRecordById("cash_vouchers", voucher.Id)
	if bal := reloaded.GetFloat("running_balance"); bal != 750 {
		t.Errorf("expected rebuilt balance 750, got %v", bal)
	}
}
