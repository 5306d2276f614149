package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/services"
	"sitebooks/testhelpers"
)

func TestHandleStockEntryCreate_ReceiptThenIssue(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Stock Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	handler := HandleStockEntryCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-01",
		EntryType: "receipt",
		Qty:       100,
		Rate:      380,
		Reference: "GRN-001",
	})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("receipt error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("receipt status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var receipt StockEntryItem
	decodeBody(t, rec, &receipt)
	if receipt.Value != 38000 {
		t.Errorf("receipt value = %v, want 38000", receipt.Value)
	}
	if receipt.ClosingQty != 100 || receipt.ClosingValue != 38000 {
		t.Errorf("receipt closing = %v/%v, want 100/38000", receipt.ClosingQty, receipt.ClosingValue)
	}
	if receipt.MaterialCode != "MAT-001" || receipt.UOM != "Bag" {
		t.Errorf("material not resolved: %+v", receipt)
	}

	req = jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-02",
		EntryType: "issue",
		Qty:       40,
	})
	req.SetPathValue("siteId", site.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("issue error: %v", err)
	}

	var issue StockEntryItem
	decodeBody(t, rec, &issue)
	if issue.Value != 15200 {
		t.Errorf("issue value = %v, want 15200 (40 x avg 380)", issue.Value)
	}
	if issue.ClosingQty != 60 || issue.ClosingValue != 22800 {
		t.Errorf("issue closing = %v/%v, want 60/22800", issue.ClosingQty, issue.ClosingValue)
	}
}

func TestHandleStockEntryCreate_IssueUpdatesBudgetConsumption(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Budgeted Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")
	budget := testhelpers.CreateTestSiteBudget(t, app, site.Id, cement.Id, 1000, 100000)

	handler := HandleStockEntryCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-01",
		EntryType: "receipt",
		Qty:       200,
		Rate:      400,
	})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("receipt error: %v", err)
	}

	req = jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-02",
		EntryType: "issue",
		Qty:       150,
	})
	req.SetPathValue("siteId", site.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("issue error: %v", err)
	}

	updated, err := app.FindRecordById("site_budgets", budget.Id)
	if err != nil {
		t.Fatalf("reload budget: %v", err)
	}
	if got := updated.GetFloat("consumed_value"); got != 60000 {
		t.Errorf("consumed_value = %v, want 60000", got)
	}
	if got := updated.GetString("alert_level"); got != services.AlertWatch50 {
		t.Errorf("alert_level = %q, want %q", got, services.AlertWatch50)
	}
}

func TestHandleStockEntryCreate_InsufficientStockRejected(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Short Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	handler := HandleStockEntryCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-01",
		EntryType: "receipt",
		Qty:       30,
		Rate:      380,
	})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("receipt error: %v", err)
	}

	req = jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  cement.Id,
		EntryDate: "2026-06-02",
		EntryType: "issue",
		Qty:       50,
	})
	req.SetPathValue("siteId", site.Id)
	rec = httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Fatalf("oversized issue status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	// the offending issue must not survive the rollback
	entries, err := app.FindRecordsByFilter(
		"stock_entries",
		"site = {:site} && entry_type = 'issue'",
		"", 0, 0,
		map[string]any{"site": site.Id},
	)
	if err != nil {
		t.Fatalf("list issues: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected rejected issue to be rolled back, found %d rows", len(entries))
	}
}

func TestHandleStockEntryCreate_InvalidPayloads(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Validation Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	handler := HandleStockEntryCreate(app)

	cases := []struct {
		name string
		body StockEntryRequest
	}{
		{"missing material", StockEntryRequest{EntryDate: "2026-06-01", EntryType: "receipt", Qty: 10, Rate: 5}},
		{"bad entry type", StockEntryRequest{Material: cement.Id, EntryDate: "2026-06-01", EntryType: "transfer", Qty: 10, Rate: 5}},
		{"receipt without rate", StockEntryRequest{Material: cement.Id, EntryDate: "2026-06-01", EntryType: "receipt", Qty: 10}},
		{"negative receipt qty", StockEntryRequest{Material: cement.Id, EntryDate: "2026-06-01", EntryType: "receipt", Qty: -4, Rate: 5}},
		{"bad date", StockEntryRequest{Material: cement.Id, EntryDate: "01-06-2026", EntryType: "receipt", Qty: 10, Rate: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", tc.body)
			req.SetPathValue("siteId", site.Id)
			rec := httptest.NewRecorder()
			handler(newTestRequestEvent(app, req, rec))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleStockEntryCreate_UnknownMaterial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Ghost Material Site")

	handler := HandleStockEntryCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/stock", StockEntryRequest{
		Material:  "nope123456",
		EntryDate: "2026-06-01",
		EntryType: "receipt",
		Qty:       10,
		Rate:      5,
	})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStockEntryDelete_ReplaysLedger(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Replay Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	first := testhelpers.CreateTestStockEntry(t, app, site.Id, cement.Id, "2026-06-01", "receipt", 100, 300)
	second := testhelpers.CreateTestStockEntry(t, app, site.Id, cement.Id, "2026-06-02", "receipt", 100, 400)
	if err := services.RecalculateStockLedger(app, site.Id, cement.Id); err != nil {
		t.Fatalf("seed recalc: %v", err)
	}

	handler := HandleStockEntryDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/stock/"+first.Id, nil)
	req.SetPathValue("id", first.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	survivor, err := app.FindRecordById("stock_entries", second.Id)
	if err != nil {
		t.Fatalf("reload survivor: %v", err)
	}
	if got := survivor.GetFloat("closing_qty"); got != 100 {
		t.Errorf("closing_qty = %v, want 100", got)
	}
	if got := survivor.GetFloat("closing_value"); got != 40000 {
		t.Errorf("closing_value = %v, want 40000", got)
	}
}

func TestHandleStockEntryDelete_ReceiptFeedingIssuesBlocked(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Dependent Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	receipt := testhelpers.CreateTestStockEntry(t, app, site.Id, cement.Id, "2026-06-01", "receipt", 100, 300)
	issue := testhelpers.CreateTestStockEntry(t, app, site.Id, cement.Id, "2026-06-02", "issue", 80, 0)
	if err := services.RecalculateStockLedger(app, site.Id, cement.Id); err != nil {
		t.Fatalf("seed recalc: %v", err)
	}

	handler := HandleStockEntryDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/stock/"+receipt.Id, nil)
	req.SetPathValue("id", receipt.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	// both rows still present after rollback
	if _, err := app.FindRecordById("stock_entries", receipt.Id); err != nil {
		t.Errorf("receipt vanished despite rollback: %v", err)
	}
	if _, err := app.FindRecordById("stock_entries", issue.Id); err != nil {
		t.Errorf("issue vanished despite rollback: %v", err)
	}
}

func TestHandleStockEntryDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleStockEntryDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/stock/missing123", nil)
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
