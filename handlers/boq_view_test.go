package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandleBOQView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "BOQ View Site")
	boq := testhelpers.CreateTestBOQ(t, app, site.Id, "Structural Package")

	item1 := testhelpers.CreateTestBOQItem(t, app, boq.Id, "RCC M25 foundation", 120, 5500, 1)
	item1.Set("budgeted_rate", 5100)
	item1.Set("item_code", "CW-01")
	if err := app.Save(item1); err != nil {
		t.Fatalf("save item1: %v", err)
	}

	item2 := testhelpers.CreateTestBOQItem(t, app, boq.Id, "Brickwork 230mm", 200, 850, 2)
	// manual figure present but components below must win
	item2.Set("budgeted_rate", 800)
	if err := app.Save(item2); err != nil {
		t.Fatalf("save item2: %v", err)
	}
	testhelpers.CreateTestBOQSubItem(t, app, item2.Id, "Fly ash bricks", "material", 42, 9, 1)
	testhelpers.CreateTestBOQSubItem(t, app, item2.Id, "Mason gang", "labour", 0.6, 520, 2)

	handler := HandleBOQView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/boqs/"+boq.Id, nil)
	req.SetPathValue("id", boq.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got BOQViewResponse
	decodeBody(t, rec, &got)

	if got.Title != "Structural Package" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.ItemCount != 2 {
		t.Fatalf("ItemCount = %d, want 2", got.ItemCount)
	}
	if len(got.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(got.Items))
	}

	first := got.Items[0]
	if first.Description != "RCC M25 foundation" {
		t.Errorf("Items[0].Description = %q", first.Description)
	}
	if first.ItemCode != "CW-01" {
		t.Errorf("Items[0].ItemCode = %q", first.ItemCode)
	}
	if first.Amount != 660000 {
		t.Errorf("Items[0].Amount = %v, want 660000", first.Amount)
	}
	if first.BudgetedRate != 5100 {
		t.Errorf("Items[0].BudgetedRate = %v, want 5100", first.BudgetedRate)
	}
	if first.BudgetedAmount != 612000 {
		t.Errorf("Items[0].BudgetedAmount = %v, want 612000", first.BudgetedAmount)
	}
	if len(first.SubItems) != 0 {
		t.Errorf("Items[0].SubItems = %v, want empty", first.SubItems)
	}

	second := got.Items[1]
	if len(second.SubItems) != 2 {
		t.Fatalf("len(Items[1].SubItems) = %d, want 2", len(second.SubItems))
	}
	if second.SubItems[0].Description != "Fly ash bricks" {
		t.Errorf("SubItems[0].Description = %q", second.SubItems[0].Description)
	}
	if second.SubItems[0].Cost != 378 {
		t.Errorf("SubItems[0].Cost = %v, want 378", second.SubItems[0].Cost)
	}
	if second.SubItems[1].Type != "labour" {
		t.Errorf("SubItems[1].Type = %q", second.SubItems[1].Type)
	}
	if second.SubItems[1].Cost != 312 {
		t.Errorf("SubItems[1].Cost = %v, want 312", second.SubItems[1].Cost)
	}
	if second.BudgetedRate != 690 {
		t.Errorf("Items[1].BudgetedRate = %v, want 690 from components", second.BudgetedRate)
	}
	if second.Amount != 170000 {
		t.Errorf("Items[1].Amount = %v, want 170000", second.Amount)
	}
	if second.BudgetedAmount != 138000 {
		t.Errorf("Items[1].BudgetedAmount = %v, want 138000", second.BudgetedAmount)
	}

	if got.TotalQuoted != 830000 {
		t.Errorf("TotalQuoted = %v, want 830000", got.TotalQuoted)
	}
	if got.TotalBudgeted != 750000 {
		t.Errorf("TotalBudgeted = %v, want 750000", got.TotalBudgeted)
	}
	if got.Margin != 80000 {
		t.Errorf("Margin = %v, want 80000", got.Margin)
	}
	if got.MarginPercent != 9.64 {
		t.Errorf("MarginPercent = %v, want 9.64", got.MarginPercent)
	}
}

func TestHandleBOQView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleBOQView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/boqs/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
