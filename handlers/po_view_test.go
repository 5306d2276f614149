package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandlePOView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "PO View Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-001")
	testhelpers.CreateTestPOLineItem(t, app, po.Id, 1, "OPC 53 Grade Cement", 100, 380, 28)
	testhelpers.CreateTestPOLineItem(t, app, po.Id, 2, "River Sand", 50, 60, 5)

	handler := HandlePOView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/pos/"+po.Id, nil)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got POViewResponse
	decodeBody(t, rec, &got)

	if len(got.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(got.Items))
	}
	if got.Items[0].Total != 48640 {
		t.Errorf("Items[0].Total = %v, want 48640", got.Items[0].Total)
	}
	if got.Totals.TaxableValue != 41000 {
		t.Errorf("TaxableValue = %v, want 41000", got.Totals.TaxableValue)
	}
	if got.Totals.GSTAmount != 10790 {
		t.Errorf("GSTAmount = %v, want 10790", got.Totals.GSTAmount)
	}
	if got.Totals.GrandTotal != 51790 {
		t.Errorf("GrandTotal = %v, want 51790", got.Totals.GrandTotal)
	}
	if want := "Fifty One Thousand Seven Hundred and Ninety Rupees Only/-"; got.Totals.AmountInWords != want {
		t.Errorf("AmountInWords = %q, want %q", got.Totals.AmountInWords, want)
	}
	if got.Vendor.GSTIN != "21AADCB2230M1ZV" {
		t.Errorf("Vendor.GSTIN = %q", got.Vendor.GSTIN)
	}
	if len(got.Trail) != 0 {
		t.Errorf("Trail = %d rows on a fresh draft, want 0", len(got.Trail))
	}
}

func TestHandlePOView_NextActions(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Next Actions Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-002")

	handler := HandlePOView(app)

	req := withStaff(
		httptest.NewRequest(http.MethodGet, "/api/pos/"+po.Id, nil),
		&Staff{ID: "stf1", Name: "Purchase Head", Role: "purchase"},
	)
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got POViewResponse
	decodeBody(t, rec, &got)

	want := []string{"pending_approval", "cancelled"}
	if len(got.NextActions) != len(want) {
		t.Fatalf("NextActions = %v, want %v", got.NextActions, want)
	}
	for i := range want {
		if got.NextActions[i] != want[i] {
			t.Errorf("NextActions[%d] = %q, want %q", i, got.NextActions[i], want[i])
		}
	}
}

func TestHandlePOView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandlePOView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/pos/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
