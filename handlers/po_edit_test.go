package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandlePOUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "PO Patch Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-001")

	handler := HandlePOUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/pos/"+po.Id, map[string]any{
		"order_date":     "2026-06-20",
		"payment_terms":  "50% advance, 50% on delivery",
		"delivery_terms": "Ex works, 7 days",
	})
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := app.FindRecordById("purchase_orders", po.Id)
	if err != nil {
		t.Fatalf("reload PO: %v", err)
	}
	if saved.GetString("order_date") != "2026-06-20" {
		t.Errorf("order_date = %q", saved.GetString("order_date"))
	}
	if saved.GetString("payment_terms") != "50% advance, 50% on delivery" {
		t.Errorf("payment_terms = %q", saved.GetString("payment_terms"))
	}
	if saved.GetString("po_number") != "SBC-PO-TEST-26-27-001" {
		t.Errorf("po_number changed: %q", saved.GetString("po_number"))
	}
}

func TestHandlePOUpdate_SwapVendor(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Vendor Swap Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	other := testhelpers.CreateTestVendor(t, app, "Konark Steel Traders")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	testhelpers.LinkVendorToSite(t, app, site.Id, other.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-002")

	handler := HandlePOUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/pos/"+po.Id, map[string]any{"vendor": other.Id})
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got POListItem
	decodeBody(t, rec, &got)
	if got.VendorName != "Konark Steel Traders" {
		t.Errorf("VendorName = %q", got.VendorName)
	}
}

func TestHandlePOUpdate_VendorNotLinked(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Swap Guard Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	stranger := testhelpers.CreateTestVendor(t, app, "Konark Steel Traders")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-003")

	handler := HandlePOUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/pos/"+po.Id, map[string]any{"vendor": stranger.Id})
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePOUpdate_LockedFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Locked Fields Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-004")

	handler := HandlePOUpdate(app)

	for _, field := range []string{"po_number", "site", "status", "indent"} {
		t.Run(field, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPatch, "/api/pos/"+po.Id, map[string]any{field: "x"})
			req.SetPathValue("id", po.Id)
			rec := httptest.NewRecorder()
			handler(newTestRequestEvent(app, req, rec))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandlePOUpdate_NonDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Frozen PO Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-005")
	po.Set("status", "approved")
	if err := app.Save(po); err != nil {
		t.Fatalf("set status: %v", err)
	}

	handler := HandlePOUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/pos/"+po.Id, map[string]any{"payment_terms": "net 60"})
	req.SetPathValue("id", po.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePOUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandlePOUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/pos/missing", map[string]any{"payment_terms": "x"})
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
