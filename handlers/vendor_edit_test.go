package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandleVendorUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")

	handler := HandleVendorUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/vendors/"+vendor.Id, map[string]any{
		"bank_name":       "HDFC Bank",
		"bank_ifsc":       "hdfc0000456",
		"bank_account_no": "50100223344",
	})
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got VendorItem
	decodeBody(t, rec, &got)
	if got.BankIFSC != "HDFC0000456" {
		t.Errorf("bank_ifsc = %q, want HDFC0000456", got.BankIFSC)
	}
	if got.BankName != "HDFC Bank" || got.BankAccountNo != "50100223344" {
		t.Errorf("bank patch not applied: %+v", got)
	}
	// untouched fields stay
	if got.City != "Bhubaneswar" || got.GSTIN != "21AADCB2230M1ZV" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestHandleVendorUpdate_FormatChecks(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")

	handler := HandleVendorUpdate(app)

	cases := []struct {
		name  string
		patch map[string]any
	}{
		{"bad gstin", map[string]any{"gstin": "XYZ"}},
		{"bad phone", map[string]any{"phone": "12345"}},
		{"bad ifsc", map[string]any{"bank_ifsc": "SBIN123"}},
		{"empty name", map[string]any{"name": "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPatch, "/api/vendors/"+vendor.Id, tc.patch)
			req.SetPathValue("id", vendor.Id)
			rec := httptest.NewRecorder()
			handler(newTestRequestEvent(app, req, rec))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleVendorUpdate_DuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.CreateTestVendor(t, app, "Maa Tarini Traders")

	handler := HandleVendorUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/vendors/"+vendor.Id, map[string]any{"name": "Maa Tarini Traders"})
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}

	// keeping the same name is not a conflict
	req = jsonRequest(t, http.MethodPatch, "/api/vendors/"+vendor.Id, map[string]any{"name": "Utkal Cement Agencies"})
	req.SetPathValue("id", vendor.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("same-name patch status = %d, want 200", rec.Code)
	}
}

func TestHandleVendorUpdate_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleVendorUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/vendors/missing123", map[string]any{"city": "Puri"})
	req.SetPathValue("id", "missing123")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
