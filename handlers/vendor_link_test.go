package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandleVendorLink_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Link Flow Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")

	handler := HandleVendorLink(app)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/sites/"+site.Id+"/vendors/"+vendor.Id+"/link", nil)
		req.SetPathValue("siteId", site.Id)
		req.SetPathValue("id", vendor.Id)
		rec := httptest.NewRecorder()
		if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("link %d error: %v", i, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("link %d status = %d, want 200", i, rec.Code)
		}
	}

	links, err := app.FindRecordsByFilter(
		"site_vendors",
		"site = {:site} && vendor = {:vendor}",
		"", 0, 0,
		map[string]any{"site": site.Id, "vendor": vendor.Id},
	)
	if err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("expected a single link after double POST, got %d", len(links))
	}
}

func TestHandleVendorUnlink(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Unlink Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)

	handler := HandleVendorUnlink(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/sites/"+site.Id+"/vendors/"+vendor.Id+"/link", nil)
	req.SetPathValue("siteId", site.Id)
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	links, err := app.FindRecordsByFilter(
		"site_vendors",
		"site = {:site} && vendor = {:vendor}",
		"", 0, 0,
		map[string]any{"site": site.Id, "vendor": vendor.Id},
	)
	if err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("link still present after unlink")
	}
}

func TestHandleVendorUnlink_BlockedByPOs(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "PO Unlink Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-25-26-001")

	handler := HandleVendorUnlink(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/sites/"+site.Id+"/vendors/"+vendor.Id+"/link", nil)
	req.SetPathValue("siteId", site.Id)
	req.SetPathValue("id", vendor.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}
