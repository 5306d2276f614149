package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestPOWorkflow_FullPath(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "PO Flow Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-001")
	testhelpers.CreateTestPOLineItem(t, app, po.Id, 1, "OPC 53 Grade Cement", 100, 380, 28)

	// draft → pending_approval by purchase
	rec := httptest.NewRecorder()
	req := transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/submit", "purchase")
	req.SetPathValue("id", po.Id)
	if err := HandlePOSubmit(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", rec.Code, rec.Body.String())
	}

	// purchase cannot sign off its own queue
	rec = httptest.NewRecorder()
	req = transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/approve", "purchase")
	req.SetPathValue("id", po.Id)
	HandlePOApprove(app)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("purchase approve status = %d, want 403: %s", rec.Code, rec.Body.String())
	}

	// admin approves
	rec = httptest.NewRecorder()
	req = transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/approve", "admin")
	req.SetPathValue("id", po.Id)
	if err := HandlePOApprove(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("approve status = %d: %s", rec.Code, rec.Body.String())
	}

	// approved → sent by purchase
	rec = httptest.NewRecorder()
	req = transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/send", "purchase")
	req.SetPathValue("id", po.Id)
	if err := HandlePOSend(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("send status = %d: %s", rec.Code, rec.Body.String())
	}

	// sent → completed by stores on receipt
	rec = httptest.NewRecorder()
	req = transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/complete", "stores")
	req.SetPathValue("id", po.Id)
	if err := HandlePOComplete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("complete error: %v", err)
	}

	var got POListItem
	decodeBody(t, rec, &got)
	if got.Status != "completed" {
		t.Errorf("final status = %q, want completed", got.Status)
	}

	trail := approvalTrail(app, "purchase_order", po.Id)
	if len(trail) != 4 {
		t.Fatalf("trail has %d rows, want 4", len(trail))
	}
	if trail[0].ToStatus != "pending_approval" || trail[3].ToStatus != "completed" {
		t.Errorf("trail order wrong: first %q last %q", trail[0].ToStatus, trail[3].ToStatus)
	}
	if trail[1].ActorName != "Flow admin" {
		t.Errorf("approver = %q, want Flow admin", trail[1].ActorName)
	}
}

func TestHandlePOSubmit_NoLines(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Empty PO Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-002")

	rec := httptest.NewRecorder()
	req := transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/submit", "purchase")
	req.SetPathValue("id", po.Id)
	HandlePOSubmit(app)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePOCancel_Draft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Cancel PO Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-003")

	rec := httptest.NewRecorder()
	req := transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/cancel", "purchase")
	req.SetPathValue("id", po.Id)
	if err := HandlePOCancel(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	var got POListItem
	decodeBody(t, rec, &got)
	if got.Status != "cancelled" {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
}

func TestHandlePOCancel_SentOrder(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Sent Cancel Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-004")
	po.Set("status", "sent")
	if err := app.Save(po); err != nil {
		t.Fatalf("set status: %v", err)
	}

	rec := httptest.NewRecorder()
	req := transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/cancel", "admin")
	req.SetPathValue("id", po.Id)
	HandlePOCancel(app)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePOApprove_NotPending(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Not Pending Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-005")

	rec := httptest.NewRecorder()
	req := transitionRequest(t, app, http.MethodPost, "/api/pos/"+po.Id+"/approve", "admin")
	req.SetPathValue("id", po.Id)
	HandlePOApprove(app)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestMovePO_NoToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "No Token Site")
	vendor := testhelpers.CreateTestVendor(t, app, "Utkal Cement Agencies")
	testhelpers.LinkVendorToSite(t, app, site.Id, vendor.Id)
	po := testhelpers.CreateTestPurchaseOrder(t, app, site.Id, vendor.Id, "SBC-PO-TEST-26-27-006")
	testhelpers.CreateTestPOLineItem(t, app, po.Id, 1, "OPC 53 Grade Cement", 100, 380, 28)

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/pos/"+po.Id+"/submit", TransitionRequest{})
	req.SetPathValue("id", po.Id)
	HandlePOSubmit(app)(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401: %s", rec.Code, rec.Body.String())
	}
}
