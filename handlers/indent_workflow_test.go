package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"

	"sitebooks/testhelpers"
)

// transitionRequest builds an authed JSON transition request for a real
// staff record so the audit trail's actor relation resolves.
func transitionRequest(t *testing.T, app *pocketbase.PocketBase, method, target, role string) *http.Request {
	t.Helper()
	staffRec := testhelpers.CreateTestStaff(t, app, "Flow "+role, role, "tok-flow-"+role+"-"+target)
	req := jsonRequest(t, method, target, TransitionRequest{Comment: "ok by " + role})
	return withStaff(req, &Staff{ID: staffRec.Id, Name: staffRec.GetString("name"), Role: role})
}

func TestHandleIndentSubmit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Submit Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")
	testhelpers.CreateTestIndentItem(t, app, indent.Id, cement.Id, 100, 1)

	handler := HandleIndentSubmit(app)

	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/submit", "stores")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got IndentListItem
	decodeBody(t, rec, &got)
	if got.Status != "submitted" {
		t.Errorf("status = %q, want submitted", got.Status)
	}

	trail := approvalTrail(app, "indent", indent.Id)
	if len(trail) != 1 {
		t.Fatalf("trail rows = %d, want 1", len(trail))
	}
	if trail[0].FromStatus != "draft" || trail[0].ToStatus != "submitted" {
		t.Errorf("trail = %+v", trail[0])
	}
	if trail[0].ActorName != "Flow stores" {
		t.Errorf("actor_name = %q, want Flow stores", trail[0].ActorName)
	}
}

func TestHandleIndentSubmit_EmptyIndent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Empty Submit Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")

	handler := HandleIndentSubmit(app)

	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/submit", "stores")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleIndentApprove_TwoLevels(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Two Level Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "submitted")

	handler := HandleIndentApprove(app)

	// level one: store keeper
	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/approve", "stores")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("level one error: %v", err)
	}

	var got IndentListItem
	decodeBody(t, rec, &got)
	if got.Status != "site_approved" {
		t.Fatalf("after level one status = %q, want site_approved", got.Status)
	}

	// stores cannot sign level two
	req = transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/approve-again", "stores")
	req.SetPathValue("id", indent.Id)
	rec = httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusForbidden {
		t.Errorf("stores at level two status = %d, want 403: %s", rec.Code, rec.Body.String())
	}

	// level two: head office purchase
	req = transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/approve-final", "purchase")
	req.SetPathValue("id", indent.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("level two error: %v", err)
	}

	decodeBody(t, rec, &got)
	if got.Status != "approved" {
		t.Fatalf("after level two status = %q, want approved", got.Status)
	}

	trail := approvalTrail(app, "indent", indent.Id)
	if len(trail) != 2 {
		t.Errorf("trail rows = %d, want 2", len(trail))
	}
}

func TestHandleIndentApprove_NotAwaiting(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Not Awaiting Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")

	handler := HandleIndentApprove(app)

	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/approve", "admin")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleIndentReject(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Reject Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "submitted")

	handler := HandleIndentReject(app)

	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/reject", "stores")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got IndentListItem
	decodeBody(t, rec, &got)
	if got.Status != "rejected" {
		t.Errorf("status = %q, want rejected", got.Status)
	}
}

func TestHandleIndentCancel_ApprovedFrozen(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Cancel Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "approved")

	handler := HandleIndentCancel(app)

	// a fully approved indent can no longer be cancelled
	req := transitionRequest(t, app, http.MethodPost, "/api/indents/"+indent.Id+"/cancel", "admin")
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleIndentTransition_NoToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Anon Site")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "submitted")

	handler := HandleIndentReject(app)

	req := jsonRequest(t, http.MethodPost, "/api/indents/"+indent.Id+"/reject", TransitionRequest{})
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
