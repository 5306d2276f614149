package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sitebooks/testhelpers"
)

func TestHandleIndentCreate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Indent Site")
	staffRec := testhelpers.CreateTestStaff(t, app, "Site Engineer", "stores", "tok-ind-create")

	handler := HandleIndentCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/indents", IndentRequest{
		IndentDate: "2026-06-15",
		Remarks:    "Slab casting consumables",
	})
	req = withStaff(req, &Staff{ID: staffRec.Id, Name: "Site Engineer", Role: "stores"})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var got IndentListItem
	decodeBody(t, rec, &got)
	if !strings.HasPrefix(got.IndentNo, "SBC-IND-") {
		t.Errorf("indent_no = %q, want SBC-IND- prefix", got.IndentNo)
	}
	if !strings.HasSuffix(got.IndentNo, "-001") {
		t.Errorf("indent_no = %q, want -001 suffix", got.IndentNo)
	}
	if got.Status != "draft" {
		t.Errorf("status = %q, want draft", got.Status)
	}
	if got.RequestedBy != "Site Engineer" {
		t.Errorf("requested_by = %q, want Site Engineer", got.RequestedBy)
	}
	if got.ItemCount != 0 {
		t.Errorf("item_count = %d, want 0", got.ItemCount)
	}
}

func TestHandleIndentCreate_DefaultsDateToToday(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Today Indent Site")

	handler := HandleIndentCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/indents", IndentRequest{})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got IndentListItem
	decodeBody(t, rec, &got)
	if got.IndentDate != time.Now().Format("2006-01-02") {
		t.Errorf("indent_date = %q, want today", got.IndentDate)
	}
}

func TestHandleIndentCreate_BadDate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Bad Date Site")

	handler := HandleIndentCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/"+site.Id+"/indents", IndentRequest{IndentDate: "15/06/2026"})
	req.SetPathValue("siteId", site.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleIndentCreate_UnknownSite(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleIndentCreate(app)

	req := jsonRequest(t, http.MethodPost, "/api/sites/missing123/indents", IndentRequest{})
	req.SetPathValue("siteId", "missing123")
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
