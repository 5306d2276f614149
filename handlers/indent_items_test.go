package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestHandleIndentItemAdd(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Item Add Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")
	steel := testhelpers.CreateTestMaterial(t, app, "MAT-002", "TMT 12mm", "MT")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")

	handler := HandleIndentItemAdd(app)

	req := jsonRequest(t, http.MethodPost, "/api/indents/"+indent.Id+"/items", IndentItemRequest{
		Material:   cement.Id,
		Qty:        200,
		RequiredBy: "2026-06-25",
	})
	req.SetPathValue("id", indent.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var first IndentItem
	decodeBody(t, rec, &first)
	if first.SortOrder != 1 {
		t.Errorf("first sort_order = %v, want 1", first.SortOrder)
	}
	if first.MaterialCode != "MAT-001" || first.UOM != "Bag" {
		t.Errorf("material not resolved: %+v", first)
	}

	req = jsonRequest(t, http.MethodPost, "/api/indents/"+indent.Id+"/items", IndentItemRequest{
		Material: steel.Id,
		Qty:      2.5,
	})
	req.SetPathValue("id", indent.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var second IndentItem
	decodeBody(t, rec, &second)
	if second.SortOrder != 2 {
		t.Errorf("second sort_order = %v, want 2", second.SortOrder)
	}
}

func TestHandleIndentItemAdd_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Item Invalid Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")
	draft := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")
	approved := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-002", "approved")

	handler := HandleIndentItemAdd(app)

	cases := []struct {
		name       string
		indentID   string
		body       IndentItemRequest
		wantStatus int
	}{
		{"zero qty", draft.Id, IndentItemRequest{Material: cement.Id}, http.StatusBadRequest},
		{"unknown material", draft.Id, IndentItemRequest{Material: "nope123456", Qty: 5}, http.StatusBadRequest},
		{"bad required_by", draft.Id, IndentItemRequest{Material: cement.Id, Qty: 5, RequiredBy: "soon"}, http.StatusBadRequest},
		{"approved indent frozen", approved.Id, IndentItemRequest{Material: cement.Id, Qty: 5}, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest(t, http.MethodPost, "/api/indents/"+tc.indentID+"/items", tc.body)
			req.SetPathValue("id", tc.indentID)
			rec := httptest.NewRecorder()
			handler(newTestRequestEvent(app, req, rec))
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleIndentItemUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Item Update Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")
	indent := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")
	item := testhelpers.CreateTestIndentItem(t, app, indent.Id, cement.Id, 100, 1)

	handler := HandleIndentItemUpdate(app)

	req := jsonRequest(t, http.MethodPatch, "/api/indents/items/"+item.Id, map[string]any{"qty": 150})
	req.SetPathValue("itemId", item.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var got IndentItem
	decodeBody(t, rec, &got)
	if got.Qty != 150 {
		t.Errorf("qty = %v, want 150", got.Qty)
	}

	req = jsonRequest(t, http.MethodPatch, "/api/indents/items/"+item.Id, map[string]any{"qty": -1})
	req.SetPathValue("itemId", item.Id)
	rec = httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative qty status = %d, want 400", rec.Code)
	}
}

func TestHandleIndentItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Item Delete Site")
	cement := testhelpers.CreateTestMaterial(t, app, "MAT-001", "OPC 53 Cement", "Bag")

	draft := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-001", "draft")
	draftItem := testhelpers.CreateTestIndentItem(t, app, draft.Id, cement.Id, 100, 1)
	submitted := testhelpers.CreateTestIndent(t, app, site.Id, "SBC-IND-TEST-25-26-002", "submitted")
	frozenItem := testhelpers.CreateTestIndentItem(t, app, submitted.Id, cement.Id, 50, 1)

	handler := HandleIndentItemDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/api/indents/items/"+frozenItem.Id, nil)
	req.SetPathValue("itemId", frozenItem.Id)
	rec := httptest.NewRecorder()
	handler(newTestRequestEvent(app, req, rec))
	if rec.Code != http.StatusConflict {
		t.Errorf("frozen item delete status = %d, want 409", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/indents/items/"+draftItem.Id, nil)
	req.SetPathValue("itemId", draftItem.Id)
	rec = httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if _, err := app.FindRecordById("indent_items", draftItem.Id); err == nil {
		t.Error("item still present after delete")
	}
}
