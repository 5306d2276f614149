package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/services"
	"sitebooks/testhelpers"
)

// multipartUpload builds a request with one uploaded file field.
func multipartUpload(t *testing.T, target, fileName, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleMaterialImportValidate_CleanFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImportValidate(app)

	csv := "Material Code,Name,Category,UOM,GST %\n" +
		"MAT-001,OPC 53 Cement,cement,bag,28\n" +
		"MAT-002,TMT 12mm,steel,kg,18\n"
	req := multipartUpload(t, "/api/imports/materials/validate", "materials.csv", csv)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp importValidateResponse
	decodeBody(t, rec, &resp)

	if resp.TotalRows != 2 || resp.ValidRows != 2 || resp.ErrorRows != 0 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if len(resp.ParsedRows) != 2 {
		t.Fatalf("expected parsed rows on clean file, got %d", len(resp.ParsedRows))
	}
	if resp.ParsedRows[0]["code"] != "MAT-001" {
		t.Errorf("expected mapped code column, got %q", resp.ParsedRows[0]["code"])
	}
}

func TestHandleMaterialImportValidate_BadRowsWithholdParsedRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImportValidate(app)

	csv := "Material Code,Name,UOM,GST %\n" +
		"MAT-001,OPC 53 Cement,bag,28\n" +
		",Missing Code,kg,18\n" +
		"MAT-003,Weird Tax,kg,7\n"
	req := multipartUpload(t, "/api/imports/materials/validate", "materials.csv", csv)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp importValidateResponse
	decodeBody(t, rec, &resp)

	if resp.ErrorRows != 2 {
		t.Errorf("expected 2 error rows, got %d", resp.ErrorRows)
	}
	if len(resp.ParsedRows) != 0 {
		t.Error("parsed rows must be withheld when the file has errors")
	}
	if len(resp.Errors) == 0 {
		t.Error("expected row errors in response")
	}
}

func TestHandleMaterialImportValidate_NoFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImportValidate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/imports/materials/validate", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleMaterialImportCommit_InsertsRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImportCommit(app)

	req := jsonRequest(t, http.MethodPost, "/api/imports/materials/commit", importCommitRequest{
		Rows: []map[string]string{
			{"code": "MAT-101", "name": "Flush Door", "uom": "nos", "category": "finishing"},
			{"code": "MAT-102", "name": "Hinges", "uom": "nos"},
		},
	})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result services.ImportResult
	decodeBody(t, rec, &result)

	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}
	if result.BatchID == "" {
		t.Error("expected a batch id on success")
	}

	records, err := app.FindRecordsByFilter("materials", "import_batch = {:b}", "", 0, 0,
		map[string]any{"b": result.BatchID})
	if err != nil || len(records) != 2 {
		t.Errorf("expected 2 records tagged with batch id, got %d (err %v)", len(records), err)
	}
}

func TestHandleMaterialImportCommit_RejectsDuplicateAgainstMaster(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestMaterial(t, app, "MAT-201", "Existing", "nos")

	handler := HandleMaterialImportCommit(app)

	req := jsonRequest(t, http.MethodPost, "/api/imports/materials/commit", importCommitRequest{
		Rows: []map[string]string{
			{"code": "MAT-201", "name": "Clash", "uom": "nos"},
		},
	})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var result services.ImportResult
	decodeBody(t, rec, &result)

	if result.Imported != 0 {
		t.Errorf("expected nothing imported, got %d", result.Imported)
	}
	if !result.RolledBack {
		t.Error("expected the import to be rolled back")
	}
}

func TestHandleMaterialImportCommit_EmptyRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleMaterialImportCommit(app)

	req := jsonRequest(t, http.MethodPost, "/api/imports/materials/commit", importCommitRequest{})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
