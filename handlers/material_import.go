package handlers

import (
	"log"
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// importValidateResponse carries the validation summary plus, when the
// file is clean, the parsed rows the client posts back to commit.
type importValidateResponse struct {
	TotalRows  int                        `json:"total_rows"`
	ValidRows  int                        `json:"valid_rows"`
	ErrorRows  int                        `json:"error_rows"`
	Errors     []services.ValidationError `json:"errors"`
	ParsedRows []map[string]string        `json:"parsed_rows,omitempty"`
}

// importCommitRequest is the JSON body of a commit call.
type importCommitRequest struct {
	Rows []map[string]string `json:"rows"`
}

func importValidateResponseFrom(result *services.ValidationResult) importValidateResponse {
	resp := importValidateResponse{
		TotalRows: result.TotalRows,
		ValidRows: result.ValidRows,
		ErrorRows: result.ErrorRows,
		Errors:    result.Errors,
	}
	// Parsed rows only travel back on a clean file so a broken upload
	// cannot be committed by accident.
	if result.ErrorRows == 0 {
		resp.ParsedRows = result.ParsedRows
	}
	return resp
}

// uploadedImportFile extracts the uploaded file from a multipart body.
func uploadedImportFile(e *core.RequestEvent) (multipart.File, string, error) {
	if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
		return nil, "", err
	}
	file, header, err := e.Request.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	return file, header.Filename, nil
}

// HandleMaterialImportValidate parses an uploaded CSV/XLSX material
// master and reports row-level problems without writing anything.
func HandleMaterialImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, fileName, err := uploadedImportFile(e)
		if err != nil {
			return fail(e, http.StatusBadRequest, "Please upload a CSV or Excel file", err)
		}
		defer file.Close()

		result, err := services.ValidateMaterialImport(app, file, fileName)
		if err != nil {
			return fail(e, http.StatusBadRequest, err.Error(), nil)
		}

		return ok(e, importValidateResponseFrom(result))
	}
}

// HandleMaterialImportCommit re-validates and inserts previously parsed
// material rows.
func HandleMaterialImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req importCommitRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}
		if len(req.Rows) == 0 {
			return fail(e, http.StatusBadRequest, "No rows to import. Validate a file first.", nil)
		}

		result, err := services.CommitMaterialImport(app, req.Rows)
		if err != nil {
			log.Printf("material_import: commit: %v", err)
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		return ok(e, result)
	}
}
