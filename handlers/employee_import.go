package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleEmployeeImportValidate parses an uploaded CSV/XLSX employee
// roster and reports row-level problems without writing anything.
func HandleEmployeeImportValidate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, fileName, err := uploadedImportFile(e)
		if err != nil {
			return fail(e, http.StatusBadRequest, "Please upload a CSV or Excel file", err)
		}
		defer file.Close()

		result, err := services.ValidateEmployeeImport(app, file, fileName)
		if err != nil {
			return fail(e, http.StatusBadRequest, err.Error(), nil)
		}

		return ok(e, importValidateResponseFrom(result))
	}
}

// HandleEmployeeImportCommit re-validates and inserts previously parsed
// employee rows.
func HandleEmployeeImportCommit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req importCommitRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}
		if len(req.Rows) == 0 {
			return fail(e, http.StatusBadRequest, "No rows to import. Validate a file first.", nil)
		}

		result, err := services.CommitEmployeeImport(app, req.Rows)
		if err != nil {
			log.Printf("employee_import: commit: %v", err)
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		return ok(e, result)
	}
}

// errorReportRequest is the JSON body of an error report download.
type errorReportRequest struct {
	Errors []services.ValidationError `json:"errors"`
}

// HandleImportErrorReport turns posted validation errors into a
// downloadable Excel report.
func HandleImportErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req errorReportRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid error data", err)
		}
		if len(req.Errors) == 0 {
			return fail(e, http.StatusBadRequest, "No errors to report", nil)
		}

		xlsxBytes, err := services.GenerateErrorReport(req.Errors)
		if err != nil {
			log.Printf("import_errors: %v", err)
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		filename := fmt.Sprintf("Import_Errors_%s.xlsx", time.Now().Format("2006-01-02"))
		return writeAttachment(e, contentTypeXLSX, filename, xlsxBytes)
	}
}
