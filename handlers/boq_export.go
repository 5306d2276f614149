package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandleBOQExportExcel streams a BOQ as an Excel workbook.
func HandleBOQExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")

		data, err := services.BuildBOQExportData(app, boqID)
		if err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		xlsxBytes, err := services.GenerateBOQExcel(data)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate Excel file", err)
		}

		filename := sanitizeFilename(data.Title) + ".xlsx"
		return writeAttachment(e, contentTypeXLSX, filename, xlsxBytes)
	}
}

// HandleBOQExportPDF streams a BOQ as a PDF document.
func HandleBOQExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")

		data, err := services.BuildBOQExportData(app, boqID)
		if err != nil {
			return fail(e, http.StatusNotFound, "BOQ not found", err)
		}

		pdfBytes, err := services.GenerateBOQPDF(data)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate PDF", err)
		}

		filename := sanitizeFilename(data.Title) + ".pdf"
		return writeAttachment(e, contentTypePDF, filename, pdfBytes)
	}
}
