package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// HandlePOExportPDF streams the printable purchase order document.
func HandlePOExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("purchase_orders", poID); err != nil {
			return fail(e, http.StatusNotFound, "Purchase order not found", err)
		}

		data, err := services.BuildPOExportData(app, poID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not build purchase order data", err)
		}

		pdfBytes, err := services.GeneratePOPDF(data)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate PDF", err)
		}

		filename := sanitizeFilename(data.PONumber) + ".pdf"
		return writeAttachment(e, contentTypePDF, filename, pdfBytes)
	}
}
