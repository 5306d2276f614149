package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
	"sitebooks/templates"
)

// registerBuilder assembles a register sheet from the request. Builders
// resolve their own scope (site, period) from path and query values. A
// nil sheet means the builder already wrote the error response.
type registerBuilder func(e *core.RequestEvent) (*services.RegisterSheet, error)

func renderRegisterPage(e *core.RequestEvent, build registerBuilder) error {
	sheet, err := build(e)
	if sheet == nil {
		return err
	}
	return templates.RegisterPage(sheet).Render(e.Request.Context(), e.Response)
}

func renderRegisterExcel(e *core.RequestEvent, build registerBuilder) error {
	sheet, err := build(e)
	if sheet == nil {
		return err
	}
	xlsxBytes, err := services.GenerateRegisterExcel(sheet)
	if err != nil {
		return fail(e, http.StatusInternalServerError, "Could not generate Excel file", err)
	}
	return writeAttachment(e, contentTypeXLSX, sanitizeFilename(sheet.Title)+".xlsx", xlsxBytes)
}

func renderRegisterPDF(e *core.RequestEvent, build registerBuilder) error {
	sheet, err := build(e)
	if sheet == nil {
		return err
	}
	pdfBytes, err := services.GenerateRegisterPDF(sheet)
	if err != nil {
		return fail(e, http.StatusInternalServerError, "Could not generate PDF", err)
	}
	return writeAttachment(e, contentTypePDF, sanitizeFilename(sheet.Title)+".pdf", pdfBytes)
}

// cashbookRegisterBuilder scopes the cashbook register to the site in
// the path and the optional from/to query bounds.
func cashbookRegisterBuilder(app *pocketbase.PocketBase) registerBuilder {
	return func(e *core.RequestEvent) (*services.RegisterSheet, error) {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return nil, fail(e, http.StatusNotFound, "Site not found", err)
		}

		fromDate, toDate, err := parseDateRange(e)
		if err != nil {
			return nil, fail(e, http.StatusBadRequest, "Dates must be YYYY-MM-DD", err)
		}

		sheet, err := services.BuildCashbookRegister(app, siteID, fromDate, toDate)
		if err != nil {
			return nil, fail(e, http.StatusInternalServerError, "Could not build cashbook register", err)
		}
		return sheet, nil
	}
}

func siteRegisterBuilder(app *pocketbase.PocketBase, build func(core.App, string) (*services.RegisterSheet, error), what string) registerBuilder {
	return func(e *core.RequestEvent) (*services.RegisterSheet, error) {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return nil, fail(e, http.StatusNotFound, "Site not found", err)
		}
		sheet, err := build(app, siteID)
		if err != nil {
			return nil, fail(e, http.StatusInternalServerError, "Could not build "+what, err)
		}
		return sheet, nil
	}
}

// assetRegisterBuilder covers all sites unless a site query parameter
// narrows it down.
func assetRegisterBuilder(app *pocketbase.PocketBase) registerBuilder {
	return func(e *core.RequestEvent) (*services.RegisterSheet, error) {
		siteID := e.Request.URL.Query().Get("site")
		if siteID != "" {
			if _, err := app.FindRecordById("sites", siteID); err != nil {
				return nil, fail(e, http.StatusNotFound, "Site not found", err)
			}
		}
		sheet, err := services.BuildAssetRegister(app, siteID)
		if err != nil {
			return nil, fail(e, http.StatusInternalServerError, "Could not build asset register", err)
		}
		return sheet, nil
	}
}

func vendorRegisterBuilder(app *pocketbase.PocketBase) registerBuilder {
	return func(e *core.RequestEvent) (*services.RegisterSheet, error) {
		sheet, err := services.BuildVendorRegister(app)
		if err != nil {
			return nil, fail(e, http.StatusInternalServerError, "Could not build vendor directory", err)
		}
		return sheet, nil
	}
}

// HandleCashbookRegisterPage renders the cashbook as a printable page.
func HandleCashbookRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPage(e, cashbookRegisterBuilder(app))
	}
}

// HandleCashbookRegisterExcel streams the cashbook as an Excel workbook.
func HandleCashbookRegisterExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterExcel(e, cashbookRegisterBuilder(app))
	}
}

// HandleCashbookRegisterPDF streams the cashbook as a PDF.
func HandleCashbookRegisterPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPDF(e, cashbookRegisterBuilder(app))
	}
}

// HandleStockRegisterPage renders the closing stock as a printable page.
func HandleStockRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPage(e, siteRegisterBuilder(app, services.BuildStockRegister, "stock register"))
	}
}

// HandleStockRegisterExcel streams the closing stock as an Excel workbook.
func HandleStockRegisterExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterExcel(e, siteRegisterBuilder(app, services.BuildStockRegister, "stock register"))
	}
}

// HandleStockRegisterPDF streams the closing stock as a PDF.
func HandleStockRegisterPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPDF(e, siteRegisterBuilder(app, services.BuildStockRegister, "stock register"))
	}
}

// HandleWageRegisterPage renders the wage sheet as a printable page.
func HandleWageRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPage(e, siteRegisterBuilder(app, services.BuildWageRegister, "wage sheet"))
	}
}

// HandleWageRegisterExcel streams the wage sheet as an Excel workbook.
func HandleWageRegisterExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterExcel(e, siteRegisterBuilder(app, services.BuildWageRegister, "wage sheet"))
	}
}

// HandleWageRegisterPDF streams the wage sheet as a PDF.
func HandleWageRegisterPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPDF(e, siteRegisterBuilder(app, services.BuildWageRegister, "wage sheet"))
	}
}

// HandleAssetRegisterPage renders the asset register as a printable
// page, across all sites or narrowed by the site query parameter.
func HandleAssetRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPage(e, assetRegisterBuilder(app))
	}
}

// HandleAssetRegisterExcel streams the asset register as an Excel workbook.
func HandleAssetRegisterExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterExcel(e, assetRegisterBuilder(app))
	}
}

// HandleAssetRegisterPDF streams the asset register as a PDF.
func HandleAssetRegisterPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPDF(e, assetRegisterBuilder(app))
	}
}

// HandleVendorRegisterPage renders the vendor directory as a printable page.
func HandleVendorRegisterPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPage(e, vendorRegisterBuilder(app))
	}
}

// HandleVendorRegisterExcel streams the vendor directory as an Excel workbook.
func HandleVendorRegisterExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterExcel(e, vendorRegisterBuilder(app))
	}
}

// HandleVendorRegisterPDF streams the vendor directory as a PDF.
func HandleVendorRegisterPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderRegisterPDF(e, vendorRegisterBuilder(app))
	}
}
