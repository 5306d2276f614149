package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// PORequest is the JSON body for creating a purchase order header.
type PORequest struct {
	Vendor        string `json:"vendor"`
	Indent        string `json:"indent"`
	OrderDate     string `json:"order_date"`
	QuotationRef  string `json:"quotation_ref"`
	PaymentTerms  string `json:"payment_terms"`
	DeliveryTerms string `json:"delivery_terms"`
	WarrantyTerms string `json:"warranty_terms"`
}

// POListItem is one purchase order header in responses.
type POListItem struct {
	ID            string  `json:"id"`
	SiteID        string  `json:"site"`
	PONumber      string  `json:"po_number"`
	VendorID      string  `json:"vendor"`
	VendorName    string  `json:"vendor_name"`
	IndentID      string  `json:"indent"`
	IndentNo      string  `json:"indent_no"`
	OrderDate     string  `json:"order_date"`
	Status        string  `json:"status"`
	QuotationRef  string  `json:"quotation_ref"`
	LineItemCount int     `json:"line_item_count"`
	GrandTotal    float64 `json:"grand_total"`
}

func poListItem(app *pocketbase.PocketBase, rec *core.Record) POListItem {
	item := POListItem{
		ID:           rec.Id,
		SiteID:       rec.GetString("site"),
		PONumber:     rec.GetString("po_number"),
		VendorID:     rec.GetString("vendor"),
		IndentID:     rec.GetString("indent"),
		OrderDate:    rec.GetString("order_date"),
		Status:       rec.GetString("status"),
		QuotationRef: rec.GetString("quotation_ref"),
	}
	if item.VendorID != "" {
		vendor, err := app.FindRecordById("vendors", item.VendorID)
		if err != nil {
			log.Printf("po: could not find vendor %s: %v", item.VendorID, err)
		} else {
			item.VendorName = vendor.GetString("name")
		}
	}
	if item.IndentID != "" {
		indent, err := app.FindRecordById("indents", item.IndentID)
		if err != nil {
			log.Printf("po: could not find indent %s: %v", item.IndentID, err)
		} else {
			item.IndentNo = indent.GetString("indent_no")
		}
	}

	lines, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:po}",
		"", 0, 0,
		map[string]any{"po": rec.Id},
	)
	if err != nil {
		log.Printf("po: could not load line items for %s: %v", rec.Id, err)
		return item
	}
	item.LineItemCount = len(lines)

	var calcs []services.LineItemAmounts
	for _, line := range lines {
		calcs = append(calcs, services.CalcLineItem(
			line.GetFloat("rate"),
			line.GetFloat("qty"),
			line.GetFloat("gst_percent"),
		))
	}
	item.GrandTotal = services.CalcPOTotals(calcs).GrandTotal
	return item
}

// vendorLinkedToSite reports whether a vendor appears in site_vendors for
// the given site.
func vendorLinkedToSite(app *pocketbase.PocketBase, siteID, vendorID string) bool {
	links, err := app.FindRecordsByFilter(
		"site_vendors",
		"site = {:site} && vendor = {:vendor}",
		"", 1, 0,
		map[string]any{"site": siteID, "vendor": vendorID},
	)
	if err != nil {
		log.Printf("po: could not check vendor link: %v", err)
		return false
	}
	return len(links) > 0
}

// HandlePOCreate opens a draft purchase order for a site. The PO number
// is generated, never supplied by the caller. The vendor must already be
// linked to the site, and an optional source indent must be an approved
// indent of the same site.
func HandlePOCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req PORequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		vendorID := strings.TrimSpace(req.Vendor)
		if vendorID == "" {
			return fail(e, http.StatusBadRequest, "Vendor is required", nil)
		}
		if _, err := app.FindRecordById("vendors", vendorID); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown vendor", err)
		}
		if !vendorLinkedToSite(app, siteID, vendorID) {
			return fail(e, http.StatusBadRequest, "Vendor is not linked to this site", nil)
		}

		indentID := strings.TrimSpace(req.Indent)
		if indentID != "" {
			indent, err := app.FindRecordById("indents", indentID)
			if err != nil {
				return fail(e, http.StatusBadRequest, "Unknown indent", err)
			}
			if indent.GetString("site") != siteID {
				return fail(e, http.StatusBadRequest, "Indent belongs to a different site", nil)
			}
			if indent.GetString("status") != "approved" {
				return fail(e, http.StatusConflict, "Only approved indents can source a purchase order", nil)
			}
		}

		orderDate := strings.TrimSpace(req.OrderDate)
		if orderDate == "" {
			orderDate = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", orderDate); err != nil {
			return fail(e, http.StatusBadRequest, "Order date must be YYYY-MM-DD", nil)
		}

		poNumber, err := services.GeneratePONumber(app, siteID, time.Now())
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate PO number", err)
		}

		col, err := app.FindCollectionByNameOrId("purchase_orders")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("vendor", vendorID)
		record.Set("indent", indentID)
		record.Set("po_number", poNumber)
		record.Set("order_date", orderDate)
		record.Set("quotation_ref", strings.TrimSpace(req.QuotationRef))
		record.Set("payment_terms", strings.TrimSpace(req.PaymentTerms))
		record.Set("delivery_terms", strings.TrimSpace(req.DeliveryTerms))
		record.Set("warranty_terms", strings.TrimSpace(req.WarrantyTerms))
		record.Set("status", "draft")

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save purchase order", err)
		}

		return created(e, poListItem(app, record))
	}
}
