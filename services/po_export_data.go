package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// Company identity printed on outgoing documents.
const (
	companyName    = "Shree Balaji Constructions"
	companyAddress = "Plot 214, Chandrasekharpur, Bhubaneswar, Odisha 751016"
	companyEmail   = "purchase@sbcon.in"
	companyGSTIN   = "21AAECS1234F1Z7"
)

// POExportData is the flattened view of one purchase order that the
// PDF renderer consumes.
type POExportData struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyGSTIN   string

	PONumber     string
	OrderDate    string
	QuotationRef string
	IndentNo     string
	Status       string

	Vendor    POExportVendor
	DeliverTo POExportSite
	LineItems []POExportLineItem

	TaxableValue  float64
	GSTPercent    float64
	GSTAmount     float64
	RoundOff      float64
	GrandTotal    float64
	AmountInWords string

	PaymentTerms  string
	DeliveryTerms string
	WarrantyTerms string
}

// POExportVendor is the supplier block of the document, bank details
// included.
type POExportVendor struct {
	Name          string
	Address       string // multi-line
	GSTIN         string
	PAN           string
	ContactPerson string
	Phone         string
	Email         string

	BankBeneficiary string
	BankName        string
	BankAccountNo   string
	BankIFSC        string
	BankBranch      string
}

// POExportSite is the delivery destination block of the document.
type POExportSite struct {
	Name     string
	SiteCode string
	City     string
	State    string
}

// POExportLineItem is one printed row of the items table.
type POExportLineItem struct {
	SlNo         int
	Description  string
	HSNCode      string
	Qty          float64
	UOM          string
	Rate         float64
	TaxableValue float64
	GSTPercent   float64
	GSTAmount    float64
	Total        float64
}

// BuildPOExportData flattens a purchase order and its relations into
// the document view. Missing relations degrade to empty blocks so a
// half-filled draft still prints.
func BuildPOExportData(app core.App, poID string) (*POExportData, error) {
	po, err := app.FindRecordById("purchase_orders", poID)
	if err != nil {
		return nil, fmt.Errorf("purchase order not found: %w", err)
	}

	lineItems, calcItems := poLineItemBlocks(app, poID)
	totals := CalcPOTotals(calcItems)

	data := &POExportData{
		CompanyName:    companyName,
		CompanyAddress: companyAddress,
		CompanyEmail:   companyEmail,
		CompanyGSTIN:   companyGSTIN,

		PONumber:     po.GetString("po_number"),
		OrderDate:    FormatDateDMY(po.GetString("order_date")),
		QuotationRef: po.GetString("quotation_ref"),
		IndentNo:     poIndentNumber(app, po.GetString("indent")),
		Status:       po.GetString("status"),

		Vendor:    poVendorBlock(app, po.GetString("vendor")),
		DeliverTo: poDeliveryBlock(app, po.GetString("site")),
		LineItems: lineItems,

		TaxableValue:  totals.TaxableValue,
		GSTPercent:    totals.GSTPercent,
		GSTAmount:     totals.GSTAmount,
		RoundOff:      totals.RoundOff,
		GrandTotal:    totals.GrandTotal,
		AmountInWords: AmountToWords(totals.GrandTotal),

		PaymentTerms:  po.GetString("payment_terms"),
		DeliveryTerms: po.GetString("delivery_terms"),
		WarrantyTerms: po.GetString("warranty_terms"),
	}
	return data, nil
}

func poVendorBlock(app core.App, vendorID string) POExportVendor {
	if vendorID == "" {
		return POExportVendor{}
	}
	v, err := app.FindRecordById("vendors", vendorID)
	if err != nil {
		log.Printf("po export: vendor %s unavailable: %v", vendorID, err)
		return POExportVendor{}
	}

	cityLine := joinNonEmpty([]string{
		v.GetString("city"), v.GetString("state"), v.GetString("pin_code"),
	}, ", ")

	return POExportVendor{
		Name:          v.GetString("name"),
		Address:       joinNonEmpty([]string{v.GetString("address"), cityLine}, "\n"),
		GSTIN:         v.GetString("gstin"),
		PAN:           v.GetString("pan"),
		ContactPerson: v.GetString("contact_person"),
		Phone:         v.GetString("phone"),
		Email:         v.GetString("email"),

		BankBeneficiary: v.GetString("bank_beneficiary"),
		BankName:        v.GetString("bank_name"),
		BankAccountNo:   v.GetString("bank_account_no"),
		BankIFSC:        v.GetString("bank_ifsc"),
		BankBranch:      v.GetString("bank_branch"),
	}
}

func poDeliveryBlock(app core.App, siteID string) POExportSite {
	if siteID == "" {
		return POExportSite{}
	}
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		log.Printf("po export: site %s unavailable: %v", siteID, err)
		return POExportSite{}
	}
	return POExportSite{
		Name:     site.GetString("name"),
		SiteCode: site.GetString("site_code"),
		City:     site.GetString("city"),
		State:    site.GetString("state"),
	}
}

func poIndentNumber(app core.App, indentID string) string {
	if indentID == "" {
		return ""
	}
	indent, err := app.FindRecordById("indents", indentID)
	if err != nil {
		return ""
	}
	return indent.GetString("indent_no")
}

// poLineItemBlocks loads the line items in print order and returns the
// printable rows alongside the amounts that feed the totals.
func poLineItemBlocks(app core.App, poID string) ([]POExportLineItem, []LineItemAmounts) {
	records, err := app.FindRecordsByFilter(
		"po_line_items",
		"purchase_order = {:poId}",
		"sort_order",
		0,
		0,
		map[string]any{"poId": poID},
	)
	if err != nil {
		log.Printf("po export: line items for %s unavailable: %v", poID, err)
		return nil, nil
	}

	rows := make([]POExportLineItem, 0, len(records))
	amounts := make([]LineItemAmounts, 0, len(records))
	for i, item := range records {
		rate := item.GetFloat("rate")
		qty := item.GetFloat("qty")
		gstPercent := item.GetFloat("gst_percent")
		calc := CalcLineItem(rate, qty, gstPercent)

		amounts = append(amounts, calc)
		rows = append(rows, POExportLineItem{
			SlNo:         i + 1,
			Description:  item.GetString("description"),
			HSNCode:      item.GetString("hsn_code"),
			Qty:          qty,
			UOM:          item.GetString("uom"),
			Rate:         rate,
			TaxableValue: calc.TaxableValue,
			GSTPercent:   gstPercent,
			GSTAmount:    calc.GSTAmount,
			Total:        calc.Total,
		})
	}
	return rows, amounts
}
