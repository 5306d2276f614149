package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePOPDF renders a purchase order as a PDF document and returns
// the raw bytes.
func GeneratePOPDF(data *POExportData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &pdfMuted,
		}).
		Build())

	poLetterhead(m, data)
	poParties(m, data)
	poItemsTable(m, data)
	poMoneySummary(m, data)
	poTermsAndBank(m, data)
	poSignOff(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PO PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// poLetterhead prints the company identity opposite the document title,
// number and date.
func poLetterhead(m core.Maroto, data *POExportData) {
	contact := []string{}
	if data.CompanyEmail != "" {
		contact = append(contact, data.CompanyEmail)
	}
	if data.CompanyGSTIN != "" {
		contact = append(contact, "GSTIN: "+data.CompanyGSTIN)
	}

	m.AddRows(
		row.New(10).Add(
			col.New(7).Add(text.New(data.CompanyName, pdfStrong(14, align.Left))),
			col.New(5).Add(text.New("PURCHASE ORDER", props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: &pdfInk,
			})),
		),
		row.New(5).Add(
			col.New(7).Add(text.New(data.CompanyAddress, pdfBody(align.Left))),
			col.New(5).Add(text.New("PO No: "+data.PONumber, pdfStrong(10, align.Right))),
		),
		row.New(5).Add(
			col.New(7).Add(text.New(strings.Join(contact, "  |  "), props.Text{
				Size:  8,
				Align: align.Left,
				Color: &pdfMuted,
			})),
			col.New(5).Add(text.New("Dated: "+data.OrderDate, pdfBody(align.Right))),
		),
		row.New(4),
	)
}

// poParties prints the vendor identity beside the order metadata, then
// the billing and delivery addresses as one shaded band.
func poParties(m core.Maroto, data *POExportData) {
	v := data.Vendor

	// Left column: vendor lines under the bold name.
	var vendorLines []string
	if v.Address != "" {
		vendorLines = append(vendorLines, v.Address)
	}
	var ids []string
	if v.GSTIN != "" {
		ids = append(ids, "GSTIN: "+v.GSTIN)
	}
	if v.PAN != "" {
		ids = append(ids, "PAN: "+v.PAN)
	}
	if len(ids) > 0 {
		vendorLines = append(vendorLines, strings.Join(ids, "   "))
	}
	if contact := joinNonEmpty([]string{v.ContactPerson, v.Phone, v.Email}, " | "); contact != "" {
		vendorLines = append(vendorLines, "Contact: "+contact)
	}

	// Right column: order metadata pairs.
	meta := [][2]string{
		{"Quotation Ref", data.QuotationRef},
		{"Against Indent", data.IndentNo},
	}

	rows := []core.Row{
		row.New(6).Add(
			col.New(7).Add(text.New("VENDOR", pdfLabel(align.Left))),
			col.New(5).Add(text.New("ORDER DETAILS", pdfLabel(align.Right))),
		),
		row.New(7).Add(
			col.New(7).Add(text.New(v.Name, pdfStrong(9, align.Left))),
			col.New(3).Add(text.New("Order Date:", pdfLabel(align.Right))),
			col.New(2).Add(text.New(data.OrderDate, pdfBody(align.Right))),
		),
	}
	for i := 0; i < len(vendorLines) || i < len(meta); i++ {
		cols := []core.Col{}
		if i < len(vendorLines) {
			cols = append(cols, col.New(7).Add(text.New(vendorLines[i], pdfBody(align.Left))))
		} else {
			cols = append(cols, col.New(7))
		}
		if i < len(meta) {
			cols = append(cols,
				col.New(3).Add(text.New(meta[i][0]+":", pdfLabel(align.Right))),
				col.New(2).Add(text.New(meta[i][1], pdfBody(align.Right))),
			)
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	rows = append(rows, row.New(3))
	m.AddRows(rows...)

	site := data.DeliverTo
	siteName := site.Name
	if site.SiteCode != "" {
		siteName = fmt.Sprintf("%s (%s)", site.Name, site.SiteCode)
	}
	band := &props.Cell{BackgroundColor: &pdfBand}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("BILL TO", pdfLabel(align.Left))).WithStyle(band),
			col.New(6).Add(text.New("DELIVER TO (SITE)", pdfLabel(align.Left))).WithStyle(band),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.CompanyName, pdfStrong(8, align.Left))),
			col.New(6).Add(text.New(siteName, pdfStrong(8, align.Left))),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.CompanyAddress, pdfBody(align.Left))),
			col.New(6).Add(text.New(joinNonEmpty([]string{site.City, site.State}, ", "), pdfBody(align.Left))),
		),
		row.New(3),
	)
}

// poItemColumn describes one column of the line items grid. Widths sum
// to maroto's 12-unit row.
type poItemColumn struct {
	width int
	title string
	align align.Type
	cell  func(POExportLineItem) string
}

var poItemColumns = []poItemColumn{
	{1, "Sl", align.Center, func(it POExportLineItem) string { return fmt.Sprintf("%d", it.SlNo) }},
	{3, "Description", align.Left, func(it POExportLineItem) string { return it.Description }},
	{1, "HSN", align.Center, func(it POExportLineItem) string { return it.HSNCode }},
	{1, "Qty", align.Right, func(it POExportLineItem) string { return FormatQty(it.Qty) }},
	{1, "UOM", align.Center, func(it POExportLineItem) string { return it.UOM }},
	{1, "Rate", align.Right, func(it POExportLineItem) string { return FormatINR(it.Rate) }},
	{1, "Taxable", align.Right, func(it POExportLineItem) string { return FormatINR(it.TaxableValue) }},
	{1, "GST%", align.Center, func(it POExportLineItem) string { return fmt.Sprintf("%.0f%%", it.GSTPercent) }},
	{1, "GST Amt", align.Right, func(it POExportLineItem) string { return FormatINR(it.GSTAmount) }},
	{1, "Total", align.Right, func(it POExportLineItem) string { return FormatINR(it.Total) }},
}

// poItemsTable prints the line items grid: a dark header band over
// striped body rows.
func poItemsTable(m core.Maroto, data *POExportData) {
	header := make([]core.Col, 0, len(poItemColumns))
	for _, c := range poItemColumns {
		header = append(header, col.New(c.width).
			Add(text.New(c.title, props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: c.align,
				Color: &pdfWhite,
			})).
			WithStyle(&props.Cell{BackgroundColor: &pdfInk}))
	}
	rows := []core.Row{row.New(8).Add(header...)}

	for i, item := range data.LineItems {
		var stripe *props.Cell
		if i%2 == 1 {
			stripe = &props.Cell{BackgroundColor: &pdfStripe}
		}
		cols := make([]core.Col, 0, len(poItemColumns))
		for _, c := range poItemColumns {
			cell := col.New(c.width).Add(text.New(c.cell(item), props.Text{Size: 7, Align: c.align}))
			if stripe != nil {
				cell = cell.WithStyle(stripe)
			}
			cols = append(cols, cell)
		}
		rows = append(rows, row.New(7).Add(cols...))
	}

	rows = append(rows, row.New(2))
	m.AddRows(rows...)
}

// poMoneySummary prints the tax summary column and the amount in words.
func poMoneySummary(m core.Maroto, data *POExportData) {
	shaded := &props.Cell{BackgroundColor: &pdfBand}
	line := func(label string, amount float64) core.Row {
		return row.New(7).Add(
			col.New(9).Add(text.New(label, pdfStrong(8, align.Right))).WithStyle(shaded),
			col.New(3).Add(text.New(FormatINR(amount), pdfBody(align.Right))).WithStyle(shaded),
		)
	}

	grandCell := &props.Cell{BackgroundColor: &pdfInk}
	grandText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: &pdfWhite}

	rows := []core.Row{
		line("Taxable Value", data.TaxableValue),
		line(fmt.Sprintf("GST @ %.1f%%", data.GSTPercent), data.GSTAmount),
		line("Round Off", data.RoundOff),
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandText)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(data.GrandTotal), grandText)).WithStyle(grandCell),
		),
	}
	if data.AmountInWords != "" {
		rows = append(rows,
			row.New(3),
			row.New(7).Add(col.New(12).Add(text.New("Amount in Words: "+data.AmountInWords, props.Text{
				Size:  8,
				Style: fontstyle.BoldItalic,
				Align: align.Left,
			}))),
		)
	}
	rows = append(rows, row.New(3))
	m.AddRows(rows...)
}

// poTermsAndBank prints the terms block and the vendor bank block, each
// skipped entirely when empty.
func poTermsAndBank(m core.Maroto, data *POExportData) {
	section := func(title string) core.Row {
		return row.New(7).Add(col.New(12).Add(text.New(title, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: &pdfInk,
		})))
	}

	var termRows []core.Row
	for _, t := range [][2]string{
		{"Payment Terms", data.PaymentTerms},
		{"Delivery Terms", data.DeliveryTerms},
		{"Warranty Terms", data.WarrantyTerms},
	} {
		if t[1] == "" {
			continue
		}
		termRows = append(termRows,
			row.New(5).Add(col.New(12).Add(text.New(t[0], pdfLabel(align.Left)))),
			row.New(6).Add(col.New(12).Add(text.New(t[1], pdfBody(align.Left)))),
		)
	}
	if len(termRows) > 0 {
		m.AddRows(section("TERMS & CONDITIONS"))
		m.AddRows(termRows...)
		m.AddRows(row.New(3))
	}

	v := data.Vendor
	var bankRows []core.Row
	for _, b := range [][2]string{
		{"Beneficiary Name", v.BankBeneficiary},
		{"Bank Name", v.BankName},
		{"Account No", v.BankAccountNo},
		{"IFSC Code", v.BankIFSC},
		{"Branch", v.BankBranch},
	} {
		if b[1] == "" {
			continue
		}
		bankRows = append(bankRows, row.New(6).Add(
			col.New(3).Add(text.New(b[0], pdfLabel(align.Left))),
			col.New(9).Add(text.New(b[1], pdfBody(align.Left))),
		))
	}
	if len(bankRows) > 0 {
		m.AddRows(section("BANK DETAILS (VENDOR)"))
		m.AddRows(bankRows...)
		m.AddRows(row.New(3))
	}
}

// poSignOff leaves space for the vendor acceptance and the purchase
// department signature.
func poSignOff(m core.Maroto, data *POExportData) {
	rule := props.Text{Size: 8, Align: align.Center, Color: &pdfMuted}

	m.AddRows(
		row.New(12),
		row.New(6).Add(
			col.New(6).Add(text.New(strings.Repeat("_", 28), rule)),
			col.New(6).Add(text.New(strings.Repeat("_", 28), rule)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New("Vendor Acceptance", pdfLabel(align.Center))),
			col.New(6).Add(text.New("For "+data.CompanyName, pdfLabel(align.Center))),
		),
	)
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
