package services

import (
	"fmt"

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

// GenerateBOQPDF renders a bill of quantities as a landscape PDF and
// returns the raw bytes.
func GenerateBOQPDF(data *BOQExportData) ([]byte, error) {
	m := maroto.New(config.NewBuilder().
		WithOrientation(orientation.Horizontal).
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

	boqTitleBand(m, data)
	boqTable(m, data)
	boqClosing(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// boqTitleBand prints the document title over the site and reference
// line.
func boqTitleBand(m core.Maroto, data *BOQExportData) {
	mutedLine := func(s string, a align.Type) core.Col {
		return col.New(6).Add(text.New(s, props.Text{Size: 9, Align: a, Color: &pdfMuted}))
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(data.Title, pdfStrong(16, align.Center))),
		),
		row.New(8).Add(
			mutedLine(fmt.Sprintf("Site: %s (%s)", data.SiteName, data.SiteCode), align.Left),
			mutedLine(fmt.Sprintf("Ref: %s    Date: %s", data.ReferenceNumber, data.CreatedDate), align.Right),
		),
		row.New(4),
	)
}

// boqColumn describes one column of the BOQ grid; widths sum to
// maroto's 12-unit row.
type boqColumn struct {
	width int
	title string
	align align.Type
	cell  func(BOQExportRow) string
}

var boqColumns = []boqColumn{
	{1, "#", align.Center, func(r BOQExportRow) string { return r.Index }},
	{3, "Description", align.Left, func(r BOQExportRow) string {
		if r.Level > 0 {
			return "  " + r.Description
		}
		return r.Description
	}},
	{1, "Type", align.Center, func(r BOQExportRow) string { return r.ComponentType }},
	{1, "Qty", align.Right, func(r BOQExportRow) string { return FormatQty(r.Qty) }},
	{1, "UOM", align.Center, func(r BOQExportRow) string { return r.UOM }},
	{1, "Rate", align.Right, func(r BOQExportRow) string { return FormatINR(r.Rate) }},
	{2, "Amount", align.Right, func(r BOQExportRow) string { return FormatINR(r.Amount) }},
	{2, "Budgeted Amount", align.Right, func(r BOQExportRow) string {
		// Budgeted figures exist at work-item level only.
		if r.Level > 0 {
			return ""
		}
		return FormatINR(r.BudgetedAmount)
	}},
}

// boqTable prints the header band and one row per work item or rate
// analysis component. Work items are bold; component rows are shaded
// and indented.
func boqTable(m core.Maroto, data *BOQExportData) {
	header := make([]core.Col, 0, len(boqColumns))
	for _, c := range boqColumns {
		header = append(header, col.New(c.width).
			Add(text.New(c.title, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: c.align,
				Color: &pdfWhite,
			})).
			WithStyle(&props.Cell{BackgroundColor: &pdfInk}))
	}
	rows := []core.Row{row.New(8).Add(header...)}

	componentCell := &props.Cell{BackgroundColor: &pdfStripe}
	for _, r := range data.Rows {
		rowText := props.Text{Size: 7}
		var shade *props.Cell
		if r.Level == 0 {
			rowText.Size = 8
			rowText.Style = fontstyle.Bold
		} else {
			shade = componentCell
		}

		cols := make([]core.Col, 0, len(boqColumns))
		for _, c := range boqColumns {
			cellText := rowText
			cellText.Align = c.align
			cell := col.New(c.width).Add(text.New(c.cell(r), cellText))
			if shade != nil {
				cell = cell.WithStyle(shade)
			}
			cols = append(cols, cell)
		}
		rows = append(rows, row.New(7).Add(cols...))
	}

	m.AddRows(rows...)
}

// boqClosing prints the quoted and budgeted totals, the margin and the
// generated-on line.
func boqClosing(m core.Maroto, data *BOQExportData) {
	shaded := &props.Cell{BackgroundColor: &pdfBand}
	line := func(label string, amount float64) core.Row {
		return row.New(8).Add(
			col.New(8).Add(text.New(label, pdfStrong(9, align.Right))).WithStyle(shaded),
			col.New(4).Add(text.New(FormatINR(amount), pdfStrong(9, align.Right))).WithStyle(shaded),
		)
	}

	m.AddRows(
		row.New(6),
		line("Total Quoted Amount", data.TotalQuoted),
		line("Total Budgeted Amount", data.TotalBudgeted),
		line(fmt.Sprintf("Margin (%.1f%%)", data.MarginPercent), data.Margin),
		row.New(6),
		row.New(6).Add(col.New(12).Add(text.New("Generated on "+data.CreatedDate, props.Text{
			Size:  7,
			Align: align.Left,
			Color: &pdfMuted,
		}))),
	)
}
