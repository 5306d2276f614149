package services

import (
	"fmt"
	"time"

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

// GenerateRegisterPDF renders a RegisterSheet as a landscape PDF.
// Only columns with a grid Span take part; the spans of a sheet's
// printable columns add up to 12.
func GenerateRegisterPDF(sheet *RegisterSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	printable := printableColumns(sheet.Columns)

	addRegisterHeader(m, sheet)
	addRegisterTableHeader(m, printable)
	for i, r := range sheet.Rows {
		addRegisterRow(m, printable, r, i%2 == 1)
	}
	addRegisterSummary(m, sheet.Summary)
	addRegisterFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate register PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// printableColumns filters to the columns that carry a PDF grid span.
func printableColumns(columns []RegisterColumn) []RegisterColumn {
	out := make([]RegisterColumn, 0, len(columns))
	for _, c := range columns {
		if c.Span > 0 {
			out = append(out, c)
		}
	}
	return out
}

func registerAlign(a string) align.Type {
	switch a {
	case "right":
		return align.Right
	case "center":
		return align.Center
	default:
		return align.Left
	}
}

// addRegisterHeader adds the title and subtitle rows.
func addRegisterHeader(m core.Maroto, sheet *RegisterSheet) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(sheet.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(sheet.Subtitle, props.Text{
					Size:  9,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addRegisterTableHeader adds the column header row.
func addRegisterTableHeader(m core.Maroto, columns []RegisterColumn) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := props.Cell{BackgroundColor: headerBg}

	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		headerText := props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: registerAlign(c.Align),
			Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		}
		cols = append(cols, col.New(c.Span).Add(text.New(c.Header, headerText)).WithStyle(&headerCell))
	}

	m.AddRows(row.New(8).Add(cols...))
}

// addRegisterRow adds one data row with alternating backgrounds.
func addRegisterRow(m core.Maroto, columns []RegisterColumn, r RegisterRow, shaded bool) {
	var cellStyle *props.Cell
	if shaded {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 248, Green: 249, Blue: 250}}
	}

	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cellText := props.Text{
			Size:  7,
			Align: registerAlign(c.Align),
		}
		cl := col.New(c.Span).Add(text.New(r[c.Key], cellText))
		if cellStyle != nil {
			cl = cl.WithStyle(cellStyle)
		}
		cols = append(cols, cl)
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addRegisterSummary adds the label/value block below the table.
func addRegisterSummary(m core.Maroto, summary []RegisterSummary) {
	if len(summary) == 0 {
		return
	}

	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	for _, s := range summary {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(s.Label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(s.Value, valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}
}

// addRegisterFooter adds the generated-at line.
func addRegisterFooter(m core.Maroto) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", time.Now().Format("02-01-2006 15:04")),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
