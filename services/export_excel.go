package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// boqSheetColumn describes one column of the BOQ worksheet.
type boqSheetColumn struct {
	width float64
	title string
	cell  func(BOQExportRow) any
}

var boqSheetColumns = []boqSheetColumn{
	{6, "#", func(r BOQExportRow) any { return r.Index }},
	{38, "Description", func(r BOQExportRow) any {
		// The indent itself keeps component text inert to formula
		// parsing, a leading space is never a formula.
		if r.Level > 0 {
			return "  " + r.Description
		}
		return escapeCell(r.Description)
	}},
	{11, "Type", func(r BOQExportRow) any { return r.ComponentType }},
	{9, "Qty", func(r BOQExportRow) any { return r.Qty }},
	{8, "UOM", func(r BOQExportRow) any { return escapeCell(r.UOM) }},
	{14, "Rate", func(r BOQExportRow) any { return FormatINR(r.Rate) }},
	{16, "Amount", func(r BOQExportRow) any { return FormatINR(r.Amount) }},
	{14, "Budgeted Rate", workItemCell(func(r BOQExportRow) any { return FormatINR(r.BudgetedRate) })},
	{16, "Budgeted Amount", workItemCell(func(r BOQExportRow) any { return FormatINR(r.BudgetedAmount) })},
	{10, "HSN", workItemCell(func(r BOQExportRow) any { return escapeCell(r.HSNCode) })},
	{7, "GST%", workItemCell(func(r BOQExportRow) any { return r.GSTPercent })},
}

// workItemCell blanks a column on component rows; budget and tax
// figures exist at work item level only.
func workItemCell(cell func(BOQExportRow) any) func(BOQExportRow) any {
	return func(r BOQExportRow) any {
		if r.Level > 0 {
			return ""
		}
		return cell(r)
	}
}

// boqLastColumn returns the letter of the rightmost worksheet column.
func boqLastColumn() string {
	name, _ := excelize.ColumnNumberToName(len(boqSheetColumns))
	return name
}

// boqSheetName trims the title to Excel's 31 character sheet name
// limit.
func boqSheetName(title string) string {
	if title == "" {
		return "BOQ"
	}
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

// boqWorkbookStyles holds the style ids used by the BOQ worksheet.
type boqWorkbookStyles struct {
	title      int
	caption    int
	header     int
	workItem   int
	component  int
	totalLabel int
	totalValue int
}

func newBOQWorkbookStyles(f *excelize.File) (boqWorkbookStyles, error) {
	var st boqWorkbookStyles
	var err error
	build := func(id *int, s *excelize.Style) {
		if err != nil {
			return
		}
		*id, err = f.NewStyle(s)
	}

	build(&st.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	build(&st.caption, &excelize.Style{Font: &excelize.Font{Size: 11}})
	build(&st.header, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{xlsInk}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    gridBorder(),
	})
	build(&st.workItem, &excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: gridBorder(),
	})
	build(&st.component, &excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{xlsStripe}, Pattern: 1},
		Border: gridBorder(),
	})
	build(&st.totalLabel, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	build(&st.totalValue, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}})

	if err != nil {
		return st, fmt.Errorf("build styles: %w", err)
	}
	return st, nil
}

// GenerateBOQExcel renders a bill of quantities as an Excel workbook
// and returns the raw bytes.
func GenerateBOQExcel(data *BOQExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := boqSheetName(data.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	st, err := newBOQWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	for i, c := range boqSheetColumns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("column %s width: %w", name, err)
		}
	}

	if err := writeBOQCaption(f, sheet, st, data); err != nil {
		return nil, err
	}
	next, err := writeBOQGrid(f, sheet, st, data.Rows)
	if err != nil {
		return nil, err
	}
	writeBOQTotals(f, sheet, st, next+1, data)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBOQCaption prints the title, site and reference lines across
// the top of the sheet. The reference row stays blank when the BOQ has
// no reference number.
func writeBOQCaption(f *excelize.File, sheet string, st boqWorkbookStyles, data *BOQExportData) error {
	lines := [4]string{
		escapeCell(data.Title),
		fmt.Sprintf("Site: %s (%s)", data.SiteName, data.SiteCode),
		"",
		"Date: " + data.CreatedDate,
	}
	if data.ReferenceNumber != "" {
		lines[2] = "Ref: " + data.ReferenceNumber
	}

	last := boqLastColumn()
	for i, value := range lines {
		if value == "" {
			continue
		}
		from := fmt.Sprintf("A%d", i+1)
		to := fmt.Sprintf("%s%d", last, i+1)
		if err := f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("merge caption row %d: %w", i+1, err)
		}
		f.SetCellValue(sheet, from, value)
		style := st.caption
		if i == 0 {
			style = st.title
		}
		f.SetCellStyle(sheet, from, to, style)
	}
	return nil
}

// writeBOQGrid prints the column headers on row 6 and one row per work
// item or component below them, and reports the first free row after
// the grid.
func writeBOQGrid(f *excelize.File, sheet string, st boqWorkbookStyles, rows []BOQExportRow) (int, error) {
	last := boqLastColumn()

	titles := make([]any, len(boqSheetColumns))
	for i, c := range boqSheetColumns {
		titles[i] = c.title
	}
	if err := f.SetSheetRow(sheet, "A6", &titles); err != nil {
		return 0, fmt.Errorf("header row: %w", err)
	}
	f.SetCellStyle(sheet, "A6", last+"6", st.header)

	num := 7
	for _, r := range rows {
		values := make([]any, len(boqSheetColumns))
		for i, c := range boqSheetColumns {
			values[i] = c.cell(r)
		}
		anchor := fmt.Sprintf("A%d", num)
		if err := f.SetSheetRow(sheet, anchor, &values); err != nil {
			return 0, fmt.Errorf("row %d: %w", num, err)
		}
		style := st.workItem
		if r.Level > 0 {
			style = st.component
		}
		f.SetCellStyle(sheet, anchor, fmt.Sprintf("%s%d", last, num), style)
		num++
	}
	return num, nil
}

// writeBOQTotals prints the quoted and budgeted totals and the margin
// below the grid, labels in the Rate column with figures beside them.
func writeBOQTotals(f *excelize.File, sheet string, st boqWorkbookStyles, num int, data *BOQExportData) {
	line := func(label string, amount float64) {
		labelCell := fmt.Sprintf("F%d", num)
		valueCell := fmt.Sprintf("G%d", num)
		f.SetCellValue(sheet, labelCell, label)
		f.SetCellStyle(sheet, labelCell, labelCell, st.totalLabel)
		f.SetCellValue(sheet, valueCell, FormatINR(amount))
		f.SetCellStyle(sheet, valueCell, valueCell, st.totalValue)
		num++
	}

	line("Total Quoted:", data.TotalQuoted)
	line("Total Budgeted:", data.TotalBudgeted)
	line(fmt.Sprintf("Margin (%.1f%%):", data.MarginPercent), data.Margin)
}
