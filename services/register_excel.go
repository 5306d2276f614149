package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateRegisterExcel renders a RegisterSheet as an Excel workbook.
// Layout: title row, subtitle row, column headers on row 4 with a freeze
// pane below them, data from row 5, then the summary block.
func GenerateRegisterExcel(sheet *RegisterSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheet.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Register"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{xlsInk}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: gridBorder(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: gridBorder(),
		Alignment: &excelize.Alignment{
			Vertical: "center",
			WrapText: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Column widths ───────────────────────────────────────────────────

	for i, col := range sheet.Columns {
		colLetter := registerColName(i)
		f.SetColWidth(sheetName, colLetter, colLetter, col.Width)
	}

	lastCol := registerColName(len(sheet.Columns) - 1)

	// ── Row 1: Title ────────────────────────────────────────────────────

	f.MergeCell(sheetName, "A1", lastCol+"1")
	f.SetCellValue(sheetName, "A1", escapeCell(sheet.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// ── Row 2: Subtitle ─────────────────────────────────────────────────

	f.MergeCell(sheetName, "A2", lastCol+"2")
	f.SetCellValue(sheetName, "A2", sheet.Subtitle)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	// ── Row 4: Column headers ───────────────────────────────────────────

	for i, col := range sheet.Columns {
		cell := fmt.Sprintf("%s4", registerColName(i))
		f.SetCellValue(sheetName, cell, col.Header)
	}
	f.SetCellStyle(sheetName, "A4", lastCol+"4", headerStyle)

	// Freeze everything above the first data row.
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      4,
		TopLeftCell: "A5",
		ActivePane:  "bottomLeft",
	})

	// ── Data rows from row 5 ────────────────────────────────────────────

	rowNum := 5
	for _, rowData := range sheet.Rows {
		rowStr := fmt.Sprintf("%d", rowNum)
		for colIdx, col := range sheet.Columns {
			cell := fmt.Sprintf("%s%s", registerColName(colIdx), rowStr)
			f.SetCellValue(sheetName, cell, escapeCell(rowData[col.Key]))
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)
		rowNum++
	}

	// ── Summary block ───────────────────────────────────────────────────

	if len(sheet.Summary) > 0 && len(sheet.Columns) >= 2 {
		rowNum++ // blank row before the summary
		labelCol := registerColName(len(sheet.Columns) - 2)
		valueCol := lastCol
		for _, s := range sheet.Summary {
			rowStr := fmt.Sprintf("%d", rowNum)
			f.SetCellValue(sheetName, labelCol+rowStr, s.Label+":")
			f.SetCellStyle(sheetName, labelCol+rowStr, labelCol+rowStr, summaryLabelStyle)
			f.SetCellValue(sheetName, valueCol+rowStr, s.Value)
			f.SetCellStyle(sheetName, valueCol+rowStr, valueCol+rowStr, summaryValueStyle)
			rowNum++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// registerColName converts a 0-based column index to an Excel column
// letter (A, B, ..., Z, AA, ...).
func registerColName(index int) string {
	name := ""
	for index >= 0 {
		name = string(rune('A'+index%26)) + name
		index = index/26 - 1
	}
	return name
}
