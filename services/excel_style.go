package services

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Fill colours shared by the generated workbooks, matching the PDF
// palette.
const (
	xlsInk    = "#1E293B" // header bands
	xlsBand   = "#F1F5F9" // summary rows
	xlsStripe = "#F9FAFB" // shaded data rows
)

// escapeCell defuses spreadsheet formula injection. Excel treats cells
// beginning with =, +, -, @, a tab, a carriage return or a pipe as
// formulas, so a leading apostrophe forces them back to plain text.
func escapeCell(s string) string {
	if s != "" && strings.IndexByte("=+-@\t\r|", s[0]) >= 0 {
		return "'" + s
	}
	return s
}

// gridBorder returns a thin black border for all four cell sides.
func gridBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Color: "#000000", Style: 1},
		{Type: "right", Color: "#000000", Style: 1},
		{Type: "bottom", Color: "#000000", Style: 1},
		{Type: "left", Color: "#000000", Style: 1},
	}
}
