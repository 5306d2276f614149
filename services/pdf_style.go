package services

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Palette shared by the generated PDF documents.
var (
	pdfInk    = props.Color{Red: 30, Green: 41, Blue: 59}
	pdfMuted  = props.Color{Red: 106, Green: 114, Blue: 128}
	pdfBand   = props.Color{Red: 241, Green: 245, Blue: 249}
	pdfStripe = props.Color{Red: 249, Green: 250, Blue: 251}
	pdfWhite  = props.Color{Red: 255, Green: 255, Blue: 255}
)

// pdfLabel styles field and section labels.
func pdfLabel(a align.Type) props.Text {
	return props.Text{Size: 7, Style: fontstyle.Bold, Align: a, Color: &pdfMuted}
}

// pdfBody styles regular field values.
func pdfBody(a align.Type) props.Text {
	return props.Text{Size: 8, Align: a}
}

// pdfStrong styles emphasised values at the given size.
func pdfStrong(size float64, a align.Type) props.Text {
	return props.Text{Size: size, Style: fontstyle.Bold, Align: a}
}
