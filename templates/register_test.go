package templates

import (
	"context"
	"strings"
	"testing"

	"sitebooks/services"
)

func renderToString(t *testing.T, sheet *services.RegisterSheet) string {
	t.Helper()

	var sb strings.Builder
	if err := RegisterPage(sheet).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render register page: %v", err)
	}
	return sb.String()
}

func TestRegisterPage_RendersRowsAndSummary(t *testing.T) {
	sheet := &services.RegisterSheet{
		Title:    "Cashbook - Ring Road Flyover (KNP01)",
		Subtitle: "2 vouchers",
		Columns: []services.RegisterColumn{
			{Header: "Date", Key: "date"},
			{Header: "Amount", Key: "amount", Align: "right"},
		},
		Rows: []services.RegisterRow{
			{"date": "01-05-2026", "amount": "₹1,000.00"},
			{"date": "02-05-2026", "amount": "₹2,500.00"},
		},
		Summary: []services.RegisterSummary{
			{Label: "Closing Balance", Value: "₹3,500.00"},
		},
	}

	html := renderToString(t, sheet)

	for _, want := range []string{
		"<title>Cashbook - Ring Road Flyover (KNP01)</title>",
		"<h1>Cashbook - Ring Road Flyover (KNP01)</h1>",
		"2 vouchers",
		"01-05-2026",
		"₹2,500.00",
		"Closing Balance",
		"₹3,500.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestRegisterPage_EscapesCellValues(t *testing.T) {
	sheet := &services.RegisterSheet{
		Title:   "Stock Register",
		Columns: []services.RegisterColumn{{Header: "Material", Key: "material"}},
		Rows: []services.RegisterRow{
			{"material": `<script>alert("x")</script>`},
		},
	}

	html := renderToString(t, sheet)

	if strings.Contains(html, "<script>alert") {
		t.Error("cell value was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag in output")
	}
}

func TestRegisterPage_EmptySheetShowsPlaceholder(t *testing.T) {
	sheet := &services.RegisterSheet{
		Title: "Asset Register - All Sites",
		Columns: []services.RegisterColumn{
			{Header: "Code", Key: "code"},
			{Header: "Name", Key: "name"},
		},
	}

	html := renderToString(t, sheet)

	if !strings.Contains(html, "No entries") {
		t.Error("expected empty-state row")
	}
	if !strings.Contains(html, `colspan="2"`) {
		t.Error("expected colspan to cover all columns")
	}
}

func TestRegisterPage_AlignmentClasses(t *testing.T) {
	sheet := &services.RegisterSheet{
		Title: "Wage Sheet",
		Columns: []services.RegisterColumn{
			{Header: "Name", Key: "name"},
			{Header: "Net", Key: "net", Align: "right"},
			{Header: "Status", Key: "status", Align: "center"},
		},
		Rows: []services.RegisterRow{{"name": "Ram", "net": "₹100.00", "status": "OK"}},
	}

	html := renderToString(t, sheet)

	if !strings.Contains(html, `<th class="num">Net</th>`) {
		t.Error("expected right-aligned header class")
	}
	if !strings.Contains(html, `<td class="ctr">OK</td>`) {
		t.Error("expected centered cell class")
	}
}
