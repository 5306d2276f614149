package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"sitebooks/services"
)

// RegisterPage renders a register sheet as a complete HTML page.
func RegisterPage(sheet *services.RegisterSheet) templ.Component {
	return Layout(sheet.Title, RegisterTable(sheet))
}

// RegisterTable renders the title, subtitle, tabular data and summary
// lines of a register sheet. The same sheet feeds the Excel and PDF
// generators, so this component stays a dumb renderer.
func RegisterTable(sheet *services.RegisterSheet) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(sheet.Title)); err != nil {
			return err
		}
		if sheet.Subtitle != "" {
			if _, err := fmt.Fprintf(w, `<p class="subtitle">%s</p>`, templ.EscapeString(sheet.Subtitle)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table><thead><tr>`); err != nil {
			return err
		}
		for _, c := range sheet.Columns {
			if _, err := fmt.Fprintf(w, `<th%s>%s</th>`, alignClass(c.Align), templ.EscapeString(c.Header)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
			return err
		}

		for _, r := range sheet.Rows {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, c := range sheet.Columns {
				if _, err := fmt.Fprintf(w, `<td%s>%s</td>`, alignClass(c.Align), templ.EscapeString(r[c.Key])); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tr>`); err != nil {
				return err
			}
		}
		if len(sheet.Rows) == 0 {
			if _, err := fmt.Fprintf(w, `<tr><td colspan="%d" class="ctr">No entries</td></tr>`, len(sheet.Columns)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}

		if len(sheet.Summary) > 0 {
			if _, err := io.WriteString(w, `<dl class="summary">`); err != nil {
				return err
			}
			for _, s := range sheet.Summary {
				if _, err := fmt.Fprintf(w, `<dt>%s</dt><dd>%s</dd>`,
					templ.EscapeString(s.Label), templ.EscapeString(s.Value)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</dl>`); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<footer>Generated on %s</footer>`,
			templ.EscapeString(time.Now().Format("02 Jan 2006 15:04")))
		return err
	})
}

func alignClass(align string) string {
	switch align {
	case "right":
		return ` class="num"`
	case "center":
		return ` class="ctr"`
	default:
		return ""
	}
}
