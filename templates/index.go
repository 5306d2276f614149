package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// RegisterLink is one entry on the registers landing page.
type RegisterLink struct {
	Label string
	Href  string
	Count string
}

// RegistersIndexData feeds the registers landing page. SiteName/SiteCode
// are empty when no active site cookie is set; Note explains what is
// hidden in that case.
type RegistersIndexData struct {
	SiteName string
	SiteCode string
	Note     string
	Links    []RegisterLink
}

// RegistersIndex renders the landing page linking to every register.
func RegistersIndex(data RegistersIndexData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Registers</h1>`); err != nil {
			return err
		}
		if data.SiteName != "" {
			if _, err := fmt.Fprintf(w, `<p class="subtitle">%s (%s)</p>`,
				templ.EscapeString(data.SiteName), templ.EscapeString(data.SiteCode)); err != nil {
				return err
			}
		}
		if data.Note != "" {
			if _, err := fmt.Fprintf(w, `<p class="subtitle">%s</p>`, templ.EscapeString(data.Note)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table><thead><tr><th>Register</th><th class="num">Entries</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, link := range data.Links {
			if _, err := fmt.Fprintf(w, `<tr><td><a href="%s">%s</a></td><td class="num">%s</td></tr>`,
				templ.EscapeString(link.Href), templ.EscapeString(link.Label), templ.EscapeString(link.Count)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})

	return Layout("Registers", body)
}
