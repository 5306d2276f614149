// Package templates holds the server-rendered register pages. Only
// read-only registers render as HTML; every mutating surface speaks
// JSON. Components are written against the templ runtime directly so
// the pages stay dependency-free on the asset side.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// registerCSS is inlined into every page so the registers print cleanly
// without a static file pipeline.
const registerCSS = `
body { font-family: "Segoe UI", Arial, sans-serif; margin: 24px; color: #1f2328; }
h1 { font-size: 20px; margin: 0 0 4px 0; }
p.subtitle { color: #57606a; margin: 0 0 16px 0; font-size: 13px; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th { background: #333; color: #fff; text-align: left; padding: 6px 8px; }
td { border: 1px solid #d0d7de; padding: 5px 8px; }
tr:nth-child(even) td { background: #f6f8fa; }
td.num, th.num { text-align: right; }
td.ctr, th.ctr { text-align: center; }
dl.summary { margin-top: 16px; font-size: 13px; max-width: 420px; }
dl.summary dt { font-weight: 600; float: left; clear: left; width: 220px; }
dl.summary dd { margin: 0 0 4px 0; text-align: right; }
footer { margin-top: 24px; color: #8c959f; font-size: 11px; }
@media print { body { margin: 0; } }
`

// Layout wraps a body component in the shared page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), registerCSS,
		); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}
