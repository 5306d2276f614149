package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
	"sitebooks/templates"
)

// BuildRegistersIndexData assembles the registers landing page from the
// request context. Site-scoped registers appear only when an active
// site cookie is set; the asset register and vendor directory are
// always listed.
func BuildRegistersIndexData(r *http.Request, app *pocketbase.PocketBase) templates.RegistersIndexData {
	data := templates.RegistersIndexData{}

	site := GetActiveSite(r)
	if site != nil {
		data.SiteName = site.Name
		data.SiteCode = site.Code

		data.Links = append(data.Links,
			templates.RegisterLink{
				Label: "Cashbook",
				Href:  "/registers/cashbook/" + site.ID,
				Count: countRecords(app, "cash_vouchers", "site = {:id}", site.ID),
			},
			templates.RegisterLink{
				Label: "Stock Register",
				Href:  "/registers/stock/" + site.ID,
				Count: stockMaterialCount(app, site.ID),
			},
			templates.RegisterLink{
				Label: "Wage Sheet",
				Href:  "/registers/wages/" + site.ID,
				Count: countRecords(app, "manpower_assignments", "site = {:id} && status = 'active'", site.ID),
			},
			templates.RegisterLink{
				Label: "Asset Register (this site)",
				Href:  "/registers/assets?site=" + site.ID,
				Count: countRecords(app, "assets", "site = {:id}", site.ID),
			},
		)
	} else {
		data.Note = "No active site selected; site registers are hidden."
	}

	assets, _ := app.FindAllRecords("assets")
	vendors, _ := app.FindAllRecords("vendors")
	data.Links = append(data.Links,
		templates.RegisterLink{
			Label: "Asset Register (all sites)",
			Href:  "/registers/assets",
			Count: fmt.Sprintf("%d", len(assets)),
		},
		templates.RegisterLink{
			Label: "Vendor Directory",
			Href:  "/registers/vendors",
			Count: fmt.Sprintf("%d", len(vendors)),
		},
	)

	return data
}

func countRecords(app *pocketbase.PocketBase, collection, filter, siteID string) string {
	records, err := app.FindRecordsByFilter(collection, filter, "", 0, 0, map[string]any{"id": siteID})
	if err != nil {
		return "0"
	}
	return fmt.Sprintf("%d", len(records))
}

// stockMaterialCount counts materials with ledger movement, matching
// the stock register's row count rather than raw entry count.
func stockMaterialCount(app *pocketbase.PocketBase, siteID string) string {
	rows, err := services.GetStockSummary(app, siteID)
	if err != nil {
		return "0"
	}
	return fmt.Sprintf("%d", len(rows))
}

// HandleRegistersIndex renders the registers landing page.
func HandleRegistersIndex(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := BuildRegistersIndexData(e.Request, app)
		return templates.RegistersIndex(data).Render(e.Request.Context(), e.Response)
	}
}
