package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleSiteActivate sets the active_site cookie so subsequent requests
// are scoped to this site by the middleware.
func HandleSiteActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("id")

		site, err := app.FindRecordById("sites", siteID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_site",
			Value:    siteID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return ok(e, map[string]string{
			"active_site": siteID,
			"name":        site.GetString("name"),
		})
	}
}

// HandleSiteDeactivate clears the active_site cookie.
func HandleSiteDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_site",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		return ok(e, map[string]string{"active_site": ""})
	}
}
