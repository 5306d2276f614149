package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/testhelpers"
)

// withStaff stores a staff identity directly in the request context,
// bypassing the auth middleware for handler-level tests.
func withStaff(req *http.Request, staff *Staff) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), StaffKey, staff))
}

// authedRequest builds a request carrying the role via context.
func authedRequest(method, target, role string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return withStaff(req, &Staff{ID: "stf_" + role, Name: "Test " + role, Role: role})
}

func seedStaffToken(t *testing.T, app *pocketbase.PocketBase, role, token string) {
	t.Helper()
	testhelpers.CreateTestStaff(t, app, "Token "+role, role, token)
}

func TestGetStaff_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetStaff(req); got != nil {
		t.Errorf("expected nil staff, got %+v", got)
	}
}

func TestStaffAuthMiddleware_BearerToken(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedStaffToken(t, app, "accounts", "tok-accounts-1")

	middleware := StaffAuthMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/sites", nil)
	req.Header.Set("Authorization", "Bearer tok-accounts-1")
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	_ = middleware(e)

	staff := GetStaff(e.Request)
	if staff == nil {
		t.Fatal("expected staff in context after middleware")
	}
	if staff.Role != "accounts" {
		t.Errorf("expected role accounts, got %q", staff.Role)
	}
}

func TestStaffAuthMiddleware_XApiTokenHeader(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	seedStaffToken(t, app, "stores", "tok-stores-1")

	middleware := StaffAuthMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/sites", nil)
	req.Header.Set("X-Api-Token", "tok-stores-1")
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	_ = middleware(e)

	staff := GetStaff(e.Request)
	if staff == nil || staff.Role != "stores" {
		t.Fatalf("expected stores staff in context, got %+v", staff)
	}
}

func TestStaffAuthMiddleware_UnknownTokenStaysAnonymous(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	middleware := StaffAuthMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/sites", nil)
	req.Header.Set("Authorization", "Bearer nope")
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	_ = middleware(e)

	if staff := GetStaff(e.Request); staff != nil {
		t.Errorf("expected anonymous request, got %+v", staff)
	}
}

func TestActiveSiteMiddleware_WithCookie(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	site := testhelpers.CreateTestSite(t, app, "Cookie Site")

	middleware := ActiveSiteMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "active_site", Value: site.Id})
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	_ = middleware(e)

	active := GetActiveSite(e.Request)
	if active == nil {
		t.Fatal("expected active site in context")
	}
	if active.Name != "Cookie Site" {
		t.Errorf("expected 'Cookie Site', got %q", active.Name)
	}
}

func TestActiveSiteMiddleware_InvalidCookieCleared(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	middleware := ActiveSiteMiddleware(app)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "active_site", Value: "nonexistent"})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	_ = middleware(e)

	if active := GetActiveSite(e.Request); active != nil {
		t.Errorf("expected nil active site, got %+v", active)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "active_site" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected stale cookie to be cleared")
	}
}

func TestRequireRole(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handlerRan := false
	wrapped := RequireRole(func(e *core.RequestEvent) error {
		handlerRan = true
		return e.String(http.StatusOK, "ok")
	}, "accounts")

	tests := []struct {
		name     string
		staff    *Staff
		wantCode int
		wantRun  bool
	}{
		{"no staff", nil, http.StatusUnauthorized, false},
		{"wrong role", &Staff{Role: "hr"}, http.StatusForbidden, false},
		{"viewer blocked", &Staff{Role: "viewer"}, http.StatusForbidden, false},
		{"matching role", &Staff{Role: "accounts"}, http.StatusOK, true},
		{"admin always passes", &Staff{Role: "admin"}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan = false
			req := httptest.NewRequest(http.MethodPost, "/x", nil)
			if tt.staff != nil {
				req = withStaff(req, tt.staff)
			}
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			if err := wrapped(e); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if handlerRan != tt.wantRun {
				t.Errorf("handler run = %v, want %v", handlerRan, tt.wantRun)
			}
		})
	}
}

func TestRequireStaff(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	wrapped := RequireStaff(func(e *core.RequestEvent) error {
		return e.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	if err := wrapped(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: expected 401, got %d", rec.Code)
	}

	req = authedRequest(http.MethodGet, "/x", "viewer")
	rec = httptest.NewRecorder()
	if err := wrapped(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("viewer: expected 200, got %d", rec.Code)
	}
}
