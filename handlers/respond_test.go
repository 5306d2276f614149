package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sitebooks/testhelpers"
)

func TestParseListParams_Defaults(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/materials", nil)
	e := newTestRequestEvent(app, req, httptest.NewRecorder())

	params := parseListParams(e)
	if params.Page != 1 {
		t.Errorf("expected default page 1, got %d", params.Page)
	}
	if params.PerPage != defaultPerPage {
		t.Errorf("expected default perPage %d, got %d", defaultPerPage, params.PerPage)
	}
	if params.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", params.Offset())
	}
}

func TestParseListParams_ClampsAndParses(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"explicit values", "?page=3&perPage=50", 3, 50},
		{"perPage above cap", "?perPage=5000", 1, maxPerPage},
		{"zero page falls back", "?page=0", 1, defaultPerPage},
		{"negative perPage falls back", "?perPage=-5", 1, defaultPerPage},
		{"garbage ignored", "?page=abc&perPage=xyz", 1, defaultPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/materials"+tt.query, nil)
			e := newTestRequestEvent(app, req, httptest.NewRecorder())

			params := parseListParams(e)
			if params.Page != tt.wantPage {
				t.Errorf("page: expected %d, got %d", tt.wantPage, params.Page)
			}
			if params.PerPage != tt.wantPerPage {
				t.Errorf("perPage: expected %d, got %d", tt.wantPerPage, params.PerPage)
			}
		})
	}
}

func TestNewListResponse_TotalPages(t *testing.T) {
	tests := []struct {
		total      int
		perPage    int
		wantPages  int
	}{
		{0, 30, 1},
		{1, 30, 1},
		{30, 30, 1},
		{31, 30, 2},
		{61, 30, 3},
	}

	for _, tt := range tests {
		resp := newListResponse(listParams{Page: 1, PerPage: tt.perPage}, tt.total, nil)
		if resp.TotalPages != tt.wantPages {
			t.Errorf("total=%d perPage=%d: expected %d pages, got %d",
				tt.total, tt.perPage, tt.wantPages, resp.TotalPages)
		}
	}
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page2 := pageSlice(items, listParams{Page: 2, PerPage: 3})
	if len(page2) != 3 || page2[0] != 4 {
		t.Errorf("expected [4 5 6], got %v", page2)
	}

	last := pageSlice(items, listParams{Page: 3, PerPage: 3})
	if len(last) != 1 || last[0] != 7 {
		t.Errorf("expected [7], got %v", last)
	}

	past := pageSlice(items, listParams{Page: 9, PerPage: 3})
	if len(past) != 0 {
		t.Errorf("expected empty page, got %v", past)
	}
}

func TestFail_WritesEnvelope(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/sites/missing", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := fail(e, http.StatusNotFound, "Site not found", nil); err != nil {
		t.Fatalf("fail returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	var body apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Status != http.StatusNotFound || body.Message != "Site not found" {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename(`Cashbook Ring/Road:May\2026`)
	if got != "Cashbook-Ring-Road-May-2026" {
		t.Errorf("unexpected sanitized name: %q", got)
	}
}
