package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

// apiError is the shared JSON error envelope. Every non-2xx response
// carries it.
type apiError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// fail logs the underlying error (when present) and responds with the
// error envelope. The message is what the caller sees; err is what the
// operator sees in the log.
func fail(e *core.RequestEvent, status int, message string, err error) error {
	if err != nil {
		log.Printf("%s %s: %s: %v", e.Request.Method, e.Request.URL.Path, message, err)
	}
	return e.JSON(status, apiError{Status: status, Message: message})
}

// ok responds 200 with an arbitrary JSON payload.
func ok(e *core.RequestEvent, payload any) error {
	return e.JSON(http.StatusOK, payload)
}

// created responds 201 with an arbitrary JSON payload.
func created(e *core.RequestEvent, payload any) error {
	return e.JSON(http.StatusCreated, payload)
}

// writeAttachment streams generated file bytes as a download.
func writeAttachment(e *core.RequestEvent, contentType, filename string, data []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, err := e.Response.Write(data)
	return err
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

const (
	defaultPerPage = 30
	maxPerPage     = 200
)

// listParams holds the parsed pagination query of a list endpoint.
type listParams struct {
	Page    int
	PerPage int
}

// parseListParams reads page and perPage from the query string, clamping
// page to >= 1 and perPage to 1..200 (default 30).
func parseListParams(e *core.RequestEvent) listParams {
	params := listParams{Page: 1, PerPage: defaultPerPage}

	if p := e.Request.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			params.Page = v
		}
	}
	if pp := e.Request.URL.Query().Get("perPage"); pp != "" {
		if v, err := strconv.Atoi(pp); err == nil && v > 0 {
			if v > maxPerPage {
				v = maxPerPage
			}
			params.PerPage = v
		}
	}

	return params
}

// Offset returns the record offset for the current page.
func (p listParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// listResponse is the shared envelope of every paginated list endpoint.
type listResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
	Items      any `json:"items"`
}

// newListResponse wraps items with the pagination envelope. TotalPages
// is at least 1 so clients can always render a pager.
func newListResponse(params listParams, totalItems int, items any) listResponse {
	totalPages := (totalItems + params.PerPage - 1) / params.PerPage
	if totalPages < 1 {
		totalPages = 1
	}
	return listResponse{
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Items:      items,
	}
}

// pageSlice cuts one page out of already-loaded records. List endpoints
// that filter in SQL pass records straight through; the few that filter
// in Go use this.
func pageSlice[T any](items []T, params listParams) []T {
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
