package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// IndentRequest is the JSON body for creating an indent.
type IndentRequest struct {
	IndentDate string `json:"indent_date"`
	Remarks    string `json:"remarks"`
}

// IndentListItem is one indent header in responses.
type IndentListItem struct {
	ID          string `json:"id"`
	SiteID      string `json:"site"`
	IndentNo    string `json:"indent_no"`
	IndentDate  string `json:"indent_date"`
	RequestedBy string `json:"requested_by"`
	Status      string `json:"status"`
	Remarks     string `json:"remarks"`
	ItemCount   int    `json:"item_count"`
}

func indentListItem(app *pocketbase.PocketBase, rec *core.Record) IndentListItem {
	item := IndentListItem{
		ID:         rec.Id,
		SiteID:     rec.GetString("site"),
		IndentNo:   rec.GetString("indent_no"),
		IndentDate: rec.GetString("indent_date"),
		Status:     rec.GetString("status"),
		Remarks:    rec.GetString("remarks"),
	}
	if staffID := rec.GetString("requested_by"); staffID != "" {
		staff, err := app.FindRecordById("staff", staffID)
		if err != nil {
			log.Printf("indent: could not find staff %s: %v", staffID, err)
		} else {
			item.RequestedBy = staff.GetString("name")
		}
	}
	items, err := app.FindRecordsByFilter(
		"indent_items",
		"indent = {:indent}",
		"", 0, 0,
		map[string]any{"indent": rec.Id},
	)
	if err != nil {
		log.Printf("indent: could not count items for %s: %v", rec.Id, err)
	}
	item.ItemCount = len(items)
	return item
}

// HandleIndentCreate opens a draft indent for a site. The indent number
// is generated, never supplied by the caller.
func HandleIndentCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req IndentRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		indentDate := strings.TrimSpace(req.IndentDate)
		if indentDate == "" {
			indentDate = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", indentDate); err != nil {
			return fail(e, http.StatusBadRequest, "Indent date must be YYYY-MM-DD", nil)
		}

		indentNo, err := services.GenerateIndentNumber(app, siteID, time.Now())
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate indent number", err)
		}

		col, err := app.FindCollectionByNameOrId("indents")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("indent_no", indentNo)
		record.Set("indent_date", indentDate)
		record.Set("status", "draft")
		record.Set("remarks", strings.TrimSpace(req.Remarks))
		if staff := GetStaff(e.Request); staff != nil {
			record.Set("requested_by", staff.ID)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save indent", err)
		}

		return created(e, indentListItem(app, record))
	}
}
