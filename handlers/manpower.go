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

// AssignmentItem is one manpower assignment in responses.
type AssignmentItem struct {
	ID          string  `json:"id"`
	Employee    string  `json:"employee"`
	EmpCode     string  `json:"emp_code"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Contractor  string  `json:"contractor"`
	WageType    string  `json:"wage_type"`
	SiteID      string  `json:"site"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	WageRate    float64 `json:"wage_rate"`
	DaysWorked  float64 `json:"days_worked"`
	Status      string  `json:"status"`
}

func assignmentItem(app *pocketbase.PocketBase, rec *core.Record) AssignmentItem {
	item := AssignmentItem{
		ID:         rec.Id,
		Employee:   rec.GetString("employee"),
		SiteID:     rec.GetString("site"),
		FromDate:   rec.GetString("from_date"),
		ToDate:     rec.GetString("to_date"),
		WageRate:   rec.GetFloat("wage_rate"),
		DaysWorked: rec.GetFloat("days_worked"),
		Status:     rec.GetString("status"),
	}
	employee, err := app.FindRecordById("employees", item.Employee)
	if err != nil {
		log.Printf("manpower: could not find employee %s: %v", item.Employee, err)
		return item
	}
	item.EmpCode = employee.GetString("emp_code")
	item.Name = employee.GetString("name")
	item.Designation = employee.GetString("designation")
	item.Contractor = employee.GetString("contractor")
	item.WageType = employee.GetString("wage_type")
	return item
}

// AssignmentRequest is the JSON body for opening an assignment.
type AssignmentRequest struct {
	Employee   string  `json:"employee"`
	FromDate   string  `json:"from_date"`
	WageRate   float64 `json:"wage_rate"`
	DaysWorked float64 `json:"days_worked"`
}

// HandleAssignmentOpen posts a worker to a site. A worker holds at most
// one open assignment across all sites, so posting elsewhere requires
// closing the current one first.
func HandleAssignmentOpen(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req AssignmentRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		employee, err := app.FindRecordById("employees", req.Employee)
		if err != nil {
			return fail(e, http.StatusBadRequest, "Unknown employee", err)
		}
		if employee.GetString("status") != "active" {
			return fail(e, http.StatusBadRequest, "Employee is inactive", nil)
		}

		fromDate := strings.TrimSpace(req.FromDate)
		if fromDate == "" {
			fromDate = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", fromDate); err != nil {
			return fail(e, http.StatusBadRequest, "From date must be YYYY-MM-DD", nil)
		}
		if req.WageRate < 0 {
			return fail(e, http.StatusBadRequest, "Wage rate cannot be negative", nil)
		}
		if req.DaysWorked < 0 {
			return fail(e, http.StatusBadRequest, "Days worked cannot be negative", nil)
		}

		open, err := app.FindRecordsByFilter(
			"manpower_assignments",
			"employee = {:employee} && status = 'active'",
			"", 1, 0,
			map[string]any{"employee": req.Employee},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(open) > 0 {
			return fail(e, http.StatusConflict, "Employee already has an open assignment. Close it before posting them again.", nil)
		}

		col, err := app.FindCollectionByNameOrId("manpower_assignments")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("employee", req.Employee)
		record.Set("site", siteID)
		record.Set("from_date", fromDate)
		record.Set("wage_rate", services.Round2(req.WageRate))
		record.Set("days_worked", req.DaysWorked)
		record.Set("status", "active")

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save assignment", err)
		}

		return created(e, assignmentItem(app, record))
	}
}

// HandleAssignmentUpdate patches an open assignment's wage rate or days
// worked. Closed assignments are history and stay as booked.
func HandleAssignmentUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assignmentID := e.Request.PathValue("id")

		record, err := app.FindRecordById("manpower_assignments", assignmentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Assignment not found", err)
		}
		if record.GetString("status") != "active" {
			return fail(e, http.StatusConflict, "Assignment is closed", nil)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		for _, locked := range []string{"employee", "site", "status", "to_date"} {
			if _, hit := req[locked]; hit {
				return fail(e, http.StatusBadRequest, "Only wage_rate, days_worked and from_date can be changed here", nil)
			}
		}

		if raw, hit := req["wage_rate"]; hit {
			rate := toFloat(raw)
			if rate < 0 {
				return fail(e, http.StatusBadRequest, "Wage rate cannot be negative", nil)
			}
			record.Set("wage_rate", services.Round2(rate))
		}
		if raw, hit := req["days_worked"]; hit {
			days := toFloat(raw)
			if days < 0 {
				return fail(e, http.StatusBadRequest, "Days worked cannot be negative", nil)
			}
			record.Set("days_worked", days)
		}
		if raw, hit := req["from_date"]; hit {
			fromDate := strings.TrimSpace(toString(raw))
			if _, err := time.Parse("2006-01-02", fromDate); err != nil {
				return fail(e, http.StatusBadRequest, "From date must be YYYY-MM-DD", nil)
			}
			record.Set("from_date", fromDate)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save assignment", err)
		}

		return ok(e, assignmentItem(app, record))
	}
}

// AssignmentCloseRequest optionally carries the closing date.
type AssignmentCloseRequest struct {
	ToDate string `json:"to_date"`
}

// HandleAssignmentClose ends an assignment, freeing the worker for the
// next posting.
func HandleAssignmentClose(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		assignmentID := e.Request.PathValue("id")

		record, err := app.FindRecordById("manpower_assignments", assignmentID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Assignment not found", err)
		}
		if record.GetString("status") != "active" {
			return fail(e, http.StatusConflict, "Assignment is already closed", nil)
		}

		var req AssignmentCloseRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		toDate := strings.TrimSpace(req.ToDate)
		if toDate == "" {
			toDate = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", toDate); err != nil {
			return fail(e, http.StatusBadRequest, "To date must be YYYY-MM-DD", nil)
		}
		if toDate < record.GetString("from_date") {
			return fail(e, http.StatusBadRequest, "To date cannot be before the from date", nil)
		}

		record.Set("to_date", toDate)
		record.Set("status", "closed")

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not close assignment", err)
		}

		return ok(e, assignmentItem(app, record))
	}
}

// HandleAssignmentList returns a site's assignments, open ones first.
func HandleAssignmentList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		params := parseListParams(e)

		filter := "site = {:site}"
		binds := map[string]any{"site": siteID}

		if status := e.Request.URL.Query().Get("status"); status != "" {
			if status != "active" && status != "closed" {
				return fail(e, http.StatusBadRequest, "Invalid status filter", nil)
			}
			filter += " && status = {:status}"
			binds["status"] = status
		}

		records, err := app.FindRecordsByFilter("manpower_assignments", filter, "status,-from_date", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load assignments", err)
		}

		items := make([]AssignmentItem, 0, len(records))
		for _, rec := range records {
			items = append(items, assignmentItem(app, rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

// HandleWageSheet computes the wage sheet for a site's open assignments.
func HandleWageSheet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		sheet, err := services.BuildWageSheet(app, siteID)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not compute wage sheet", err)
		}

		return ok(e, sheet)
	}
}
