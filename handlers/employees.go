package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// EmployeeItem is one worker in list and detail responses.
type EmployeeItem struct {
	ID            string  `json:"id"`
	EmpCode       string  `json:"emp_code"`
	Name          string  `json:"name"`
	Designation   string  `json:"designation"`
	Contractor    string  `json:"contractor"`
	Phone         string  `json:"phone"`
	PAN           string  `json:"pan"`
	WageType      string  `json:"wage_type"`
	BaseWage      float64 `json:"base_wage"`
	PFApplicable  bool    `json:"pf_applicable"`
	ESIApplicable bool    `json:"esi_applicable"`
	Status        string  `json:"status"`
}

func employeeItem(rec *core.Record) EmployeeItem {
	return EmployeeItem{
		ID:            rec.Id,
		EmpCode:       rec.GetString("emp_code"),
		Name:          rec.GetString("name"),
		Designation:   rec.GetString("designation"),
		Contractor:    rec.GetString("contractor"),
		Phone:         rec.GetString("phone"),
		PAN:           rec.GetString("pan"),
		WageType:      rec.GetString("wage_type"),
		BaseWage:      rec.GetFloat("base_wage"),
		PFApplicable:  rec.GetBool("pf_applicable"),
		ESIApplicable: rec.GetBool("esi_applicable"),
		Status:        rec.GetString("status"),
	}
}

// EmployeeRequest is the JSON body for creating an employee.
type EmployeeRequest struct {
	EmpCode       string  `json:"emp_code"`
	Name          string  `json:"name"`
	Designation   string  `json:"designation"`
	Contractor    string  `json:"contractor"`
	Phone         string  `json:"phone"`
	PAN           string  `json:"pan"`
	WageType      string  `json:"wage_type"`
	BaseWage      float64 `json:"base_wage"`
	PFApplicable  bool    `json:"pf_applicable"`
	ESIApplicable bool    `json:"esi_applicable"`
	Status        string  `json:"status"`
}

// HandleEmployeeList returns the employee master, filterable by status,
// wage type or contractor, searchable on code and name.
func HandleEmployeeList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)
		query := e.Request.URL.Query()

		filter := "id != ''"
		binds := map[string]any{}

		if status := query.Get("status"); status != "" {
			if status != "active" && status != "inactive" {
				return fail(e, http.StatusBadRequest, "Invalid status filter", nil)
			}
			filter += " && status = {:status}"
			binds["status"] = status
		}
		if wageType := query.Get("wage_type"); wageType != "" {
			if wageType != "daily" && wageType != "monthly" {
				return fail(e, http.StatusBadRequest, "Invalid wage type filter", nil)
			}
			filter += " && wage_type = {:wageType}"
			binds["wageType"] = wageType
		}
		if contractor := query.Get("contractor"); contractor != "" {
			filter += " && contractor = {:contractor}"
			binds["contractor"] = contractor
		}
		if q := query.Get("q"); q != "" {
			filter += " && (emp_code ~ {:q} || name ~ {:q})"
			binds["q"] = q
		}

		records, err := app.FindRecordsByFilter("employees", filter, "emp_code", 0, 0, binds)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load employees", err)
		}

		items := make([]EmployeeItem, 0, len(records))
		for _, rec := range records {
			items = append(items, employeeItem(rec))
		}

		page := pageSlice(items, params)
		return ok(e, newListResponse(params, len(items), page))
	}
}

// HandleEmployeeCreate adds a worker to the master.
func HandleEmployeeCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req EmployeeRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.EmpCode = strings.ToUpper(strings.TrimSpace(req.EmpCode))
		req.Name = strings.TrimSpace(req.Name)
		req.PAN = strings.ToUpper(strings.TrimSpace(req.PAN))

		if req.EmpCode == "" || req.Name == "" {
			return fail(e, http.StatusBadRequest, "Employee code and name are required", nil)
		}
		if req.WageType != "daily" && req.WageType != "monthly" {
			return fail(e, http.StatusBadRequest, "Wage type must be daily or monthly", nil)
		}
		if req.BaseWage <= 0 {
			return fail(e, http.StatusBadRequest, "Base wage must be greater than zero", nil)
		}
		if req.Status == "" {
			req.Status = "active"
		}
		if req.Status != "active" && req.Status != "inactive" {
			return fail(e, http.StatusBadRequest, "Invalid status", nil)
		}
		formatErrs := services.ValidateEmployeeFormat(map[string]string{
			"phone": req.Phone,
			"pan":   req.PAN,
		})
		if msg, bad := formatErrs["phone"]; bad {
			return fail(e, http.StatusBadRequest, msg, nil)
		}
		if msg, bad := formatErrs["pan"]; bad {
			return fail(e, http.StatusBadRequest, msg, nil)
		}

		existing, err := app.FindRecordsByFilter(
			"employees",
			"emp_code = {:code}",
			"", 1, 0,
			map[string]any{"code": req.EmpCode},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(existing) > 0 {
			return fail(e, http.StatusConflict, "An employee with this code already exists", nil)
		}

		col, err := app.FindCollectionByNameOrId("employees")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("emp_code", req.EmpCode)
		record.Set("name", req.Name)
		record.Set("designation", strings.TrimSpace(req.Designation))
		record.Set("contractor", strings.TrimSpace(req.Contractor))
		record.Set("phone", strings.TrimSpace(req.Phone))
		record.Set("pan", req.PAN)
		record.Set("wage_type", req.WageType)
		record.Set("base_wage", services.Round2(req.BaseWage))
		record.Set("pf_applicable", req.PFApplicable)
		record.Set("esi_applicable", req.ESIApplicable)
		record.Set("status", req.Status)

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save employee", err)
		}

		return created(e, employeeItem(record))
	}
}

// HandleEmployeeUpdate patches an employee. Only fields present in the
// body change.
func HandleEmployeeUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		employeeID := e.Request.PathValue("id")

		record, err := app.FindRecordById("employees", employeeID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Employee not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["emp_code"]; hit {
			code := strings.ToUpper(strings.TrimSpace(toString(raw)))
			if code == "" {
				return fail(e, http.StatusBadRequest, "Employee code cannot be empty", nil)
			}
			if code != record.GetString("emp_code") {
				existing, err := app.FindRecordsByFilter(
					"employees",
					"emp_code = {:code} && id != {:id}",
					"", 1, 0,
					map[string]any{"code": code, "id": employeeID},
				)
				if err != nil {
					return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
				}
				if len(existing) > 0 {
					return fail(e, http.StatusConflict, "An employee with this code already exists", nil)
				}
			}
			record.Set("emp_code", code)
		}
		if raw, hit := req["name"]; hit {
			name := strings.TrimSpace(toString(raw))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Name cannot be empty", nil)
			}
			record.Set("name", name)
		}
		if raw, hit := req["designation"]; hit {
			record.Set("designation", strings.TrimSpace(toString(raw)))
		}
		if raw, hit := req["contractor"]; hit {
			record.Set("contractor", strings.TrimSpace(toString(raw)))
		}
		if raw, hit := req["phone"]; hit {
			phone := strings.TrimSpace(toString(raw))
			if !services.ValidatePhone(phone) {
				return fail(e, http.StatusBadRequest, "Invalid phone number (expected: 10 digits starting with 6-9)", nil)
			}
			record.Set("phone", phone)
		}
		if raw, hit := req["pan"]; hit {
			pan := strings.ToUpper(strings.TrimSpace(toString(raw)))
			if !services.ValidatePAN(pan) {
				return fail(e, http.StatusBadRequest, "Invalid PAN format (expected: 10-character, e.g., ABCDE1234F)", nil)
			}
			record.Set("pan", pan)
		}
		if raw, hit := req["wage_type"]; hit {
			wageType := toString(raw)
			if wageType != "daily" && wageType != "monthly" {
				return fail(e, http.StatusBadRequest, "Wage type must be daily or monthly", nil)
			}
			record.Set("wage_type", wageType)
		}
		if raw, hit := req["base_wage"]; hit {
			wage := toFloat(raw)
			if wage <= 0 {
				return fail(e, http.StatusBadRequest, "Base wage must be greater than zero", nil)
			}
			record.Set("base_wage", services.Round2(wage))
		}
		if raw, hit := req["pf_applicable"]; hit {
			record.Set("pf_applicable", toBool(raw))
		}
		if raw, hit := req["esi_applicable"]; hit {
			record.Set("esi_applicable", toBool(raw))
		}
		if raw, hit := req["status"]; hit {
			status := toString(raw)
			if status != "active" && status != "inactive" {
				return fail(e, http.StatusBadRequest, "Invalid status", nil)
			}
			record.Set("status", status)
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save employee", err)
		}

		return ok(e, employeeItem(record))
	}
}

// HandleEmployeeDelete removes an employee. Workers with assignment
// history keep their records; mark them inactive instead.
func HandleEmployeeDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		employeeID := e.Request.PathValue("id")

		record, err := app.FindRecordById("employees", employeeID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Employee not found", err)
		}

		assignments, err := app.FindRecordsByFilter(
			"manpower_assignments",
			"employee = {:employee}",
			"", 1, 0,
			map[string]any{"employee": employeeID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(assignments) > 0 {
			return fail(e, http.StatusConflict, "Employee has assignment history. Mark them inactive instead of deleting.", nil)
		}

		if err := app.Delete(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not delete employee", err)
		}

		return ok(e, map[string]string{"deleted": employeeID})
	}
}
