package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// Statutory deduction rates (employee share).
const (
	pfRate  = 0.12
	esiRate = 0.0075
	// ESI applies only while monthly gross stays at or under this ceiling.
	esiWageCeiling = 21000
)

// WageCalc is the wage breakdown for one worker over a period.
type WageCalc struct {
	Gross float64 `json:"gross"`
	PF    float64 `json:"pf"`
	ESI   float64 `json:"esi"`
	Net   float64 `json:"net"`
}

// CalcWage computes gross pay and statutory deductions. Daily workers
// earn rate × days, monthly workers earn the flat rate. PF is 12% of
// gross when opted in; ESI is 0.75% when opted in and gross is within
// the ceiling. All figures are rounded to 2 decimals.
func CalcWage(wageType string, rate, days float64, pfApplicable, esiApplicable bool) WageCalc {
	var gross float64
	if wageType == "monthly" {
		gross = rate
	} else {
		gross = rate * days
	}
	gross = Round2(gross)

	var calc WageCalc
	calc.Gross = gross
	if pfApplicable {
		calc.PF = Round2(gross * pfRate)
	}
	if esiApplicable && gross <= esiWageCeiling {
		calc.ESI = Round2(gross * esiRate)
	}
	calc.Net = Round2(gross - calc.PF - calc.ESI)
	return calc
}

// WageSheetRow is one worker's line on a site wage sheet.
type WageSheetRow struct {
	AssignmentID string  `json:"assignment_id"`
	EmpCode      string  `json:"emp_code"`
	Name         string  `json:"name"`
	Designation  string  `json:"designation"`
	Contractor   string  `json:"contractor"`
	WageType     string  `json:"wage_type"`
	WageRate     float64 `json:"wage_rate"`
	DaysWorked   float64 `json:"days_worked"`
	Gross        float64 `json:"gross"`
	PF           float64 `json:"pf"`
	ESI          float64 `json:"esi"`
	Net          float64 `json:"net"`
}

// WageSheet is a site's full wage computation.
type WageSheet struct {
	SiteName   string         `json:"site_name"`
	SiteCode   string         `json:"site_code"`
	Rows       []WageSheetRow `json:"rows"`
	TotalGross float64        `json:"total_gross"`
	TotalPF    float64        `json:"total_pf"`
	TotalESI   float64        `json:"total_esi"`
	TotalNet   float64        `json:"total_net"`
}

// BuildWageSheet computes wages for every active assignment of a site.
// The assignment's wage_rate overrides the employee's base wage when set.
func BuildWageSheet(app core.App, siteID string) (*WageSheet, error) {
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return nil, fmt.Errorf("site not found: %w", err)
	}

	assignments, err := app.FindRecordsByFilter(
		"manpower_assignments",
		"site = {:siteId} && status = 'active'",
		"created",
		0,
		0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	sheet := &WageSheet{
		SiteName: site.GetString("name"),
		SiteCode: site.GetString("site_code"),
		Rows:     make([]WageSheetRow, 0, len(assignments)),
	}

	for _, a := range assignments {
		employee, err := app.FindRecordById("employees", a.GetString("employee"))
		if err != nil {
			return nil, fmt.Errorf("employee for assignment %s: %w", a.Id, err)
		}

		rate := a.GetFloat("wage_rate")
		if rate == 0 {
			rate = employee.GetFloat("base_wage")
		}

		calc := CalcWage(
			employee.GetString("wage_type"),
			rate,
			a.GetFloat("days_worked"),
			employee.GetBool("pf_applicable"),
			employee.GetBool("esi_applicable"),
		)

		sheet.Rows = append(sheet.Rows, WageSheetRow{
			AssignmentID: a.Id,
			EmpCode:      employee.GetString("emp_code"),
			Name:         employee.GetString("name"),
			Designation:  employee.GetString("designation"),
			Contractor:   employee.GetString("contractor"),
			WageType:     employee.GetString("wage_type"),
			WageRate:     rate,
			DaysWorked:   a.GetFloat("days_worked"),
			Gross:        calc.Gross,
			PF:           calc.PF,
			ESI:          calc.ESI,
			Net:          calc.Net,
		})

		sheet.TotalGross = Round2(sheet.TotalGross + calc.Gross)
		sheet.TotalPF = Round2(sheet.TotalPF + calc.PF)
		sheet.TotalESI = Round2(sheet.TotalESI + calc.ESI)
		sheet.TotalNet = Round2(sheet.TotalNet + calc.Net)
	}

	return sheet, nil
}
