package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

const importBatchSize = 100

// ImportField describes one column of a bulk upload file.
type ImportField struct {
	Key      string // PocketBase field name
	Label    string // column header in the uploaded file
	Required bool
}

// EmployeeImportFields returns the accepted columns for an employee
// master upload, in canonical order.
func EmployeeImportFields() []ImportField {
	return []ImportField{
		{Key: "emp_code", Label: "Employee Code", Required: true},
		{Key: "name", Label: "Name", Required: true},
		{Key: "designation", Label: "Designation"},
		{Key: "contractor", Label: "Contractor"},
		{Key: "phone", Label: "Phone"},
		{Key: "pan", Label: "PAN"},
		{Key: "wage_type", Label: "Wage Type", Required: true},
		{Key: "base_wage", Label: "Base Wage", Required: true},
		{Key: "pf_applicable", Label: "PF Applicable"},
		{Key: "esi_applicable", Label: "ESI Applicable"},
	}
}

// MaterialImportFields returns the accepted columns for a material
// master upload.
func MaterialImportFields() []ImportField {
	return []ImportField{
		{Key: "code", Label: "Material Code", Required: true},
		{Key: "name", Label: "Name", Required: true},
		{Key: "category", Label: "Category"},
		{Key: "uom", Label: "UOM", Required: true},
		{Key: "hsn_code", Label: "HSN Code"},
		{Key: "gst_percent", Label: "GST %"},
		{Key: "reorder_level", Label: "Reorder Level"},
	}
}

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// parseUpload dispatches on the file extension.
func parseUpload(file io.Reader, fileName string) ([]string, [][]string, error) {
	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		return parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		return parseExcel(file)
	default:
		return nil, nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
}

// mapHeadersToFields maps uploaded column headers to ImportField keys.
// Returns an ordered list of field keys (one per column, "" for columns
// we do not recognize) plus the unrecognized headers.
func mapHeadersToFields(headers []string, fields []ImportField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields)*2)
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
		// accept the raw field name as a header too
		labelToKey[f.Key] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		norm = strings.TrimSpace(norm)

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ValidateEmployeeImport parses and validates an uploaded employee file.
// Nothing is written; the parsed rows ride along in the result for the
// subsequent commit call.
func ValidateEmployeeImport(app core.App, file io.Reader, fileName string) (*ValidationResult, error) {
	headers, dataRows, err := parseUpload(file, fileName)
	if err != nil {
		return nil, err
	}

	fields := EmployeeImportFields()
	columnKeys, _ := mapHeadersToFields(headers, fields)

	existing, err := existingCodes(app, "employees", "emp_code")
	if err != nil {
		return nil, err
	}

	return validateRows(fileName, dataRows, columnKeys, fields, "emp_code", existing, validateEmployeeRow), nil
}

// ValidateMaterialImport parses and validates an uploaded material file.
func ValidateMaterialImport(app core.App, file io.Reader, fileName string) (*ValidationResult, error) {
	headers, dataRows, err := parseUpload(file, fileName)
	if err != nil {
		return nil, err
	}

	fields := MaterialImportFields()
	columnKeys, _ := mapHeadersToFields(headers, fields)

	existing, err := existingCodes(app, "materials", "code")
	if err != nil {
		return nil, err
	}

	return validateRows(fileName, dataRows, columnKeys, fields, "code", existing, validateMaterialRow), nil
}

// validateRows walks the data rows, collecting required-field, format and
// duplicate-code errors.
func validateRows(
	fileName string,
	dataRows [][]string,
	columnKeys []string,
	fields []ImportField,
	codeKey string,
	existing map[string]bool,
	checkRow func(rowNum int, data map[string]string) []ValidationError,
) *ValidationResult {
	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	seen := make(map[string]int)

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		result.Errors = append(result.Errors, validateRowMap(rowNum, rowData, fields, codeKey, existing, seen, checkRow)...)
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result
}

// validateRowMap collects the errors for one already-mapped row. seen
// tracks codes across rows so duplicates within the file are caught.
func validateRowMap(
	rowNum int,
	rowData map[string]string,
	fields []ImportField,
	codeKey string,
	existing map[string]bool,
	seen map[string]int,
	checkRow func(rowNum int, data map[string]string) []ValidationError,
) []ValidationError {
	var rowErrors []ValidationError

	var codeLabel string
	for _, f := range fields {
		if f.Key == codeKey {
			codeLabel = f.Label
		}
		if f.Required && rowData[f.Key] == "" {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   f.Label,
				Message: fmt.Sprintf("%s is required", f.Label),
			})
		}
	}

	rowErrors = append(rowErrors, checkRow(rowNum, rowData)...)

	if code := rowData[codeKey]; code != "" {
		if existing[code] {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   codeLabel,
				Message: fmt.Sprintf("%s %q already exists", codeLabel, code),
			})
		} else if firstRow, ok := seen[code]; ok {
			rowErrors = append(rowErrors, ValidationError{
				Row:     rowNum,
				Field:   codeLabel,
				Message: fmt.Sprintf("%s %q repeats row %d", codeLabel, code, firstRow),
			})
		} else {
			seen[code] = rowNum
		}
	}

	return rowErrors
}

// revalidateParsed reruns row validation on already-parsed rows. It
// catches rows whose code was taken between the validate and commit
// calls.
func revalidateParsed(
	parsedRows []map[string]string,
	fields []ImportField,
	codeKey string,
	existing map[string]bool,
	checkRow func(rowNum int, data map[string]string) []ValidationError,
) []ValidationError {
	var allErrors []ValidationError
	seen := make(map[string]int)
	for rowIdx, rowData := range parsedRows {
		allErrors = append(allErrors, validateRowMap(rowIdx+2, rowData, fields, codeKey, existing, seen, checkRow)...)
	}
	return allErrors
}

// validateEmployeeRow checks format rules for non-empty employee values.
func validateEmployeeRow(rowNum int, data map[string]string) []ValidationError {
	var errs []ValidationError

	if v := data["wage_type"]; v != "" && v != "daily" && v != "monthly" {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Wage Type", Message: "Wage Type must be daily or monthly"})
	}
	if v := data["base_wage"]; v != "" {
		if wage, err := cast.ToFloat64E(v); err != nil || wage <= 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Base Wage", Message: "Base Wage must be a number greater than zero"})
		}
	}
	if v := data["phone"]; v != "" && !ValidatePhone(v) {
		errs = append(errs, ValidationError{Row: rowNum, Field: "Phone", Message: "Phone must be 10 digits starting with 6-9"})
	}
	if v := data["pan"]; v != "" && !ValidatePAN(v) {
		errs = append(errs, ValidationError{Row: rowNum, Field: "PAN", Message: "PAN must be 10 characters in format ABCDE1234F"})
	}
	for _, key := range []string{"pf_applicable", "esi_applicable"} {
		if v := data[key]; v != "" {
			if _, ok := parseYesNo(v); !ok {
				label := "PF Applicable"
				if key == "esi_applicable" {
					label = "ESI Applicable"
				}
				errs = append(errs, ValidationError{Row: rowNum, Field: label, Message: fmt.Sprintf("%s must be Yes or No", label)})
			}
		}
	}

	return errs
}

// validateMaterialRow checks format rules for non-empty material values.
func validateMaterialRow(rowNum int, data map[string]string) []ValidationError {
	var errs []ValidationError

	if v := data["category"]; v != "" && !containsString(MaterialCategories, strings.ToLower(v)) {
		errs = append(errs, ValidationError{
			Row:     rowNum,
			Field:   "Category",
			Message: fmt.Sprintf("Category must be one of %s", strings.Join(MaterialCategories, ", ")),
		})
	}
	if v := data["gst_percent"]; v != "" {
		gst, err := cast.ToFloat64E(strings.TrimSuffix(v, "%"))
		if err != nil || !containsInt(GSTOptions, int(gst)) || gst != float64(int(gst)) {
			errs = append(errs, ValidationError{Row: rowNum, Field: "GST %", Message: "GST % must be 0, 5, 12, 18 or 28"})
		}
	}
	if v := data["reorder_level"]; v != "" {
		if level, err := cast.ToFloat64E(v); err != nil || level < 0 {
			errs = append(errs, ValidationError{Row: rowNum, Field: "Reorder Level", Message: "Reorder Level must be a non-negative number"})
		}
	}

	return errs
}

// parseYesNo reads the boolean spellings seen in spreadsheets.
func parseYesNo(v string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0", "":
		return false, true
	default:
		return false, false
	}
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// existingCodes loads all values of a code column into a set.
func existingCodes(app core.App, collection, field string) (map[string]bool, error) {
	records, err := app.FindAllRecords(collection)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}

	codes := make(map[string]bool, len(records))
	for _, r := range records {
		if code := r.GetString(field); code != "" {
			codes[code] = true
		}
	}
	return codes, nil
}

// ImportResult holds the outcome of a batch import operation.
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Imported   int              `json:"imported"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
	RolledBack bool             `json:"rolled_back"`
	BatchID    string           `json:"batch_id,omitempty"`
}

// ImportRowError represents a failure to insert a specific row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CommitEmployeeImport re-validates and batch-inserts parsed employee
// rows. Rows are processed in chunks of importBatchSize; a failure rolls
// back its own chunk only and the import continues with the next one.
// Every inserted record carries the same batch id so a bad upload can be
// traced afterwards.
func CommitEmployeeImport(app core.App, parsedRows []map[string]string) (*ImportResult, error) {
	existing, err := existingCodes(app, "employees", "emp_code")
	if err != nil {
		return nil, err
	}
	revalidation := revalidateParsed(parsedRows, EmployeeImportFields(), "emp_code", existing, validateEmployeeRow)
	if len(revalidation) > 0 {
		return rejectedImport(parsedRows, revalidation), nil
	}

	col, err := app.FindCollectionByNameOrId("employees")
	if err != nil {
		return nil, fmt.Errorf("employees collection not found: %w", err)
	}

	batchID := uuid.NewString()
	result := &ImportResult{TotalRows: len(parsedRows), BatchID: batchID}

	commitInChunks(app, parsedRows, result, func(txApp core.App, rowData map[string]string) error {
		record := core.NewRecord(col)
		record.Set("emp_code", rowData["emp_code"])
		record.Set("name", rowData["name"])
		record.Set("designation", rowData["designation"])
		record.Set("contractor", rowData["contractor"])
		record.Set("phone", rowData["phone"])
		record.Set("pan", strings.ToUpper(rowData["pan"]))
		record.Set("wage_type", rowData["wage_type"])
		record.Set("base_wage", cast.ToFloat64(rowData["base_wage"]))
		pf, _ := parseYesNo(rowData["pf_applicable"])
		esi, _ := parseYesNo(rowData["esi_applicable"])
		record.Set("pf_applicable", pf)
		record.Set("esi_applicable", esi)
		record.Set("status", "active")
		record.Set("import_batch", batchID)
		return txApp.Save(record)
	})

	return result, nil
}

// CommitMaterialImport re-validates and batch-inserts parsed material rows.
func CommitMaterialImport(app core.App, parsedRows []map[string]string) (*ImportResult, error) {
	existing, err := existingCodes(app, "materials", "code")
	if err != nil {
		return nil, err
	}
	revalidation := revalidateParsed(parsedRows, MaterialImportFields(), "code", existing, validateMaterialRow)
	if len(revalidation) > 0 {
		return rejectedImport(parsedRows, revalidation), nil
	}

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return nil, fmt.Errorf("materials collection not found: %w", err)
	}

	batchID := uuid.NewString()
	result := &ImportResult{TotalRows: len(parsedRows), BatchID: batchID}

	commitInChunks(app, parsedRows, result, func(txApp core.App, rowData map[string]string) error {
		record := core.NewRecord(col)
		record.Set("code", rowData["code"])
		record.Set("name", rowData["name"])
		record.Set("category", strings.ToLower(rowData["category"]))
		record.Set("uom", rowData["uom"])
		record.Set("hsn_code", rowData["hsn_code"])
		record.Set("gst_percent", cast.ToFloat64(strings.TrimSuffix(rowData["gst_percent"], "%")))
		record.Set("reorder_level", cast.ToFloat64(rowData["reorder_level"]))
		record.Set("import_batch", batchID)
		return txApp.Save(record)
	})

	return result, nil
}

// commitInChunks inserts rows in transactional chunks. A failed chunk is
// rolled back whole and reported; later chunks still run.
func commitInChunks(
	app core.App,
	parsedRows []map[string]string,
	result *ImportResult,
	insert func(txApp core.App, rowData map[string]string) error,
) {
	for chunkStart := 0; chunkStart < len(parsedRows); chunkStart += importBatchSize {
		chunkEnd := chunkStart + importBatchSize
		if chunkEnd > len(parsedRows) {
			chunkEnd = len(parsedRows)
		}
		chunk := parsedRows[chunkStart:chunkEnd]

		var failedRow int
		err := app.RunInTransaction(func(txApp core.App) error {
			for i, rowData := range chunk {
				if err := insert(txApp, rowData); err != nil {
					failedRow = chunkStart + i + 2 // 1-indexed + header row
					return fmt.Errorf("save failed at row %d: %w", failedRow, err)
				}
			}
			return nil
		})

		if err != nil {
			log.Printf("imports: chunk starting at row %d rolled back: %v", chunkStart+2, err)
			result.Errors = append(result.Errors, ImportRowError{
				Row:     failedRow,
				Message: fmt.Sprintf("Failed to save: %s", err.Error()),
			})
			result.Failed += len(chunk)
			result.RolledBack = true
		} else {
			result.Imported += len(chunk)
		}
	}
}

// rejectedImport reports a commit that was refused because revalidation
// failed, e.g. when a code was taken between validate and commit.
func rejectedImport(parsedRows []map[string]string, revalidation []ValidationError) *ImportResult {
	errorRowSet := make(map[int]bool)
	for _, e := range revalidation {
		errorRowSet[e.Row] = true
	}
	return &ImportResult{
		TotalRows:  len(parsedRows),
		Failed:     len(errorRowSet),
		Errors:     toImportRowErrors(revalidation),
		RolledBack: true,
	}
}

// toImportRowErrors converts ValidationErrors to ImportRowErrors.
func toImportRowErrors(ve []ValidationError) []ImportRowError {
	result := make([]ImportRowError, len(ve))
	for i, e := range ve {
		result[i] = ImportRowError{
			Row:     e.Row,
			Field:   e.Field,
			Message: e.Message,
		}
	}
	return result
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    gridBorder(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
