package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// vendorPatchValidators maps patchable vendor fields to their format
// check and error message. Fields not listed here are free text.
var vendorPatchValidators = map[string]struct {
	check   func(string) bool
	message string
	upper   bool
}{
	"gstin":     {services.ValidateGSTIN, "Invalid GSTIN format (expected: 15-character, e.g., 27AAPFU0939F1ZV)", true},
	"pan":       {services.ValidatePAN, "Invalid PAN format (expected: 10-character, e.g., ABCDE1234F)", true},
	"pin_code":  {services.ValidatePINCode, "Invalid PIN Code (expected: 6 digits, e.g., 751001)", false},
	"phone":     {services.ValidatePhone, "Invalid phone number (expected: 10 digits starting with 6-9)", false},
	"email":     {services.ValidateEmail, "Invalid email format", false},
	"bank_ifsc": {services.ValidateIFSC, "Invalid IFSC code (expected: 11-character, e.g., SBIN0001234)", true},
}

// vendorTextFields are the free-text columns a patch may touch.
var vendorTextFields = []string{
	"address", "city", "state", "contact_person",
	"bank_beneficiary", "bank_name", "bank_account_no", "bank_branch",
}

// HandleVendorUpdate patches a vendor. Only fields present in the body
// change; format-checked fields are validated before writing.
func HandleVendorUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		vendorID := e.Request.PathValue("id")

		record, err := app.FindRecordById("vendors", vendorID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Vendor not found", err)
		}

		var req map[string]any
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		if raw, hit := req["name"]; hit {
			name := strings.TrimSpace(toString(raw))
			if name == "" {
				return fail(e, http.StatusBadRequest, "Name cannot be empty", nil)
			}
			if name != record.GetString("name") {
				existing, err := app.FindRecordsByFilter(
					"vendors",
					"name = {:name} && id != {:id}",
					"", 1, 0,
					map[string]any{"name": name, "id": vendorID},
				)
				if err != nil {
					return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
				}
				if len(existing) > 0 {
					return fail(e, http.StatusConflict, "A vendor with this name already exists", nil)
				}
			}
			record.Set("name", name)
		}

		for field, v := range vendorPatchValidators {
			raw, hit := req[field]
			if !hit {
				continue
			}
			value := strings.TrimSpace(toString(raw))
			if v.upper {
				value = strings.ToUpper(value)
			}
			if !v.check(value) {
				return fail(e, http.StatusBadRequest, v.message, nil)
			}
			record.Set(field, value)
		}

		for _, field := range vendorTextFields {
			if raw, hit := req[field]; hit {
				record.Set(field, strings.TrimSpace(toString(raw)))
			}
		}

		if err := app.Save(record); err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save vendor", err)
		}

		return ok(e, vendorItem(record))
	}
}
