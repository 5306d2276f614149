package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// VendorItem is one vendor in responses, bank details included.
type VendorItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	PinCode         string `json:"pin_code"`
	GSTIN           string `json:"gstin"`
	PAN             string `json:"pan"`
	ContactPerson   string `json:"contact_person"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BankBeneficiary string `json:"bank_beneficiary"`
	BankName        string `json:"bank_name"`
	BankAccountNo   string `json:"bank_account_no"`
	BankIFSC        string `json:"bank_ifsc"`
	BankBranch      string `json:"bank_branch"`
}

func vendorItem(rec *core.Record) VendorItem {
	return VendorItem{
		ID:              rec.Id,
		Name:            rec.GetString("name"),
		Address:         rec.GetString("address"),
		City:            rec.GetString("city"),
		State:           rec.GetString("state"),
		PinCode:         rec.GetString("pin_code"),
		GSTIN:           rec.GetString("gstin"),
		PAN:             rec.GetString("pan"),
		ContactPerson:   rec.GetString("contact_person"),
		Email:           rec.GetString("email"),
		Phone:           rec.GetString("phone"),
		BankBeneficiary: rec.GetString("bank_beneficiary"),
		BankName:        rec.GetString("bank_name"),
		BankAccountNo:   rec.GetString("bank_account_no"),
		BankIFSC:        rec.GetString("bank_ifsc"),
		BankBranch:      rec.GetString("bank_branch"),
	}
}

// VendorRequest is the JSON body for creating a vendor.
type VendorRequest struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	State           string `json:"state"`
	PinCode         string `json:"pin_code"`
	GSTIN           string `json:"gstin"`
	PAN             string `json:"pan"`
	ContactPerson   string `json:"contact_person"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BankBeneficiary string `json:"bank_beneficiary"`
	BankName        string `json:"bank_name"`
	BankAccountNo   string `json:"bank_account_no"`
	BankIFSC        string `json:"bank_ifsc"`
	BankBranch      string `json:"bank_branch"`
}

// vendorFormatFields fixes the order format errors are reported in.
var vendorFormatFields = []string{"gstin", "pan", "pin_code", "phone", "email", "bank_ifsc"}

// firstVendorFormatError runs the format validators over a vendor
// payload and returns the first failure in field order.
func firstVendorFormatError(req VendorRequest) string {
	errs := services.ValidateVendorFormat(map[string]string{
		"gstin":     req.GSTIN,
		"pan":       req.PAN,
		"pin_code":  req.PinCode,
		"phone":     req.Phone,
		"email":     req.Email,
		"bank_ifsc": req.BankIFSC,
	})
	for _, field := range vendorFormatFields {
		if msg, bad := errs[field]; bad {
			return msg
		}
	}
	return ""
}

// HandleVendorCreate adds a vendor to the directory. Called under a site
// path the new vendor is linked to that site in the same transaction.
func HandleVendorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")
		if siteID != "" {
			if _, err := app.FindRecordById("sites", siteID); err != nil {
				return fail(e, http.StatusNotFound, "Site not found", err)
			}
		}

		var req VendorRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		req.Name = strings.TrimSpace(req.Name)
		req.GSTIN = strings.ToUpper(strings.TrimSpace(req.GSTIN))
		req.PAN = strings.ToUpper(strings.TrimSpace(req.PAN))
		req.BankIFSC = strings.ToUpper(strings.TrimSpace(req.BankIFSC))

		if req.Name == "" {
			return fail(e, http.StatusBadRequest, "Name is required", nil)
		}
		if msg := firstVendorFormatError(req); msg != "" {
			return fail(e, http.StatusBadRequest, msg, nil)
		}

		existing, err := app.FindRecordsByFilter(
			"vendors",
			"name = {:name}",
			"", 1, 0,
			map[string]any{"name": req.Name},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}
		if len(existing) > 0 {
			return fail(e, http.StatusConflict, "A vendor with this name already exists", nil)
		}

		col, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		setVendorFields(record, req)

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			if siteID == "" {
				return nil
			}
			linkCol, err := txApp.FindCollectionByNameOrId("site_vendors")
			if err != nil {
				return err
			}
			link := core.NewRecord(linkCol)
			link.Set("site", siteID)
			link.Set("vendor", record.Id)
			return txApp.Save(link)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save vendor", err)
		}

		return created(e, vendorItem(record))
	}
}

// setVendorFields writes all vendor fields from a request payload.
func setVendorFields(record *core.Record, req VendorRequest) {
	record.Set("name", req.Name)
	record.Set("address", strings.TrimSpace(req.Address))
	record.Set("city", strings.TrimSpace(req.City))
	record.Set("state", strings.TrimSpace(req.State))
	record.Set("pin_code", strings.TrimSpace(req.PinCode))
	record.Set("gstin", req.GSTIN)
	record.Set("pan", req.PAN)
	record.Set("contact_person", strings.TrimSpace(req.ContactPerson))
	record.Set("email", strings.TrimSpace(req.Email))
	record.Set("phone", strings.TrimSpace(req.Phone))
	record.Set("bank_beneficiary", strings.TrimSpace(req.BankBeneficiary))
	record.Set("bank_name", strings.TrimSpace(req.BankName))
	record.Set("bank_account_no", strings.TrimSpace(req.BankAccountNo))
	record.Set("bank_ifsc", req.BankIFSC)
	record.Set("bank_branch", strings.TrimSpace(req.BankBranch))
}
