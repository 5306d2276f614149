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

// VoucherRequest is the JSON body for creating or updating a voucher.
type VoucherRequest struct {
	VoucherDate string  `json:"voucher_date"`
	Type        string  `json:"type"`
	BudgetHead  string  `json:"budget_head"`
	Particulars string  `json:"particulars"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
	Reference   string  `json:"reference"`
}

// VoucherItem is one cashbook row in responses.
type VoucherItem struct {
	ID             string  `json:"id"`
	VoucherNo      string  `json:"voucher_no"`
	VoucherDate    string  `json:"voucher_date"`
	Type           string  `json:"type"`
	BudgetHead     string  `json:"budget_head"`
	BudgetHeadCode string  `json:"budget_head_code"`
	BudgetHeadName string  `json:"budget_head_name"`
	Particulars    string  `json:"particulars"`
	Amount         float64 `json:"amount"`
	PaymentMode    string  `json:"payment_mode"`
	Reference      string  `json:"reference"`
	RunningBalance float64 `json:"running_balance"`
}

func voucherItem(app *pocketbase.PocketBase, rec *core.Record) VoucherItem {
	headCode, headName := "", ""
	if headID := rec.GetString("budget_head"); headID != "" {
		head, err := app.FindRecordById("budget_heads", headID)
		if err != nil {
			log.Printf("voucher: could not find budget head %s: %v", headID, err)
		} else {
			headCode = head.GetString("code")
			headName = head.GetString("name")
		}
	}
	return VoucherItem{
		ID:             rec.Id,
		VoucherNo:      rec.GetString("voucher_no"),
		VoucherDate:    rec.GetString("voucher_date"),
		Type:           rec.GetString("type"),
		BudgetHead:     rec.GetString("budget_head"),
		BudgetHeadCode: headCode,
		BudgetHeadName: headName,
		Particulars:    rec.GetString("particulars"),
		Amount:         rec.GetFloat("amount"),
		PaymentMode:    rec.GetString("payment_mode"),
		Reference:      rec.GetString("reference"),
		RunningBalance: rec.GetFloat("running_balance"),
	}
}

// HandleVoucherCreate books a voucher against a site's cashbook. The
// voucher number is generated, and every running balance after the
// voucher's date is rebuilt in the same transaction.
func HandleVoucherCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		siteID := e.Request.PathValue("siteId")

		if _, err := app.FindRecordById("sites", siteID); err != nil {
			return fail(e, http.StatusNotFound, "Site not found", err)
		}

		var req VoucherRequest
		if err := e.BindBody(&req); err != nil {
			return fail(e, http.StatusBadRequest, "Invalid request body", err)
		}

		input := services.VoucherInput{
			SiteID:      siteID,
			VoucherDate: strings.TrimSpace(req.VoucherDate),
			Type:        req.Type,
			BudgetHead:  req.BudgetHead,
			Particulars: strings.TrimSpace(req.Particulars),
			Amount:      services.Round2(req.Amount),
			PaymentMode: req.PaymentMode,
			Reference:   strings.TrimSpace(req.Reference),
		}
		if err := input.Validate(); err != nil {
			return fail(e, http.StatusBadRequest, err.Error(), nil)
		}
		if _, err := app.FindRecordById("budget_heads", input.BudgetHead); err != nil {
			return fail(e, http.StatusBadRequest, "Unknown budget head", err)
		}

		voucherNo, err := services.GenerateVoucherNumber(app, siteID, time.Now())
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not generate voucher number", err)
		}

		col, err := app.FindCollectionByNameOrId("cash_vouchers")
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Something went wrong. Please try again.", err)
		}

		record := core.NewRecord(col)
		record.Set("site", siteID)
		record.Set("voucher_no", voucherNo)
		record.Set("voucher_date", input.VoucherDate)
		record.Set("type", input.Type)
		record.Set("budget_head", input.BudgetHead)
		record.Set("particulars", input.Particulars)
		record.Set("amount", input.Amount)
		record.Set("payment_mode", input.PaymentMode)
		record.Set("reference", input.Reference)

		err = app.RunInTransaction(func(txApp core.App) error {
			if err := txApp.Save(record); err != nil {
				return err
			}
			return services.RecalculateCashbook(txApp, siteID)
		})
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not save voucher", err)
		}

		saved, err := app.FindRecordById("cash_vouchers", record.Id)
		if err != nil {
			saved = record
		}
		return created(e, voucherItem(app, saved))
	}
}
