package services

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// VoucherInput is the payload for creating or updating a cash voucher.
type VoucherInput struct {
	SiteID      string
	VoucherDate string
	Type        string
	BudgetHead  string
	Particulars string
	Amount      float64
	PaymentMode string
	Reference   string
}

// Validate checks the voucher payload before any record is written.
func (in VoucherInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SiteID, validation.Required),
		validation.Field(&in.VoucherDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&in.Type, validation.Required, validation.In("receipt", "payment")),
		validation.Field(&in.BudgetHead, validation.Required),
		validation.Field(&in.Particulars, validation.Required, validation.Length(3, 500)),
		validation.Field(&in.Amount, validation.Required, validation.Min(0.01)),
		validation.Field(&in.PaymentMode, validation.In("cash", "bank", "upi")),
	)
}

// RecalculateCashbook rebuilds the running balance of every voucher of a
// site. Vouchers are replayed in voucher_date then created order starting
// from the site's opening cash balance; receipts add, payments subtract,
// and the balance is rounded to 2 decimals at every step. Only rows whose
// stored balance changed are written back. The caller owns the
// surrounding transaction.
func RecalculateCashbook(app core.App, siteID string) error {
	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return fmt.Errorf("site not found: %w", err)
	}

	vouchers, err := app.FindRecordsByFilter(
		"cash_vouchers",
		"site = {:siteId}",
		"voucher_date,created",
		0,
		0,
		map[string]any{"siteId": siteID},
	)
	if err != nil {
		return fmt.Errorf("load vouchers: %w", err)
	}

	balance := Round2(site.GetFloat("opening_cash_balance"))
	for _, v := range vouchers {
		amount := v.GetFloat("amount")
		if v.GetString("type") == "receipt" {
			balance += amount
		} else {
			balance -= amount
		}
		balance = Round2(balance)

		if v.GetFloat("running_balance") != balance {
			v.Set("running_balance", balance)
			if err := app.Save(v); err != nil {
				return fmt.Errorf("save voucher %s: %w", v.GetString("voucher_no"), err)
			}
		}
	}

	return nil
}

// CashbookTotals summarises a site's cashbook over an optional period.
type CashbookTotals struct {
	OpeningBalance float64 `json:"opening_balance"`
	TotalReceipts  float64 `json:"total_receipts"`
	TotalPayments  float64 `json:"total_payments"`
	ClosingBalance float64 `json:"closing_balance"`
}

// GetCashbookTotals aggregates receipts and payments for a site with a
// single SQL pass. Empty fromDate/toDate skip the respective bound. The
// opening balance covers the site's configured opening plus everything
// before fromDate.
func GetCashbookTotals(app core.App, siteID, fromDate, toDate string) (CashbookTotals, error) {
	var totals CashbookTotals

	site, err := app.FindRecordById("sites", siteID)
	if err != nil {
		return totals, fmt.Errorf("site not found: %w", err)
	}
	totals.OpeningBalance = Round2(site.GetFloat("opening_cash_balance"))

	if fromDate != "" {
		var before struct {
			Receipts float64 `db:"receipts"`
			Payments float64 `db:"payments"`
		}
		err := app.DB().NewQuery(`
			SELECT
				COALESCE(SUM(CASE WHEN type = 'receipt' THEN amount ELSE 0 END), 0) AS receipts,
				COALESCE(SUM(CASE WHEN type = 'payment' THEN amount ELSE 0 END), 0) AS payments
			FROM cash_vouchers
			WHERE site = {:site} AND voucher_date < {:from}
		`).Bind(dbx.Params{"site": siteID, "from": fromDate}).One(&before)
		if err != nil {
			return totals, fmt.Errorf("aggregate opening: %w", err)
		}
		totals.OpeningBalance = Round2(totals.OpeningBalance + before.Receipts - before.Payments)
	}

	var period struct {
		Receipts float64 `db:"receipts"`
		Payments float64 `db:"payments"`
	}
	err = app.DB().NewQuery(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'receipt' THEN amount ELSE 0 END), 0) AS receipts,
			COALESCE(SUM(CASE WHEN type = 'payment' THEN amount ELSE 0 END), 0) AS payments
		FROM cash_vouchers
		WHERE site = {:site}
		  AND ({:from} = '' OR voucher_date >= {:from})
		  AND ({:to} = '' OR voucher_date <= {:to})
	`).Bind(dbx.Params{"site": siteID, "from": fromDate, "to": toDate}).One(&period)
	if err != nil {
		return totals, fmt.Errorf("aggregate period: %w", err)
	}

	totals.TotalReceipts = Round2(period.Receipts)
	totals.TotalPayments = Round2(period.Payments)
	totals.ClosingBalance = Round2(totals.OpeningBalance + totals.TotalReceipts - totals.TotalPayments)

	return totals, nil
}
