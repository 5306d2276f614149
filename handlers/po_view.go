package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitebooks/services"
)

// POVendorBlock is the vendor detail printed on the order.
type POVendorBlock struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	PinCode       string `json:"pin_code"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// POTotalsPayload is the order-level money summary.
type POTotalsPayload struct {
	TaxableValue  float64 `json:"taxable_value"`
	GSTPercent    float64 `json:"gst_percent"`
	GSTAmount     float64 `json:"gst_amount"`
	RoundOff      float64 `json:"round_off"`
	GrandTotal    float64 `json:"grand_total"`
	AmountInWords string  `json:"amount_in_words"`
}

// POViewResponse is the full purchase order detail: header, vendor
// block, lines, totals, terms, trail and the moves the calling role may
// make next.
type POViewResponse struct {
	POListItem
	Vendor        POVendorBlock       `json:"vendor_detail"`
	Items         []POLineItem        `json:"items"`
	Totals        POTotalsPayload     `json:"totals"`
	PaymentTerms  string              `json:"payment_terms"`
	DeliveryTerms string              `json:"delivery_terms"`
	WarrantyTerms string              `json:"warranty_terms"`
	Trail         []ApprovalEventItem `json:"trail"`
	NextActions   []string            `json:"next_actions"`
}

// HandlePOView returns one purchase order with its lines, totals and
// approval trail.
func HandlePOView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		poID := e.Request.PathValue("id")

		record, err := app.FindRecordById("purchase_orders", poID)
		if err != nil {
			return fail(e, http.StatusNotFound, "Purchase order not found", err)
		}

		lines, err := app.FindRecordsByFilter(
			"po_line_items",
			"purchase_order = {:po}",
			"sort_order", 0, 0,
			map[string]any{"po": poID},
		)
		if err != nil {
			return fail(e, http.StatusInternalServerError, "Could not load line items", err)
		}

		resp := POViewResponse{
			POListItem:    poListItem(app, record),
			Items:         make([]POLineItem, 0, len(lines)),
			PaymentTerms:  record.GetString("payment_terms"),
			DeliveryTerms: record.GetString("delivery_terms"),
			WarrantyTerms: record.GetString("warranty_terms"),
			Trail:         approvalTrail(app, "purchase_order", poID),
		}

		var calcs []services.LineItemAmounts
		for _, line := range lines {
			item := poLineItem(app, line)
			resp.Items = append(resp.Items, item)
			calcs = append(calcs, services.CalcLineItem(item.Rate, item.Qty, item.GSTPercent))
		}

		totals := services.CalcPOTotals(calcs)
		resp.Totals = POTotalsPayload{
			TaxableValue:  totals.TaxableValue,
			GSTPercent:    totals.GSTPercent,
			GSTAmount:     totals.GSTAmount,
			RoundOff:      totals.RoundOff,
			GrandTotal:    totals.GrandTotal,
			AmountInWords: services.AmountToWords(totals.GrandTotal),
		}

		if vendorID := record.GetString("vendor"); vendorID != "" {
			vendor, err := app.FindRecordById("vendors", vendorID)
			if err != nil {
				log.Printf("po_view: could not find vendor %s: %v", vendorID, err)
			} else {
				resp.Vendor = POVendorBlock{
					ID:            vendor.Id,
					Name:          vendor.GetString("name"),
					Address:       vendor.GetString("address"),
					City:          vendor.GetString("city"),
					State:         vendor.GetString("state"),
					PinCode:       vendor.GetString("pin_code"),
					GSTIN:         vendor.GetString("gstin"),
					PAN:           vendor.GetString("pan"),
					ContactPerson: vendor.GetString("contact_person"),
					Phone:         vendor.GetString("phone"),
					Email:         vendor.GetString("email"),
				}
			}
		}

		if staff := GetStaff(e.Request); staff != nil {
			resp.NextActions = services.NextPOStatuses(record.GetString("status"), staff.Role)
		}

		return ok(e, resp)
	}
}
