package collections

import (
	"fmt"
	"log"
	"math"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type staffDef struct {
	name  string
	role  string
	token string
	phone string
}

type budgetHeadDef struct {
	code     string
	name     string
	category string
}

type materialDef struct {
	code         string
	name         string
	category     string
	uom          string
	hsnCode      string
	gstPercent   float64
	reorderLevel float64
}

type vendorDef struct {
	name            string
	address         string
	city            string
	state           string
	pinCode         string
	gstin           string
	pan             string
	contactPerson   string
	phone           string
	email           string
	bankBeneficiary string
	bankName        string
	bankAccountNo   string
	bankIFSC        string
	bankBranch      string
}

type voucherDef struct {
	voucherNo   string
	voucherDate string
	voucherType string
	headCode    string
	particulars string
	amount      float64
	paymentMode string
	reference   string
}

type stockEntryDef struct {
	entryDate    string
	entryType    string
	materialCode string
	qty          float64
	rate         float64
	reference    string
}

type siteBudgetDef struct {
	materialCode string
	budgetQty    float64
	budgetValue  float64
}

type assetDef struct {
	assetCode    string
	name         string
	category     string
	purchaseDate string
	purchaseCost float64
	status       string
	remarks      string
}

type employeeDef struct {
	empCode       string
	name          string
	designation   string
	contractor    string
	phone         string
	wageType      string
	baseWage      float64
	pfApplicable  bool
	esiApplicable bool
}

type assignmentDef struct {
	fromDate   string
	wageRate   float64
	daysWorked float64
}

type subComponentDef struct {
	sortOrder   int
	compType    string
	description string
	qtyPerUnit  float64
	uom         string
	rate        float64
}

type boqItemDef struct {
	sortOrder    int
	itemCode     string
	description  string
	qty          float64
	uom          string
	rate         float64
	budgetedRate float64
	hsnCode      string
	gstPercent   float64
	subs         []subComponentDef
}

type indentItemDef struct {
	sortOrder    int
	materialCode string
	qty          float64
	requiredBy   string
	remarks      string
}

type poLineDef struct {
	sortOrder    int
	materialCode string
	description  string
	hsnCode      string
	qty          float64
	uom          string
	rate         float64
	gstPercent   float64
}

type purchaseOrderDef struct {
	poNumber      string
	orderDate     string
	quotationRef  string
	paymentTerms  string
	deliveryTerms string
	warrantyTerms string
	status        string
	lines         []poLineDef
}

// Seed populates all collections with realistic Shree Balaji
// Constructions site data. It is safe to call on every startup because
// it returns early if any site records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if sites already exist ─────────────────────
	sitesCol, err := app.FindCollectionByNameOrId("sites")
	if err != nil {
		return fmt.Errorf("seed: could not find sites collection: %w", err)
	}
	existing, err := app.FindAllRecords(sitesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query sites: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: sites collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("seed: could not find staff collection: %w", err)
	}
	headsCol, err := app.FindCollectionByNameOrId("budget_heads")
	if err != nil {
		return fmt.Errorf("seed: could not find budget_heads collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	vendorsCol, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		return fmt.Errorf("seed: could not find vendors collection: %w", err)
	}
	siteVendorsCol, err := app.FindCollectionByNameOrId("site_vendors")
	if err != nil {
		return fmt.Errorf("seed: could not find site_vendors collection: %w", err)
	}
	vouchersCol, err := app.FindCollectionByNameOrId("cash_vouchers")
	if err != nil {
		return fmt.Errorf("seed: could not find cash_vouchers collection: %w", err)
	}
	siteBudgetsCol, err := app.FindCollectionByNameOrId("site_budgets")
	if err != nil {
		return fmt.Errorf("seed: could not find site_budgets collection: %w", err)
	}
	stockCol, err := app.FindCollectionByNameOrId("stock_entries")
	if err != nil {
		return fmt.Errorf("seed: could not find stock_entries collection: %w", err)
	}
	assetsCol, err := app.FindCollectionByNameOrId("assets")
	if err != nil {
		return fmt.Errorf("seed: could not find assets collection: %w", err)
	}
	transfersCol, err := app.FindCollectionByNameOrId("asset_transfers")
	if err != nil {
		return fmt.Errorf("seed: could not find asset_transfers collection: %w", err)
	}
	employeesCol, err := app.FindCollectionByNameOrId("employees")
	if err != nil {
		return fmt.Errorf("seed: could not find employees collection: %w", err)
	}
	assignmentsCol, err := app.FindCollectionByNameOrId("manpower_assignments")
	if err != nil {
		return fmt.Errorf("seed: could not find manpower_assignments collection: %w", err)
	}
	boqsCol, err := app.FindCollectionByNameOrId("boqs")
	if err != nil {
		return fmt.Errorf("seed: could not find boqs collection: %w", err)
	}
	boqItemsCol, err := app.FindCollectionByNameOrId("boq_items")
	if err != nil {
		return fmt.Errorf("seed: could not find boq_items collection: %w", err)
	}
	boqSubItemsCol, err := app.FindCollectionByNameOrId("boq_sub_items")
	if err != nil {
		return fmt.Errorf("seed: could not find boq_sub_items collection: %w", err)
	}
	indentsCol, err := app.FindCollectionByNameOrId("indents")
	if err != nil {
		return fmt.Errorf("seed: could not find indents collection: %w", err)
	}
	indentItemsCol, err := app.FindCollectionByNameOrId("indent_items")
	if err != nil {
		return fmt.Errorf("seed: could not find indent_items collection: %w", err)
	}
	approvalsCol, err := app.FindCollectionByNameOrId("approval_events")
	if err != nil {
		return fmt.Errorf("seed: could not find approval_events collection: %w", err)
	}
	poCol, err := app.FindCollectionByNameOrId("purchase_orders")
	if err != nil {
		return fmt.Errorf("seed: could not find purchase_orders collection: %w", err)
	}
	poLinesCol, err := app.FindCollectionByNameOrId("po_line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find po_line_items collection: %w", err)
	}

	// ── helper: create staff member ──────────────────────────────────
	staffByRole := map[string]*core.Record{}
	createStaff := func(d staffDef) error {
		r := core.NewRecord(staffCol)
		r.Set("name", d.name)
		r.Set("role", d.role)
		r.Set("api_token", d.token)
		r.Set("phone", d.phone)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save staff %q: %w", d.name, err)
		}
		staffByRole[d.role] = r
		return nil
	}

	// ── helper: create budget head ───────────────────────────────────
	headByCode := map[string]*core.Record{}
	createBudgetHead := func(d budgetHeadDef) error {
		r := core.NewRecord(headsCol)
		r.Set("code", d.code)
		r.Set("name", d.name)
		r.Set("category", d.category)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save budget head %q: %w", d.code, err)
		}
		headByCode[d.code] = r
		return nil
	}

	// ── helper: create material ──────────────────────────────────────
	materialByCode := map[string]*core.Record{}
	createMaterial := func(d materialDef) error {
		r := core.NewRecord(materialsCol)
		r.Set("code", d.code)
		r.Set("name", d.name)
		r.Set("category", d.category)
		r.Set("uom", d.uom)
		if d.hsnCode != "" {
			r.Set("hsn_code", d.hsnCode)
		}
		r.Set("gst_percent", d.gstPercent)
		r.Set("reorder_level", d.reorderLevel)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save material %q: %w", d.code, err)
		}
		materialByCode[d.code] = r
		return nil
	}

	// ── helper: create vendor ────────────────────────────────────────
	createVendor := func(d vendorDef) (*core.Record, error) {
		r := core.NewRecord(vendorsCol)
		r.Set("name", d.name)
		r.Set("address", d.address)
		r.Set("city", d.city)
		r.Set("state", d.state)
		r.Set("pin_code", d.pinCode)
		r.Set("gstin", d.gstin)
		r.Set("pan", d.pan)
		r.Set("contact_person", d.contactPerson)
		r.Set("phone", d.phone)
		r.Set("email", d.email)
		r.Set("bank_beneficiary", d.bankBeneficiary)
		r.Set("bank_name", d.bankName)
		r.Set("bank_account_no", d.bankAccountNo)
		r.Set("bank_ifsc", d.bankIFSC)
		r.Set("bank_branch", d.bankBranch)
		if err := app.Save(r); err != nil {
			return nil, fmt.Errorf("seed: save vendor %q: %w", d.name, err)
		}
		return r, nil
	}

	// ── helper: link vendor to site ──────────────────────────────────
	linkVendorToSite := func(siteID, vendorID string) error {
		r := core.NewRecord(siteVendorsCol)
		r.Set("site", siteID)
		r.Set("vendor", vendorID)
		return app.Save(r)
	}

	// ── helper: create cash voucher ──────────────────────────────────
	createVoucher := func(siteID string, d voucherDef) error {
		head, okHead := headByCode[d.headCode]
		if !okHead {
			return fmt.Errorf("seed: voucher %q references unknown head %q", d.voucherNo, d.headCode)
		}
		r := core.NewRecord(vouchersCol)
		r.Set("site", siteID)
		r.Set("voucher_no", d.voucherNo)
		r.Set("voucher_date", d.voucherDate)
		r.Set("type", d.voucherType)
		r.Set("budget_head", head.Id)
		r.Set("particulars", d.particulars)
		r.Set("amount", d.amount)
		r.Set("payment_mode", d.paymentMode)
		if d.reference != "" {
			r.Set("reference", d.reference)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save voucher %q: %w", d.voucherNo, err)
		}
		return nil
	}

	// ── helper: create stock entry ───────────────────────────────────
	// value and closing figures stay empty here; the startup ledger
	// replay fills them in.
	createStockEntry := func(siteID string, d stockEntryDef) error {
		mat, okMat := materialByCode[d.materialCode]
		if !okMat {
			return fmt.Errorf("seed: stock entry references unknown material %q", d.materialCode)
		}
		r := core.NewRecord(stockCol)
		r.Set("site", siteID)
		r.Set("material", mat.Id)
		r.Set("entry_date", d.entryDate)
		r.Set("entry_type", d.entryType)
		r.Set("qty", d.qty)
		if d.rate != 0 {
			r.Set("rate", d.rate)
		}
		if d.reference != "" {
			r.Set("reference", d.reference)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save stock entry %s %s: %w", d.entryType, d.materialCode, err)
		}
		return nil
	}

	// ── helper: create site budget line ──────────────────────────────
	createSiteBudget := func(siteID string, d siteBudgetDef) error {
		mat, okMat := materialByCode[d.materialCode]
		if !okMat {
			return fmt.Errorf("seed: site budget references unknown material %q", d.materialCode)
		}
		r := core.NewRecord(siteBudgetsCol)
		r.Set("site", siteID)
		r.Set("material", mat.Id)
		r.Set("budget_qty", d.budgetQty)
		r.Set("budget_value", d.budgetValue)
		r.Set("alert_level", "none")
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save site budget %q: %w", d.materialCode, err)
		}
		return nil
	}

	// ── helper: create asset ─────────────────────────────────────────
	createAsset := func(siteID string, d assetDef) (*core.Record, error) {
		r := core.NewRecord(assetsCol)
		r.Set("asset_code", d.assetCode)
		r.Set("name", d.name)
		r.Set("category", d.category)
		if siteID != "" {
			r.Set("site", siteID)
		}
		r.Set("purchase_date", d.purchaseDate)
		r.Set("purchase_cost", d.purchaseCost)
		r.Set("status", d.status)
		if d.remarks != "" {
			r.Set("remarks", d.remarks)
		}
		if err := app.Save(r); err != nil {
			return nil, fmt.Errorf("seed: save asset %q: %w", d.assetCode, err)
		}
		return r, nil
	}

	// ── helper: create employee with one site assignment ─────────────
	createEmployee := func(siteID string, d employeeDef, a assignmentDef) error {
		r := core.NewRecord(employeesCol)
		r.Set("emp_code", d.empCode)
		r.Set("name", d.name)
		r.Set("designation", d.designation)
		r.Set("contractor", d.contractor)
		r.Set("phone", d.phone)
		r.Set("wage_type", d.wageType)
		r.Set("base_wage", d.baseWage)
		r.Set("pf_applicable", d.pfApplicable)
		r.Set("esi_applicable", d.esiApplicable)
		r.Set("status", "active")
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save employee %q: %w", d.empCode, err)
		}

		ar := core.NewRecord(assignmentsCol)
		ar.Set("employee", r.Id)
		ar.Set("site", siteID)
		ar.Set("from_date", a.fromDate)
		ar.Set("wage_rate", a.wageRate)
		ar.Set("days_worked", a.daysWorked)
		ar.Set("status", "active")
		if err := app.Save(ar); err != nil {
			return fmt.Errorf("seed: save assignment for %q: %w", d.empCode, err)
		}
		return nil
	}

	// ── helper: create BOQ item with rate components ─────────────────
	createBOQItem := func(boqID string, d boqItemDef) error {
		budgeted := d.budgetedRate
		if len(d.subs) > 0 {
			budgeted = 0
			for _, s := range d.subs {
				budgeted += s.qtyPerUnit * s.rate
			}
			budgeted = math.Round(budgeted*100) / 100
		}

		r := core.NewRecord(boqItemsCol)
		r.Set("boq", boqID)
		r.Set("sort_order", d.sortOrder)
		if d.itemCode != "" {
			r.Set("item_code", d.itemCode)
		}
		r.Set("description", d.description)
		r.Set("qty", d.qty)
		r.Set("uom", d.uom)
		r.Set("rate", d.rate)
		r.Set("budgeted_rate", budgeted)
		if d.hsnCode != "" {
			r.Set("hsn_code", d.hsnCode)
		}
		r.Set("gst_percent", d.gstPercent)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save boq item %q: %w", d.description, err)
		}

		for _, s := range d.subs {
			sr := core.NewRecord(boqSubItemsCol)
			sr.Set("boq_item", r.Id)
			sr.Set("sort_order", s.sortOrder)
			sr.Set("type", s.compType)
			sr.Set("description", s.description)
			sr.Set("qty_per_unit", s.qtyPerUnit)
			sr.Set("uom", s.uom)
			sr.Set("rate", s.rate)
			if err := app.Save(sr); err != nil {
				return fmt.Errorf("seed: save boq component %q: %w", s.description, err)
			}
		}
		return nil
	}

	// ── helper: record an approval event ─────────────────────────────
	createApprovalEvent := func(docType, docID, action, actorRole, fromStatus, toStatus, comment string) error {
		r := core.NewRecord(approvalsCol)
		r.Set("doc_type", docType)
		r.Set("doc_id", docID)
		r.Set("action", action)
		if actor, okActor := staffByRole[actorRole]; okActor {
			r.Set("actor", actor.Id)
		}
		r.Set("from_status", fromStatus)
		r.Set("to_status", toStatus)
		if comment != "" {
			r.Set("comment", comment)
		}
		return app.Save(r)
	}

	// ── helper: create purchase order with line items ────────────────
	createPO := func(siteID, vendorID, indentID string, d purchaseOrderDef) error {
		r := core.NewRecord(poCol)
		r.Set("site", siteID)
		r.Set("vendor", vendorID)
		if indentID != "" {
			r.Set("indent", indentID)
		}
		r.Set("po_number", d.poNumber)
		r.Set("order_date", d.orderDate)
		r.Set("quotation_ref", d.quotationRef)
		r.Set("payment_terms", d.paymentTerms)
		r.Set("delivery_terms", d.deliveryTerms)
		r.Set("warranty_terms", d.warrantyTerms)
		r.Set("status", d.status)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save PO %q: %w", d.poNumber, err)
		}

		for _, li := range d.lines {
			lr := core.NewRecord(poLinesCol)
			lr.Set("purchase_order", r.Id)
			lr.Set("sort_order", li.sortOrder)
			if li.materialCode != "" {
				mat, okMat := materialByCode[li.materialCode]
				if !okMat {
					return fmt.Errorf("seed: PO line references unknown material %q", li.materialCode)
				}
				lr.Set("material", mat.Id)
			}
			lr.Set("description", li.description)
			lr.Set("hsn_code", li.hsnCode)
			lr.Set("qty", li.qty)
			lr.Set("uom", li.uom)
			lr.Set("rate", li.rate)
			lr.Set("gst_percent", li.gstPercent)
			if err := app.Save(lr); err != nil {
				return fmt.Errorf("seed: save PO line %q: %w", li.description, err)
			}
		}
		return nil
	}

	// ══════════════════════════════════════════════════════════════════
	// MASTERS: staff, budget heads, materials, vendors
	// ══════════════════════════════════════════════════════════════════

	// Tokens are fixed so the demo API is usable straight after first
	// boot. Rotate them via the staff token endpoint for real use.
	for _, d := range []staffDef{
		{name: "Suresh Mishra", role: "admin", token: "sbc-admin-token", phone: "9437011001"},
		{name: "Kavita Patnaik", role: "accounts", token: "sbc-accounts-token", phone: "9437011002"},
		{name: "Mohan Swain", role: "stores", token: "sbc-stores-token", phone: "9437011003"},
		{name: "Ritu Samal", role: "purchase", token: "sbc-purchase-token", phone: "9437011004"},
		{name: "Alok Jena", role: "hr", token: "sbc-hr-token", phone: "9437011005"},
		{name: "Nisha Rout", role: "viewer", token: "sbc-viewer-token", phone: "9437011006"},
	} {
		if err := createStaff(d); err != nil {
			return err
		}
	}

	for _, d := range []budgetHeadDef{
		{code: "CEM", name: "Cement & Aggregates", category: "material"},
		{code: "STL", name: "Steel & Reinforcement", category: "material"},
		{code: "LAB", name: "Contract Labour", category: "labour"},
		{code: "PLM", name: "Plant & Machinery Hire", category: "machinery"},
		{code: "FUE", name: "Fuel & Lubricants", category: "overhead"},
		{code: "EST", name: "Site Establishment", category: "overhead"},
		{code: "ADV", name: "Client Advances & Recoveries", category: "advance"},
		{code: "STA", name: "GST & Statutory Payments", category: "statutory"},
	} {
		if err := createBudgetHead(d); err != nil {
			return err
		}
	}

	for _, d := range []materialDef{
		{code: "MAT-CEM-01", name: "OPC 53 Grade Cement", category: "cement", uom: "Bag", hsnCode: "2523", gstPercent: 28, reorderLevel: 100},
		{code: "MAT-STL-08", name: "TMT Bar Fe500D 8mm", category: "steel", uom: "MT", hsnCode: "7214", gstPercent: 18, reorderLevel: 2},
		{code: "MAT-STL-16", name: "TMT Bar Fe500D 16mm", category: "steel", uom: "MT", hsnCode: "7214", gstPercent: 18, reorderLevel: 3},
		{code: "MAT-AGG-20", name: "Coarse Aggregate 20mm", category: "aggregate", uom: "Cum", hsnCode: "2517", gstPercent: 5, reorderLevel: 30},
		{code: "MAT-AGG-RS", name: "River Sand (screened)", category: "aggregate", uom: "Cum", hsnCode: "2505", gstPercent: 5, reorderLevel: 25},
		{code: "MAT-ELE-01", name: "PVC Conduit 25mm", category: "electrical", uom: "Mtr", hsnCode: "3917", gstPercent: 18, reorderLevel: 500},
		{code: "MAT-PLB-01", name: "CPVC Pipe 25mm SDR-11", category: "plumbing", uom: "Mtr", hsnCode: "3917", gstPercent: 18},
		{code: "MAT-CON-01", name: "Binding Wire 18G", category: "consumable", uom: "Kg", hsnCode: "7217", gstPercent: 18, reorderLevel: 50},
	} {
		if err := createMaterial(d); err != nil {
			return err
		}
	}

	v1, err := createVendor(vendorDef{
		name: "Konark Cement Agencies", address: "Plot 88, Rasulgarh Industrial Estate",
		city: "Bhubaneswar", state: "Odisha", pinCode: "751010",
		gstin: "21AABCK4561R1Z8", pan: "AABCK4561R",
		contactPerson: "Pradeep Lenka", phone: "9437045678", email: "sales@konarkcement.in",
		bankBeneficiary: "Konark Cement Agencies", bankName: "State Bank of India",
		bankAccountNo: "31245678901", bankIFSC: "SBIN0001234", bankBranch: "Rasulgarh, Bhubaneswar",
	})
	if err != nil {
		return err
	}

	v2, err := createVendor(vendorDef{
		name: "Utkal Steel & Alloys", address: "NH-5, Jagatpur Industrial Area",
		city: "Cuttack", state: "Odisha", pinCode: "754021",
		gstin: "21AADCU7823M1Z4", pan: "AADCU7823M",
		contactPerson: "Sasmita Das", phone: "9438056789", email: "orders@utkalsteel.com",
		bankBeneficiary: "Utkal Steel & Alloys Pvt. Ltd.", bankName: "HDFC Bank",
		bankAccountNo: "50200045678912", bankIFSC: "HDFC0002345", bankBranch: "Jagatpur, Cuttack",
	})
	if err != nil {
		return err
	}

	v3, err := createVendor(vendorDef{
		name: "Sambalpur Earthmovers & Cranes", address: "Ainthapali Chowk",
		city: "Sambalpur", state: "Odisha", pinCode: "768004",
		gstin: "21AAEFS3412P1Z6", pan: "AAEFS3412P",
		contactPerson: "Bikash Meher", phone: "9439067890", email: "hire@sambalpurearthmovers.in",
		bankBeneficiary: "Sambalpur Earthmovers & Cranes", bankName: "ICICI Bank",
		bankAccountNo: "004405678912", bankIFSC: "ICIC0000567", bankBranch: "Ainthapali, Sambalpur",
	})
	if err != nil {
		return err
	}

	// ══════════════════════════════════════════════════════════════════
	// SITE 1: Kalinga Heights Tower A (KH01)
	// ══════════════════════════════════════════════════════════════════

	s1 := core.NewRecord(sitesCol)
	s1.Set("name", "Kalinga Heights — Tower A")
	s1.Set("client_name", "Kalinga Nagar Developers Pvt. Ltd.")
	s1.Set("site_code", "KH01")
	s1.Set("city", "Bhubaneswar")
	s1.Set("state", "Odisha")
	s1.Set("status", "active")
	s1.Set("opening_cash_balance", 250000)
	if err := app.Save(s1); err != nil {
		return fmt.Errorf("seed: save site 1: %w", err)
	}

	for _, vid := range []string{v1.Id, v2.Id} {
		if err := linkVendorToSite(s1.Id, vid); err != nil {
			return fmt.Errorf("seed: link vendor to site 1: %w", err)
		}
	}

	// ── Site 1 cashbook (FY 25-26) ───────────────────────────────────
	for _, d := range []voucherDef{
		{voucherNo: "SBC-CV-KH01-25-26-001", voucherDate: "2025-06-02", voucherType: "receipt", headCode: "ADV",
			particulars: "Mobilisation advance from client against RA bill 0", amount: 500000, paymentMode: "bank", reference: "NEFT KNDPL/2025/0455"},
		{voucherNo: "SBC-CV-KH01-25-26-002", voucherDate: "2025-06-09", voucherType: "payment", headCode: "CEM",
			particulars: "30% advance to Konark Cement against PO SBC-PO-KH01-25-26-001", amount: 65700, paymentMode: "bank", reference: "UTR 515223344"},
		{voucherNo: "SBC-CV-KH01-25-26-003", voucherDate: "2025-06-20", voucherType: "payment", headCode: "LAB",
			particulars: "Maa Tarini Labour Co-op, fortnight wages ending 15 Jun", amount: 118000, paymentMode: "cash"},
		{voucherNo: "SBC-CV-KH01-25-26-004", voucherDate: "2025-07-01", voucherType: "payment", headCode: "FUE",
			particulars: "HSD diesel 400 L for DG set and mixer", amount: 38200, paymentMode: "upi", reference: "UPI/552114789"},
		{voucherNo: "SBC-CV-KH01-25-26-005", voucherDate: "2025-07-15", voucherType: "payment", headCode: "STA",
			particulars: "GST challan for June, RCM on labour contract", amount: 21350, paymentMode: "bank", reference: "CPIN 25062100043"},
	} {
		if err := createVoucher(s1.Id, d); err != nil {
			return err
		}
	}

	// ── Site 1 material budgets ──────────────────────────────────────
	// The steel budget covers the raft phase only, so the ledger below
	// pushes it past the 75% warning line.
	for _, d := range []siteBudgetDef{
		{materialCode: "MAT-CEM-01", budgetQty: 4200, budgetValue: 1533000},
		{materialCode: "MAT-STL-16", budgetQty: 12, budgetValue: 654000},
		{materialCode: "MAT-AGG-RS", budgetQty: 380, budgetValue: 608000},
	} {
		if err := createSiteBudget(s1.Id, d); err != nil {
			return err
		}
	}

	// ── Site 1 stock ledger ──────────────────────────────────────────
	for _, d := range []stockEntryDef{
		{entryDate: "2025-06-10", entryType: "receipt", materialCode: "MAT-CEM-01", qty: 600, rate: 365, reference: "SBC-PO-KH01-25-26-001"},
		{entryDate: "2025-06-12", entryType: "receipt", materialCode: "MAT-CON-01", qty: 150, rate: 92, reference: "SBC-PO-KH01-25-26-001"},
		{entryDate: "2025-06-18", entryType: "receipt", materialCode: "MAT-STL-16", qty: 24, rate: 54500, reference: "Utkal Steel DC 2211"},
		{entryDate: "2025-06-24", entryType: "issue", materialCode: "MAT-CEM-01", qty: 220, reference: "Raft pour lot 1"},
		{entryDate: "2025-06-30", entryType: "issue", materialCode: "MAT-STL-16", qty: 9.5, reference: "Raft reinforcement"},
		{entryDate: "2025-07-08", entryType: "receipt", materialCode: "MAT-CEM-01", qty: 400, rate: 372, reference: "KCA invoice 2307"},
		{entryDate: "2025-07-12", entryType: "issue", materialCode: "MAT-CEM-01", qty: 310, reference: "Raft pour lot 2"},
		{entryDate: "2025-07-20", entryType: "adjustment", materialCode: "MAT-CEM-01", qty: -6, reference: "Damaged bags written off"},
	} {
		if err := createStockEntry(s1.Id, d); err != nil {
			return err
		}
	}

	// ── Site 1 BOQ: Tower A Structural Package ───────────────────────
	boq1 := core.NewRecord(boqsCol)
	boq1.Set("site", s1.Id)
	boq1.Set("title", "Tower A Structural Package")
	boq1.Set("reference_number", "KH01/BOQ/2025/01")
	if err := app.Save(boq1); err != nil {
		return fmt.Errorf("seed: save boq1: %w", err)
	}

	if err := createBOQItem(boq1.Id, boqItemDef{
		sortOrder: 1, itemCode: "CW-01", description: "RCC M25 raft foundation", qty: 850, uom: "Cum", rate: 6200, gstPercent: 18,
		subs: []subComponentDef{
			{sortOrder: 1, compType: "material", description: "OPC 53 cement", qtyPerUnit: 6.5, uom: "Bag", rate: 365},
			{sortOrder: 2, compType: "material", description: "Coarse aggregate 20mm", qtyPerUnit: 0.9, uom: "Cum", rate: 1450},
			{sortOrder: 3, compType: "material", description: "River sand (screened)", qtyPerUnit: 0.45, uom: "Cum", rate: 1600},
			{sortOrder: 4, compType: "labour", description: "Concreting gang", qtyPerUnit: 1, uom: "Cum", rate: 650},
			{sortOrder: 5, compType: "machinery", description: "Batching plant and pump hire", qtyPerUnit: 1, uom: "Cum", rate: 480},
		},
	}); err != nil {
		return err
	}

	if err := createBOQItem(boq1.Id, boqItemDef{
		sortOrder: 2, itemCode: "CW-02", description: "TMT reinforcement Fe500D, cut bend and fix", qty: 95, uom: "MT", rate: 78000, budgetedRate: 71500, hsnCode: "7214", gstPercent: 18,
	}); err != nil {
		return err
	}

	if err := createBOQItem(boq1.Id, boqItemDef{
		sortOrder: 3, itemCode: "CW-03", description: "AAC blockwork 200mm in cement mortar", qty: 1400, uom: "Sqm", rate: 1150, gstPercent: 18,
		subs: []subComponentDef{
			{sortOrder: 1, compType: "material", description: "AAC block 600x200x200", qtyPerUnit: 8.5, uom: "Nos", rate: 55},
			{sortOrder: 2, compType: "material", description: "Thin-bed jointing mortar", qtyPerUnit: 1.4, uom: "Kg", rate: 18},
			{sortOrder: 3, compType: "labour", description: "Mason and helper", qtyPerUnit: 1, uom: "Sqm", rate: 280},
		},
	}); err != nil {
		return err
	}

	// ── Site 1 indent, approved through both levels ──────────────────
	ind1 := core.NewRecord(indentsCol)
	ind1.Set("site", s1.Id)
	ind1.Set("indent_no", "SBC-IND-KH01-25-26-001")
	ind1.Set("indent_date", "2025-06-05")
	ind1.Set("requested_by", staffByRole["stores"].Id)
	ind1.Set("status", "approved")
	ind1.Set("remarks", "Raft pour M25, first lot")
	if err := app.Save(ind1); err != nil {
		return fmt.Errorf("seed: save indent 1: %w", err)
	}

	for _, d := range []indentItemDef{
		{sortOrder: 1, materialCode: "MAT-CEM-01", qty: 600, requiredBy: "2025-06-12", remarks: "Raft pour lot 1"},
		{sortOrder: 2, materialCode: "MAT-CON-01", qty: 150, requiredBy: "2025-06-12"},
	} {
		mat, okMat := materialByCode[d.materialCode]
		if !okMat {
			return fmt.Errorf("seed: indent item references unknown material %q", d.materialCode)
		}
		r := core.NewRecord(indentItemsCol)
		r.Set("indent", ind1.Id)
		r.Set("material", mat.Id)
		r.Set("qty", d.qty)
		r.Set("required_by", d.requiredBy)
		if d.remarks != "" {
			r.Set("remarks", d.remarks)
		}
		r.Set("sort_order", d.sortOrder)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save indent item %q: %w", d.materialCode, err)
		}
	}

	if err := createApprovalEvent("indent", ind1.Id, "submit", "stores", "draft", "submitted", ""); err != nil {
		return fmt.Errorf("seed: save approval event: %w", err)
	}
	if err := createApprovalEvent("indent", ind1.Id, "approve", "stores", "submitted", "site_approved", "Stock verified at store"); err != nil {
		return fmt.Errorf("seed: save approval event: %w", err)
	}
	if err := createApprovalEvent("indent", ind1.Id, "approve", "purchase", "site_approved", "approved", "Clubbed with June cement order"); err != nil {
		return fmt.Errorf("seed: save approval event: %w", err)
	}

	// ── Site 1 purchase order raised from the indent ─────────────────
	if err := createPO(s1.Id, v1.Id, ind1.Id, purchaseOrderDef{
		poNumber: "SBC-PO-KH01-25-26-001", orderDate: "2025-06-08", quotationRef: "KCA/Q/2025/118",
		paymentTerms:  "30% advance, balance against delivery",
		deliveryTerms: "FOR site, Kalinga Heights. Delivery within 7 days",
		status:        "sent",
		lines: []poLineDef{
			{sortOrder: 1, materialCode: "MAT-CEM-01", description: "OPC 53 Grade Cement, 50kg bags", hsnCode: "2523", qty: 600, uom: "Bag", rate: 365, gstPercent: 28},
			{sortOrder: 2, materialCode: "MAT-CON-01", description: "Binding Wire 18G", hsnCode: "7217", qty: 150, uom: "Kg", rate: 92, gstPercent: 18},
		},
	}); err != nil {
		return err
	}

	// ── Site 1 assets ────────────────────────────────────────────────
	if _, err := createAsset(s1.Id, assetDef{
		assetCode: "AST-PM-0001", name: "Schwing Stetter CP18 batching plant", category: "plant_machinery",
		purchaseDate: "2024-11-15", purchaseCost: 2850000, status: "in_service",
	}); err != nil {
		return err
	}
	if _, err := createAsset(s1.Id, assetDef{
		assetCode: "AST-SI-0001", name: "Leica TS07 total station", category: "survey_instrument",
		purchaseDate: "2024-02-10", purchaseCost: 465000, status: "in_service",
	}); err != nil {
		return err
	}
	scaffolding, err := createAsset(s1.Id, assetDef{
		assetCode: "AST-SH-0001", name: "H-frame scaffolding set, 200 frames", category: "shuttering",
		purchaseDate: "2023-05-18", purchaseCost: 640000, status: "idle",
		remarks: "Awaiting Tower A superstructure",
	})
	if err != nil {
		return err
	}

	// ── Site 1 manpower ──────────────────────────────────────────────
	if err := createEmployee(s1.Id,
		employeeDef{empCode: "EMP-001", name: "Ramesh Sahu", designation: "Mason", contractor: "Maa Tarini Labour Co-op", phone: "9437022001", wageType: "daily", baseWage: 850, esiApplicable: true},
		assignmentDef{fromDate: "2025-06-01", wageRate: 850, daysWorked: 26},
	); err != nil {
		return err
	}
	if err := createEmployee(s1.Id,
		employeeDef{empCode: "EMP-002", name: "Dilip Behera", designation: "Helper", contractor: "Maa Tarini Labour Co-op", phone: "9437022002", wageType: "daily", baseWage: 550, esiApplicable: true},
		assignmentDef{fromDate: "2025-06-01", wageRate: 550, daysWorked: 26},
	); err != nil {
		return err
	}
	if err := createEmployee(s1.Id,
		employeeDef{empCode: "EMP-003", name: "Santosh Pradhan", designation: "Batching plant operator", phone: "9437022003", wageType: "monthly", baseWage: 32000, pfApplicable: true},
		assignmentDef{fromDate: "2025-06-01", wageRate: 32000, daysWorked: 30},
	); err != nil {
		return err
	}

	// ══════════════════════════════════════════════════════════════════
	// SITE 2: NH-16 Service Road Package II (NH16)
	// ══════════════════════════════════════════════════════════════════

	s2 := core.NewRecord(sitesCol)
	s2.Set("name", "NH-16 Service Road — Package II")
	s2.Set("client_name", "NHAI, Bhubaneswar PIU")
	s2.Set("site_code", "NH16")
	s2.Set("city", "Cuttack")
	s2.Set("state", "Odisha")
	s2.Set("status", "active")
	s2.Set("opening_cash_balance", 100000)
	if err := app.Save(s2); err != nil {
		return fmt.Errorf("seed: save site 2: %w", err)
	}

	for _, vid := range []string{v1.Id, v3.Id} {
		if err := linkVendorToSite(s2.Id, vid); err != nil {
			return fmt.Errorf("seed: link vendor to site 2: %w", err)
		}
	}

	for _, d := range []voucherDef{
		{voucherNo: "SBC-CV-NH16-25-26-001", voucherDate: "2025-07-03", voucherType: "receipt", headCode: "ADV",
			particulars: "Imprest transfer from head office", amount: 150000, paymentMode: "bank", reference: "NEFT SBC/HO/2025/0712"},
		{voucherNo: "SBC-CV-NH16-25-26-002", voucherDate: "2025-07-18", voucherType: "payment", headCode: "PLM",
			particulars: "Sambalpur Earthmovers, excavator hire bill 1", amount: 96000, paymentMode: "bank", reference: "UTR 518990011"},
	} {
		if err := createVoucher(s2.Id, d); err != nil {
			return err
		}
	}

	if err := createSiteBudget(s2.Id, siteBudgetDef{materialCode: "MAT-CEM-01", budgetQty: 900, budgetValue: 342000}); err != nil {
		return err
	}

	for _, d := range []stockEntryDef{
		{entryDate: "2025-07-05", entryType: "receipt", materialCode: "MAT-CEM-01", qty: 200, rate: 380, reference: "KCA invoice 2288"},
		{entryDate: "2025-07-16", entryType: "issue", materialCode: "MAT-CEM-01", qty: 90, reference: "CD-4 base course"},
	} {
		if err := createStockEntry(s2.Id, d); err != nil {
			return err
		}
	}

	// ── Site 2 BOQ: Culvert CD-4 Package ─────────────────────────────
	boq2 := core.NewRecord(boqsCol)
	boq2.Set("site", s2.Id)
	boq2.Set("title", "Culvert CD-4 Package")
	boq2.Set("reference_number", "NH16/BOQ/2025/07")
	if err := app.Save(boq2); err != nil {
		return fmt.Errorf("seed: save boq2: %w", err)
	}

	if err := createBOQItem(boq2.Id, boqItemDef{
		sortOrder: 1, itemCode: "RW-01", description: "PCC M15 levelling course", qty: 120, uom: "Cum", rate: 4800, budgetedRate: 4350, gstPercent: 18,
	}); err != nil {
		return err
	}

	// ── Site 2 machinery hire PO, still in draft ─────────────────────
	if err := createPO(s2.Id, v3.Id, "", purchaseOrderDef{
		poNumber: "SBC-PO-NH16-25-26-001", orderDate: "2025-07-02",
		paymentTerms:  "Monthly running bill, 15 day credit",
		deliveryTerms: "Machinery to report at CD-4 chainage 14+200",
		status:        "draft",
		lines: []poLineDef{
			{sortOrder: 1, description: "Hydraulic excavator hire, 20T class with operator", hsnCode: "9973", qty: 180, uom: "Hour", rate: 1600, gstPercent: 18},
			{sortOrder: 2, description: "Vibratory roller hire, 10T", hsnCode: "9973", qty: 60, uom: "Hour", rate: 1200, gstPercent: 18},
		},
	}); err != nil {
		return err
	}

	// ── Site 2 assets ────────────────────────────────────────────────
	if _, err := createAsset(s2.Id, assetDef{
		assetCode: "AST-PM-0002", name: "Ajax Fiori 4000AT self-loading mixer", category: "plant_machinery",
		purchaseDate: "2023-08-20", purchaseCost: 1920000, status: "in_service",
	}); err != nil {
		return err
	}
	if _, err := createAsset(s2.Id, assetDef{
		assetCode: "AST-VH-0001", name: "Tata Yodha pickup OD-02-AB-4521", category: "vehicle",
		purchaseDate: "2022-12-05", purchaseCost: 1080000, status: "in_service",
	}); err != nil {
		return err
	}

	// Head office pool asset, not attached to any site.
	if _, err := createAsset("", assetDef{
		assetCode: "AST-IT-0001", name: "Dell Latitude 3440 site laptop", category: "it_equipment",
		purchaseDate: "2024-09-01", purchaseCost: 58000, status: "in_service",
		remarks: "Head office pool",
	}); err != nil {
		return err
	}

	// The scaffolding set came off the culvert job before Tower A.
	tr := core.NewRecord(transfersCol)
	tr.Set("asset", scaffolding.Id)
	tr.Set("from_site", s2.Id)
	tr.Set("to_site", s1.Id)
	tr.Set("transfer_date", "2025-07-01")
	tr.Set("remarks", "Culvert shuttering struck, shifted to Tower A")
	if err := app.Save(tr); err != nil {
		return fmt.Errorf("seed: save asset transfer: %w", err)
	}

	// ── Site 2 manpower ──────────────────────────────────────────────
	if err := createEmployee(s2.Id,
		employeeDef{empCode: "EMP-004", name: "Meena Mohanty", designation: "Site supervisor", phone: "9437022004", wageType: "monthly", baseWage: 28000, pfApplicable: true},
		assignmentDef{fromDate: "2025-07-01", wageRate: 28000, daysWorked: 30},
	); err != nil {
		return err
	}
	if err := createEmployee(s2.Id,
		employeeDef{empCode: "EMP-005", name: "Bijay Nayak", designation: "Bar bender", phone: "9437022005", wageType: "daily", baseWage: 780, esiApplicable: true},
		assignmentDef{fromDate: "2025-07-04", wageRate: 780, daysWorked: 22},
	); err != nil {
		return err
	}

	log.Println("seed: all seed data inserted successfully (2 sites, 6 staff, 3 vendors, 2 BOQs, 1 indent, 2 POs)")
	return nil
}
