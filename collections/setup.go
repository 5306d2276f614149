package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures every collection the app uses.
// Masters (sites, staff, budget_heads, materials, vendors) come first so
// dependent collections can reference their IDs.
func Setup(app *pocketbase.PocketBase) {
	sites := ensureCollection(app, "sites", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "site_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "state", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "completed", "on_hold"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "opening_cash_balance", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	staff := ensureCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"admin", "accounts", "stores", "purchase", "hr", "viewer"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "api_token", Required: true})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	budgetHeads := ensureCollection(app, "budget_heads", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    []string{"material", "labour", "machinery", "overhead", "advance", "statutory"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	materials := ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  false,
			Values:    []string{"cement", "steel", "aggregate", "electrical", "plumbing", "finishing", "consumable", "other"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.TextField{Name: "hsn_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gst_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "reorder_level", Required: false})
		c.Fields.Add(&core.TextField{Name: "import_batch", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	vendors := ensureCollection(app, "vendors", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "state", Required: false})
		c.Fields.Add(&core.TextField{Name: "pin_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "gstin", Required: false})
		c.Fields.Add(&core.TextField{Name: "pan", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_person", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_beneficiary", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_account_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_ifsc", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_branch", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "site_vendors", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "vendor",
			Required:      true,
			CollectionId:  vendors.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "cash_vouchers", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "voucher_no", Required: true})
		c.Fields.Add(&core.TextField{Name: "voucher_date", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"receipt", "payment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "budget_head",
			Required:     true,
			CollectionId: budgetHeads.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "particulars", Required: true})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_mode",
			Required:  false,
			Values:    []string{"cash", "bank", "upi"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "reference", Required: false})
		c.Fields.Add(&core.NumberField{Name: "running_balance", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "site_budgets", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "material",
			Required:     true,
			CollectionId: materials.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "budget_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "budget_value", Required: false})
		c.Fields.Add(&core.NumberField{Name: "consumed_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "consumed_value", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "alert_level",
			Required:  false,
			Values:    []string{"none", "watch_50", "warn_75", "exceeded"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "stock_entries", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "material",
			Required:     true,
			CollectionId: materials.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "entry_date", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "entry_type",
			Required:  true,
			Values:    []string{"receipt", "issue", "adjustment"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "value", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference", Required: false})
		c.Fields.Add(&core.NumberField{Name: "closing_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "closing_value", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	assets := ensureCollection(app, "assets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "asset_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    []string{"plant_machinery", "survey_instrument", "shuttering", "vehicle", "it_equipment", "other"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "site",
			Required:     false,
			CollectionId: sites.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "purchase_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "purchase_cost", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"in_service", "idle", "under_repair", "scrapped"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "asset_transfers", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "asset",
			Required:      true,
			CollectionId:  assets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "from_site",
			Required:     false,
			CollectionId: sites.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "to_site",
			Required:     true,
			CollectionId: sites.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "transfer_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	employees := ensureCollection(app, "employees", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "emp_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "designation", Required: false})
		c.Fields.Add(&core.TextField{Name: "contractor", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "pan", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "wage_type",
			Required:  true,
			Values:    []string{"daily", "monthly"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "base_wage", Required: false})
		c.Fields.Add(&core.BoolField{Name: "pf_applicable"})
		c.Fields.Add(&core.BoolField{Name: "esi_applicable"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"active", "inactive"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "import_batch", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "manpower_assignments", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "employee",
			Required:      true,
			CollectionId:  employees.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "from_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "to_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "wage_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "days_worked", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"active", "closed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	indents := ensureCollection(app, "indents", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "indent_no", Required: true})
		c.Fields.Add(&core.TextField{Name: "indent_date", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "requested_by",
			Required:     false,
			CollectionId: staff.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "submitted", "site_approved", "approved", "rejected", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "indent_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "indent",
			Required:      true,
			CollectionId:  indents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "material",
			Required:     true,
			CollectionId: materials.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.TextField{Name: "required_by", Required: false})
		c.Fields.Add(&core.TextField{Name: "remarks", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	purchaseOrders := ensureCollection(app, "purchase_orders", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "vendor",
			Required:     true,
			CollectionId: vendors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "indent",
			Required:     false,
			CollectionId: indents.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "po_number", Required: true})
		c.Fields.Add(&core.TextField{Name: "order_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "quotation_ref", Required: false})
		c.Fields.Add(&core.TextField{Name: "payment_terms", Required: false})
		c.Fields.Add(&core.TextField{Name: "delivery_terms", Required: false})
		c.Fields.Add(&core.TextField{Name: "warranty_terms", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "pending_approval", "approved", "sent", "completed", "rejected", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "po_line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "purchase_order",
			Required:      true,
			CollectionId:  purchaseOrders.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "material",
			Required:     false,
			CollectionId: materials.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.TextField{Name: "hsn_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		// rate stays optional: lines pulled from an indent start unpriced
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gst_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	boqs := ensureCollection(app, "boqs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	boqItems := ensureCollection(app, "boq_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "boq",
			Required:      true,
			CollectionId:  boqs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "item_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
		c.Fields.Add(&core.NumberField{Name: "budgeted_rate", Required: false})
		c.Fields.Add(&core.TextField{Name: "hsn_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gst_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "boq_sub_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "boq_item",
			Required:      true,
			CollectionId:  boqItems.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "type",
			Required:  true,
			Values:    []string{"material", "labour", "machinery"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty_per_unit", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "approval_events", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "doc_type",
			Required:  true,
			Values:    []string{"indent", "purchase_order"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "doc_id", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "action",
			Required:  true,
			Values:    []string{"submit", "approve", "reject", "send", "complete", "cancel"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "actor",
			Required:     false,
			CollectionId: staff.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "from_status", Required: true})
		c.Fields.Add(&core.TextField{Name: "to_status", Required: true})
		c.Fields.Add(&core.TextField{Name: "comment", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
