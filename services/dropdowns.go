package services

// UOMOptions is the list of Unit of Measurement options.
var UOMOptions = []string{
	"Nos",
	"Sqm",
	"Sqft",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Bag",
	"Box",
	"Roll",
	"Bundle",
	"Trip",
	"Day",
	"Month",
	"Hour",
	"Brass",
}

// GSTOptions is the list of GST percentage options.
var GSTOptions = []int{0, 5, 12, 18, 28}

// Select field value sets shared by the schema and the handlers.
var (
	SiteStatuses = []string{"active", "completed", "on_hold"}

	AssetCategories = []string{
		"plant_machinery", "survey_instrument", "shuttering",
		"vehicle", "it_equipment", "other",
	}
	AssetStatuses = []string{"in_service", "idle", "under_repair", "scrapped"}

	BudgetHeadCategories = []string{
		"material", "labour", "machinery", "overhead", "advance", "statutory",
	}

	ComponentTypes = []string{"material", "labour", "machinery"}

	VoucherTypes = []string{"receipt", "payment"}
	PaymentModes = []string{"cash", "bank", "upi"}

	MaterialCategories = []string{
		"cement", "steel", "aggregate", "electrical", "plumbing",
		"finishing", "consumable", "other",
	}

	StockEntryTypes = []string{"receipt", "issue", "adjustment"}

	WageTypes        = []string{"daily", "monthly"}
	EmployeeStatuses = []string{"active", "inactive"}

	StaffRoles = []string{"admin", "accounts", "stores", "purchase", "hr", "viewer"}

	IndentStatuses = []string{
		"draft", "submitted", "site_approved", "approved", "rejected", "cancelled",
	}

	POStatuses = []string{
		"draft", "pending_approval", "approved", "sent", "completed",
		"rejected", "cancelled",
	}

	BudgetAlertLevels = []string{"none", "watch_50", "warn_75", "exceeded"}
)

// IndianStates lists states and union territories for site and vendor
// address dropdowns.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal",
	"Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi",
	"Jammu and Kashmir", "Ladakh", "Lakshadweep", "Puducherry",
}
