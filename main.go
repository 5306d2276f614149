package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"sitebooks/collections"
	"sitebooks/handlers"
	"sitebooks/services"
)

func main() {
	app := pocketbase.New()

	// Create collections, repair legacy rows and seed demo data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.MigrateMissingSiteCodes(app); err != nil {
			log.Printf("Warning: site code migration failed: %v", err)
		}
		if err := collections.MigrateMissingStaffTokens(app); err != nil {
			log.Printf("Warning: staff token migration failed: %v", err)
		}
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := services.RecalculateAllSites(app); err != nil {
			log.Printf("Warning: ledger replay failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Token auth and active-site scoping apply to every route.
		se.Router.BindFunc(handlers.StaffAuthMiddleware(app))
		se.Router.BindFunc(handlers.ActiveSiteMiddleware(app))

		// ── Sites ────────────────────────────────────────────────
		// Site and staff masters are head-office records; RequireRole
		// with no extra roles admits admins only.
		se.Router.GET("/api/sites", handlers.RequireStaff(handlers.HandleSiteList(app)))
		se.Router.POST("/api/sites", handlers.RequireRole(handlers.HandleSiteCreate(app)))
		se.Router.GET("/api/sites/{id}", handlers.RequireStaff(handlers.HandleSiteView(app)))
		se.Router.PATCH("/api/sites/{id}", handlers.RequireRole(handlers.HandleSiteUpdate(app)))
		se.Router.DELETE("/api/sites/{id}", handlers.RequireRole(handlers.HandleSiteDelete(app)))

		// ── Active site switching ────────────────────────────────
		se.Router.POST("/api/sites/{id}/activate", handlers.RequireStaff(handlers.HandleSiteActivate(app)))
		se.Router.POST("/api/sites/deactivate", handlers.RequireStaff(handlers.HandleSiteDeactivate(app)))

		// ── Staff identities ─────────────────────────────────────
		se.Router.GET("/api/staff", handlers.RequireRole(handlers.HandleStaffList(app)))
		se.Router.POST("/api/staff", handlers.RequireRole(handlers.HandleStaffCreate(app)))
		se.Router.PATCH("/api/staff/{id}", handlers.RequireRole(handlers.HandleStaffUpdate(app)))
		se.Router.POST("/api/staff/{id}/rotate-token", handlers.RequireRole(handlers.HandleStaffTokenRotate(app)))

		// ── Budget heads ─────────────────────────────────────────
		se.Router.GET("/api/budget-heads", handlers.RequireStaff(handlers.HandleBudgetHeadList(app)))
		se.Router.POST("/api/budget-heads", handlers.RequireRole(handlers.HandleBudgetHeadCreate(app), "accounts"))
		se.Router.PATCH("/api/budget-heads/{id}", handlers.RequireRole(handlers.HandleBudgetHeadUpdate(app), "accounts"))
		se.Router.DELETE("/api/budget-heads/{id}", handlers.RequireRole(handlers.HandleBudgetHeadDelete(app), "accounts"))

		// ── Cashbook ─────────────────────────────────────────────
		se.Router.GET("/api/sites/{siteId}/cashbook", handlers.RequireStaff(handlers.HandleCashbookList(app)))
		se.Router.GET("/api/sites/{siteId}/cashbook/totals", handlers.RequireStaff(handlers.HandleCashbookTotals(app)))
		se.Router.POST("/api/sites/{siteId}/cashbook/recalculate", handlers.RequireRole(handlers.HandleCashbookRecalculate(app), "accounts"))
		se.Router.POST("/api/sites/{siteId}/vouchers", handlers.RequireRole(handlers.HandleVoucherCreate(app), "accounts"))
		se.Router.PATCH("/api/vouchers/{id}", handlers.RequireRole(handlers.HandleVoucherUpdate(app), "accounts"))
		se.Router.DELETE("/api/vouchers/{id}", handlers.RequireRole(handlers.HandleVoucherDelete(app), "accounts"))

		// ── Site budgets ─────────────────────────────────────────
		se.Router.GET("/api/sites/{siteId}/budgets", handlers.RequireStaff(handlers.HandleSiteBudgetList(app)))
		se.Router.GET("/api/sites/{siteId}/budgets/alerts", handlers.RequireStaff(handlers.HandleSiteBudgetAlerts(app)))
		se.Router.POST("/api/sites/{siteId}/budgets", handlers.RequireRole(handlers.HandleSiteBudgetCreate(app), "accounts"))
		se.Router.POST("/api/sites/{siteId}/budgets/recalculate", handlers.RequireRole(handlers.HandleSiteBudgetRecalculate(app), "accounts"))
		se.Router.PATCH("/api/budgets/{id}", handlers.RequireRole(handlers.HandleSiteBudgetUpdate(app), "accounts"))
		se.Router.DELETE("/api/budgets/{id}", handlers.RequireRole(handlers.HandleSiteBudgetDelete(app), "accounts"))

		// ── Material master ──────────────────────────────────────
		se.Router.GET("/api/materials", handlers.RequireStaff(handlers.HandleMaterialList(app)))
		se.Router.POST("/api/materials", handlers.RequireRole(handlers.HandleMaterialCreate(app), "stores"))
		se.Router.PATCH("/api/materials/{id}", handlers.RequireRole(handlers.HandleMaterialUpdate(app), "stores"))
		se.Router.DELETE("/api/materials/{id}", handlers.RequireRole(handlers.HandleMaterialDelete(app), "stores"))

		// ── Stock ledger ─────────────────────────────────────────
		se.Router.GET("/api/sites/{siteId}/stock", handlers.RequireStaff(handlers.HandleStockLedgerList(app)))
		se.Router.GET("/api/sites/{siteId}/stock/summary", handlers.RequireStaff(handlers.HandleStockSummary(app)))
		se.Router.POST("/api/sites/{siteId}/stock", handlers.RequireRole(handlers.HandleStockEntryCreate(app), "stores"))
		se.Router.POST("/api/sites/{siteId}/stock/recalculate", handlers.RequireRole(handlers.HandleStockRecalculate(app), "stores"))
		se.Router.DELETE("/api/stock/{id}", handlers.RequireRole(handlers.HandleStockEntryDelete(app), "stores"))

		// ── Assets ───────────────────────────────────────────────
		se.Router.GET("/api/assets", handlers.RequireStaff(handlers.HandleAssetList(app)))
		se.Router.POST("/api/assets", handlers.RequireRole(handlers.HandleAssetCreate(app), "stores"))
		se.Router.PATCH("/api/assets/{id}", handlers.RequireRole(handlers.HandleAssetUpdate(app), "stores"))
		se.Router.DELETE("/api/assets/{id}", handlers.RequireRole(handlers.HandleAssetDelete(app), "stores"))
		se.Router.POST("/api/assets/{id}/transfer", handlers.RequireRole(handlers.HandleAssetTransfer(app), "stores"))
		se.Router.GET("/api/assets/{id}/transfers", handlers.RequireStaff(handlers.HandleAssetTransferList(app)))

		// ── Vendor directory ─────────────────────────────────────
		se.Router.GET("/api/vendors", handlers.RequireStaff(handlers.HandleVendorList(app)))
		se.Router.POST("/api/vendors", handlers.RequireRole(handlers.HandleVendorCreate(app), "purchase"))
		se.Router.PATCH("/api/vendors/{id}", handlers.RequireRole(handlers.HandleVendorUpdate(app), "purchase"))
		se.Router.DELETE("/api/vendors/{id}", handlers.RequireRole(handlers.HandleVendorDelete(app), "purchase"))

		// Vendor created under a site path is linked to it in one go.
		se.Router.POST("/api/sites/{siteId}/vendors", handlers.RequireRole(handlers.HandleVendorCreate(app), "purchase"))
		se.Router.POST("/api/sites/{siteId}/vendors/{id}/link", handlers.RequireRole(handlers.HandleVendorLink(app), "purchase"))
		se.Router.DELETE("/api/sites/{siteId}/vendors/{id}/link", handlers.RequireRole(handlers.HandleVendorUnlink(app), "purchase"))

		// ── Employees and manpower ───────────────────────────────
		se.Router.GET("/api/employees", handlers.RequireStaff(handlers.HandleEmployeeList(app)))
		se.Router.POST("/api/employees", handlers.RequireRole(handlers.HandleEmployeeCreate(app), "hr"))
		se.Router.PATCH("/api/employees/{id}", handlers.RequireRole(handlers.HandleEmployeeUpdate(app), "hr"))
		se.Router.DELETE("/api/employees/{id}", handlers.RequireRole(handlers.HandleEmployeeDelete(app), "hr"))

		se.Router.GET("/api/sites/{siteId}/manpower", handlers.RequireStaff(handlers.HandleAssignmentList(app)))
		se.Router.POST("/api/sites/{siteId}/manpower", handlers.RequireRole(handlers.HandleAssignmentOpen(app), "hr"))
		se.Router.PATCH("/api/manpower/{id}", handlers.RequireRole(handlers.HandleAssignmentUpdate(app), "hr"))
		se.Router.POST("/api/manpower/{id}/close", handlers.RequireRole(handlers.HandleAssignmentClose(app), "hr"))
		se.Router.GET("/api/sites/{siteId}/wage-sheet", handlers.RequireStaff(handlers.HandleWageSheet(app)))

		// ── Spreadsheet imports ──────────────────────────────────
		se.Router.POST("/api/imports/materials/validate", handlers.RequireRole(handlers.HandleMaterialImportValidate(app), "stores"))
		se.Router.POST("/api/imports/materials/commit", handlers.RequireRole(handlers.HandleMaterialImportCommit(app), "stores"))
		se.Router.POST("/api/imports/employees/validate", handlers.RequireRole(handlers.HandleEmployeeImportValidate(app), "hr"))
		se.Router.POST("/api/imports/employees/commit", handlers.RequireRole(handlers.HandleEmployeeImportCommit(app), "hr"))
		se.Router.POST("/api/imports/errors/report", handlers.RequireStaff(handlers.HandleImportErrorReport(app)))

		// ── BOQs ─────────────────────────────────────────────────
		se.Router.GET("/api/sites/{siteId}/boqs", handlers.RequireStaff(handlers.HandleBOQList(app)))
		se.Router.POST("/api/sites/{siteId}/boqs", handlers.RequireRole(handlers.HandleBOQCreate(app), "accounts"))
		se.Router.GET("/api/boqs/{id}", handlers.RequireStaff(handlers.HandleBOQView(app)))
		se.Router.PATCH("/api/boqs/{id}", handlers.RequireRole(handlers.HandleBOQUpdate(app), "accounts"))
		se.Router.DELETE("/api/boqs/{id}", handlers.RequireRole(handlers.HandleBOQDelete(app), "accounts"))
		se.Router.GET("/api/boqs/{id}/export/excel", handlers.RequireStaff(handlers.HandleBOQExportExcel(app)))
		se.Router.GET("/api/boqs/{id}/export/pdf", handlers.RequireStaff(handlers.HandleBOQExportPDF(app)))

		se.Router.POST("/api/boqs/{id}/items", handlers.RequireRole(handlers.HandleBOQItemAdd(app), "accounts"))
		se.Router.PATCH("/api/boq-items/{itemId}", handlers.RequireRole(handlers.HandleBOQItemUpdate(app), "accounts"))
		se.Router.DELETE("/api/boq-items/{itemId}", handlers.RequireRole(handlers.HandleBOQItemDelete(app), "accounts"))
		se.Router.POST("/api/boq-items/{itemId}/sub-items", handlers.RequireRole(handlers.HandleBOQSubItemAdd(app), "accounts"))
		se.Router.PATCH("/api/boq-sub-items/{subItemId}", handlers.RequireRole(handlers.HandleBOQSubItemUpdate(app), "accounts"))
		se.Router.DELETE("/api/boq-sub-items/{subItemId}", handlers.RequireRole(handlers.HandleBOQSubItemDelete(app), "accounts"))

		// ── Indents ──────────────────────────────────────────────
		// Approval verbs stay behind RequireStaff only; the workflow
		// service decides which role may take which step.
		se.Router.GET("/api/sites/{siteId}/indents", handlers.RequireStaff(handlers.HandleIndentList(app)))
		se.Router.POST("/api/sites/{siteId}/indents", handlers.RequireRole(handlers.HandleIndentCreate(app), "stores"))
		se.Router.GET("/api/indents/{id}", handlers.RequireStaff(handlers.HandleIndentView(app)))
		se.Router.PATCH("/api/indents/{id}", handlers.RequireRole(handlers.HandleIndentEdit(app), "stores"))
		se.Router.DELETE("/api/indents/{id}", handlers.RequireRole(handlers.HandleIndentDelete(app), "stores"))

		se.Router.POST("/api/indents/{id}/items", handlers.RequireRole(handlers.HandleIndentItemAdd(app), "stores"))
		se.Router.PATCH("/api/indents/items/{itemId}", handlers.RequireRole(handlers.HandleIndentItemUpdate(app), "stores"))
		se.Router.DELETE("/api/indents/items/{itemId}", handlers.RequireRole(handlers.HandleIndentItemDelete(app), "stores"))

		se.Router.POST("/api/indents/{id}/submit", handlers.RequireStaff(handlers.HandleIndentSubmit(app)))
		se.Router.POST("/api/indents/{id}/approve", handlers.RequireStaff(handlers.HandleIndentApprove(app)))
		se.Router.POST("/api/indents/{id}/reject", handlers.RequireStaff(handlers.HandleIndentReject(app)))
		se.Router.POST("/api/indents/{id}/cancel", handlers.RequireStaff(handlers.HandleIndentCancel(app)))

		// ── Purchase orders ──────────────────────────────────────
		se.Router.GET("/api/sites/{siteId}/pos", handlers.RequireStaff(handlers.HandlePOList(app)))
		se.Router.POST("/api/sites/{siteId}/pos", handlers.RequireRole(handlers.HandlePOCreate(app), "purchase"))
		se.Router.GET("/api/pos/{id}", handlers.RequireStaff(handlers.HandlePOView(app)))
		se.Router.PATCH("/api/pos/{id}", handlers.RequireRole(handlers.HandlePOUpdate(app), "purchase"))
		se.Router.DELETE("/api/pos/{id}", handlers.RequireRole(handlers.HandlePODelete(app), "purchase"))
		se.Router.GET("/api/pos/{id}/export/pdf", handlers.RequireStaff(handlers.HandlePOExportPDF(app)))

		se.Router.POST("/api/pos/{id}/line-items", handlers.RequireRole(handlers.HandlePOLineItemAdd(app), "purchase"))
		se.Router.POST("/api/pos/{id}/line-items/from-indent", handlers.RequireRole(handlers.HandlePOLineItemsFromIndent(app), "purchase"))
		se.Router.PATCH("/api/pos/{id}/line-items/{itemId}", handlers.RequireRole(handlers.HandlePOLineItemUpdate(app), "purchase"))
		se.Router.DELETE("/api/pos/{id}/line-items/{itemId}", handlers.RequireRole(handlers.HandlePOLineItemDelete(app), "purchase"))

		se.Router.POST("/api/pos/{id}/submit", handlers.RequireStaff(handlers.HandlePOSubmit(app)))
		se.Router.POST("/api/pos/{id}/approve", handlers.RequireStaff(handlers.HandlePOApprove(app)))
		se.Router.POST("/api/pos/{id}/reject", handlers.RequireStaff(handlers.HandlePOReject(app)))
		se.Router.POST("/api/pos/{id}/send", handlers.RequireStaff(handlers.HandlePOSend(app)))
		se.Router.POST("/api/pos/{id}/complete", handlers.RequireStaff(handlers.HandlePOComplete(app)))
		se.Router.POST("/api/pos/{id}/cancel", handlers.RequireStaff(handlers.HandlePOCancel(app)))

		// ── Printable registers ──────────────────────────────────
		se.Router.GET("/registers", handlers.RequireStaff(handlers.HandleRegistersIndex(app)))

		se.Router.GET("/registers/cashbook/{siteId}", handlers.RequireStaff(handlers.HandleCashbookRegisterPage(app)))
		se.Router.GET("/registers/cashbook/{siteId}/excel", handlers.RequireStaff(handlers.HandleCashbookRegisterExcel(app)))
		se.Router.GET("/registers/cashbook/{siteId}/pdf", handlers.RequireStaff(handlers.HandleCashbookRegisterPDF(app)))

		se.Router.GET("/registers/stock/{siteId}", handlers.RequireStaff(handlers.HandleStockRegisterPage(app)))
		se.Router.GET("/registers/stock/{siteId}/excel", handlers.RequireStaff(handlers.HandleStockRegisterExcel(app)))
		se.Router.GET("/registers/stock/{siteId}/pdf", handlers.RequireStaff(handlers.HandleStockRegisterPDF(app)))

		se.Router.GET("/registers/wages/{siteId}", handlers.RequireStaff(handlers.HandleWageRegisterPage(app)))
		se.Router.GET("/registers/wages/{siteId}/excel", handlers.RequireStaff(handlers.HandleWageRegisterExcel(app)))
		se.Router.GET("/registers/wages/{siteId}/pdf", handlers.RequireStaff(handlers.HandleWageRegisterPDF(app)))

		se.Router.GET("/registers/assets", handlers.RequireStaff(handlers.HandleAssetRegisterPage(app)))
		se.Router.GET("/registers/assets/excel", handlers.RequireStaff(handlers.HandleAssetRegisterExcel(app)))
		se.Router.GET("/registers/assets/pdf", handlers.RequireStaff(handlers.HandleAssetRegisterPDF(app)))

		se.Router.GET("/registers/vendors", handlers.RequireStaff(handlers.HandleVendorRegisterPage(app)))
		se.Router.GET("/registers/vendors/excel", handlers.RequireStaff(handlers.HandleVendorRegisterExcel(app)))
		se.Router.GET("/registers/vendors/pdf", handlers.RequireStaff(handlers.HandleVendorRegisterPDF(app)))

		// Redirect home to the registers landing page
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/registers")
		})

		return se.Next()
	})

	// Ops escape hatch: rebuild every derived figure from the raw
	// entries, for databases edited outside the API.
	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "recalc",
		Short: "Rebuild cashbook balances, stock ledgers and budget alerts for every site",
		Run: func(cmd *cobra.Command, args []string) {
			if err := app.Bootstrap(); err != nil {
				log.Fatal(err)
			}
			sites, err := app.FindAllRecords("sites")
			if err != nil {
				log.Fatal(err)
			}
			for _, site := range sites {
				name := site.GetString("name")
				log.Printf("recalc: %s (%s)", name, site.GetString("site_code"))
				if err := services.RecalculateSiteLedgers(app, site.Id); err != nil {
					log.Fatalf("recalc: %s: %v", name, err)
				}
			}
			log.Printf("recalc: %d site(s) done", len(sites))
		},
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
