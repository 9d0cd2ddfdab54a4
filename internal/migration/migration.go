// Package migration creates the schema at startup. gorm AutoMigrate is
// used so the same model set works across sqlite, mysql and postgres.
package migration

import (
	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	billingdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/billing/domain"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&fydomain.FinancialYear{},
		&catalogdomain.ProductCategory{},
		&catalogdomain.Product{},
		&stockdomain.StockMovement{},
		&partydomain.Party{},
		&partydomain.PartyTransaction{},
		&billingdomain.Invoice{},
		&billingdomain.InvoiceItem{},
		&billingdomain.Purchase{},
		&billingdomain.PurchaseItem{},
		&acctdomain.JournalEntry{},
		&acctdomain.CashTransaction{},
		&acctdomain.BankTransaction{},
		&acctdomain.ExpenseCategory{},
		&acctdomain.Expense{},
		&payrolldomain.Employee{},
		&payrolldomain.SalarySlip{},
	)
}
