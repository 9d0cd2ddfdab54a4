package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocumentLine is one stock-bearing line of a sale or purchase event.
type DocumentLine struct {
	ProductID snowflake.ID
	Quantity  decimal.Decimal
}

// SaleEvent carries everything the composer needs to post a sale.
type SaleEvent struct {
	Date            time.Time
	InvoiceID       snowflake.ID
	InvoiceNumber   string
	PartyID         snowflake.ID
	PartyName       string
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	Mode            PaymentMode
	FinancialYearID snowflake.ID
	Lines           []DocumentLine
}

// PurchaseEvent mirrors SaleEvent for inward documents.
type PurchaseEvent struct {
	Date            time.Time
	PurchaseID      snowflake.ID
	PurchaseNumber  string
	PartyID         snowflake.ID
	PartyName       string
	Subtotal        decimal.Decimal
	Total           decimal.Decimal
	Mode            PaymentMode
	FinancialYearID snowflake.ID
	Lines           []DocumentLine
}

// MoneyEvent is a standalone receipt from a customer or payment to a
// supplier.
type MoneyEvent struct {
	Date      time.Time
	PartyID   snowflake.ID
	PartyName string
	Amount    decimal.Decimal
	Mode      PaymentMode
	Reference string
	Note      string
}

// SalaryEvent pays out one salary slip.
type SalaryEvent struct {
	Date         time.Time
	SlipID       snowflake.ID
	EmployeeName string
	Month        string
	NetSalary    decimal.Decimal
	Mode         PaymentMode
}

// Composer posts the full set of ledger rows for one business event
// inside the caller's transaction. Reversal methods compensate; rows
// are never deleted. Cash and bank legs of a sale are deliberately not
// reversed on cancellation, the money already moved.
type Composer interface {
	PostSale(ctx context.Context, tx *gorm.DB, ev SaleEvent) error
	PostSaleReversal(ctx context.Context, tx *gorm.DB, ev SaleEvent) error
	PostPurchase(ctx context.Context, tx *gorm.DB, ev PurchaseEvent) error
	PostPurchaseReversal(ctx context.Context, tx *gorm.DB, ev PurchaseEvent) error
	PostReceipt(ctx context.Context, tx *gorm.DB, ev MoneyEvent) error
	PostPayment(ctx context.Context, tx *gorm.DB, ev MoneyEvent) error
	PostExpense(ctx context.Context, tx *gorm.DB, expense *Expense) error
	PostSalaryPayment(ctx context.Context, tx *gorm.DB, ev SalaryEvent) error
}

type ExpenseRequest struct {
	Date         time.Time       `json:"expense_date"`
	CategoryID   *snowflake.ID   `json:"category_id,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	IsGSTExpense bool            `json:"is_gst_expense"`
	GSTAmount    decimal.Decimal `json:"gst_amount"`
	Mode         PaymentMode     `json:"payment_mode"`
	Reference    string          `json:"reference,omitempty"`
	VendorName   *string         `json:"vendor_name,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

// CashBookReport is the cash book over a date range.
type CashBookReport struct {
	Transactions   []CashTransaction `json:"transactions"`
	TotalReceipts  decimal.Decimal   `json:"total_receipts"`
	TotalPayments  decimal.Decimal   `json:"total_payments"`
	ClosingBalance decimal.Decimal   `json:"closing_balance"`
}

// BankBookReport is the bank book over a date range.
type BankBookReport struct {
	Transactions     []BankTransaction `json:"transactions"`
	TotalDeposits    decimal.Decimal   `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal   `json:"total_withdrawals"`
	ClosingBalance   decimal.Decimal   `json:"closing_balance"`
}

// Books is the standalone accounting surface: the expense register,
// customer receipts and supplier payments, and the cash/bank books.
type Books interface {
	RecordExpense(ctx context.Context, req ExpenseRequest) (*Expense, error)
	RecordReceipt(ctx context.Context, ev MoneyEvent) error
	RecordPayment(ctx context.Context, ev MoneyEvent) error

	CashBook(ctx context.Context, from, to time.Time) (*CashBookReport, error)
	BankBook(ctx context.Context, from, to time.Time) (*BankBookReport, error)

	CreateExpenseCategory(ctx context.Context, name string, description *string) (*ExpenseCategory, error)
	ExpenseCategories(ctx context.Context) ([]ExpenseCategory, error)
	Expenses(ctx context.Context, from, to time.Time) ([]Expense, error)
}
