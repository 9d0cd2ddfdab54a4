// Package domain contains the journal, cash/bank books and the expense register.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PaymentMode is how money changes hands on a document or posting.
type PaymentMode string

const (
	ModeCash   PaymentMode = "CASH"
	ModeBank   PaymentMode = "BANK"
	ModeCredit PaymentMode = "CREDIT"
)

// Valid reports whether the mode is one of the closed set.
func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeBank, ModeCredit:
		return true
	}
	return false
}

// Journal account types.
const (
	AccountSales    = "SALES"
	AccountPurchase = "PURCHASE"
	AccountExpense  = "EXPENSE"
	AccountSalary   = "SALARY"
)

// Cash book entry types.
const (
	CashReceipt = "RECEIPT"
	CashPayment = "PAYMENT"
)

// Bank book entry types.
const (
	BankDeposit    = "DEPOSIT"
	BankWithdrawal = "WITHDRAWAL"
)

// JournalEntry is one side of a double-entry posting against a named
// account head.
type JournalEntry struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	EntryDate   time.Time    `gorm:"type:date;not null;index"`
	AccountType string       `gorm:"type:text;not null"`
	AccountName string       `gorm:"type:text"`

	PartyID *snowflake.ID `gorm:"index"`

	Debit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Credit decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	RefType   string        `gorm:"column:reference_type;type:text"`
	RefID     *snowflake.ID `gorm:"column:reference_id;index"`
	RefNumber string        `gorm:"column:reference_number;type:text"`

	Narration       string        `gorm:"type:text"`
	FinancialYearID *snowflake.ID `gorm:"index"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (JournalEntry) TableName() string { return "journal_entries" }

// CashTransaction is one cash book row. Receipt is money in, Payment
// money out; only one is non-zero.
type CashTransaction struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Date time.Time    `gorm:"column:transaction_date;type:date;not null;index"`
	Type string       `gorm:"column:transaction_type;type:text;not null"`

	PartyID     *snowflake.ID `gorm:"index"`
	Description string        `gorm:"type:text;not null"`

	Receipt decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Payment decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	RefType   string        `gorm:"column:reference_type;type:text"`
	RefID     *snowflake.ID `gorm:"column:reference_id;index"`
	RefNumber string        `gorm:"column:reference_number;type:text"`

	Narration string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CashTransaction) TableName() string { return "cash_transactions" }

// BankTransaction is one bank book row.
type BankTransaction struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Date time.Time    `gorm:"column:transaction_date;type:date;not null;index"`
	Type string       `gorm:"column:transaction_type;type:text;not null"`

	PartyID     *snowflake.ID `gorm:"index"`
	Description string        `gorm:"type:text;not null"`

	Deposit    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Withdrawal decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	BankName     string `gorm:"type:text"`
	ChequeNumber string `gorm:"type:text"`

	RefType   string        `gorm:"column:reference_type;type:text"`
	RefID     *snowflake.ID `gorm:"column:reference_id;index"`
	RefNumber string        `gorm:"column:reference_number;type:text"`

	Narration string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (BankTransaction) TableName() string { return "bank_transactions" }

// ExpenseCategory groups expenses for the register.
type ExpenseCategory struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null"`
	Description *string      `gorm:"type:text"`
	Active      bool         `gorm:"not null;default:true"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ExpenseCategory) TableName() string { return "expense_categories" }

// Expense is one expense register row. Its cash or bank leg is written
// alongside it in the same transaction.
type Expense struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	ExpenseDate time.Time     `gorm:"type:date;not null;index"`
	CategoryID  *snowflake.ID `gorm:"index"`

	Description string          `gorm:"type:text;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	IsGSTExpense bool            `gorm:"column:is_gst_expense;not null;default:false"`
	GSTAmount    decimal.Decimal `gorm:"column:gst_amount;type:decimal(12,2);not null;default:0"`

	PaymentMode PaymentMode `gorm:"type:text;not null;default:'CASH'"`

	RefNumber  string  `gorm:"column:reference_number;type:text"`
	VendorName *string `gorm:"type:text"`

	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Expense) TableName() string { return "expenses" }
