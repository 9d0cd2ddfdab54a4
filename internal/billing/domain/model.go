// Package domain contains the sale and purchase documents and the
// totals engine that derives their aggregate amounts.
package domain

import (
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentStatus tracks settlement of a document. PARTIAL exists as a
// state but nothing in the posting pipeline currently produces it.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPartial PaymentStatus = "PARTIAL"
	StatusUnpaid  PaymentStatus = "UNPAID"
)

// DocumentStatus is the document lifecycle. Cancellation is a status
// transition compensated by reversal postings, never a deletion.
type DocumentStatus string

const (
	DocActive    DocumentStatus = "ACTIVE"
	DocCancelled DocumentStatus = "CANCELLED"
)

// Invoice is a sales document header. Aggregate fields are derived
// from the items by ComputeTotals and never edited directly.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	InvoiceNumber string       `gorm:"type:text;uniqueIndex;not null"`
	InvoiceDate   time.Time    `gorm:"type:date;not null;index"`
	DueDate       *time.Time   `gorm:"type:date"`

	FinancialYearID snowflake.ID `gorm:"not null;index"`
	PartyID         snowflake.ID `gorm:"not null;index"`

	IsGSTInvoice bool `gorm:"column:is_gst_invoice;not null;default:true"`
	IsIGST       bool `gorm:"column:is_igst;not null;default:false"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CGSTAmount     decimal.Decimal `gorm:"column:cgst_amount;type:decimal(15,2);not null;default:0"`
	SGSTAmount     decimal.Decimal `gorm:"column:sgst_amount;type:decimal(15,2);not null;default:0"`
	IGSTAmount     decimal.Decimal `gorm:"column:igst_amount;type:decimal(15,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	RoundOff       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	PaymentMode   acctdomain.PaymentMode `gorm:"type:text;not null;default:'CASH'"`
	PaymentStatus PaymentStatus          `gorm:"type:text;not null;default:'PAID'"`
	AmountPaid    decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0"`
	AmountDue     decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0"`

	Notes string `gorm:"type:text"`
	Terms string `gorm:"type:text"`

	EInvoiceGenerated bool           `gorm:"column:einvoice_generated;not null;default:false"`
	EInvoiceJSONPath  *string        `gorm:"column:einvoice_json_path;type:text"`
	EInvoicePayload   datatypes.JSON `gorm:"column:einvoice_payload"`

	Status    DocumentStatus `gorm:"type:text;not null;default:'ACTIVE'"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line of an invoice, owned by its document.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	InvoiceID snowflake.ID `gorm:"not null;index"`
	ProductID snowflake.ID `gorm:"not null;index"`

	Description string `gorm:"type:text"`
	HSNCode     string `gorm:"column:hsn_code;type:text"`

	Quantity decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit     string          `gorm:"type:text"`
	Rate     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	TaxableAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	GSTPercent    decimal.Decimal `gorm:"column:gst_percent;type:decimal(5,2);not null;default:0"`
	CGSTPercent   decimal.Decimal `gorm:"column:cgst_percent;type:decimal(5,2);not null;default:0"`
	CGSTAmount    decimal.Decimal `gorm:"column:cgst_amount;type:decimal(12,2);not null;default:0"`
	SGSTPercent   decimal.Decimal `gorm:"column:sgst_percent;type:decimal(5,2);not null;default:0"`
	SGSTAmount    decimal.Decimal `gorm:"column:sgst_amount;type:decimal(12,2);not null;default:0"`
	IGSTPercent   decimal.Decimal `gorm:"column:igst_percent;type:decimal(5,2);not null;default:0"`
	IGSTAmount    decimal.Decimal `gorm:"column:igst_amount;type:decimal(12,2);not null;default:0"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// Purchase is the inward mirror of Invoice.
type Purchase struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	PurchaseNumber string       `gorm:"type:text;uniqueIndex;not null"`
	PurchaseDate   time.Time    `gorm:"type:date;not null;index"`

	SupplierBillNumber string     `gorm:"type:text"`
	SupplierBillDate   *time.Time `gorm:"type:date"`

	FinancialYearID snowflake.ID `gorm:"not null;index"`
	PartyID         snowflake.ID `gorm:"not null;index"`

	IsGSTPurchase bool `gorm:"column:is_gst_purchase;not null;default:true"`
	IsIGST        bool `gorm:"column:is_igst;not null;default:false"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CGSTAmount     decimal.Decimal `gorm:"column:cgst_amount;type:decimal(15,2);not null;default:0"`
	SGSTAmount     decimal.Decimal `gorm:"column:sgst_amount;type:decimal(15,2);not null;default:0"`
	IGSTAmount     decimal.Decimal `gorm:"column:igst_amount;type:decimal(15,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	RoundOff       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`

	PaymentMode   acctdomain.PaymentMode `gorm:"type:text;not null;default:'CASH'"`
	PaymentStatus PaymentStatus          `gorm:"type:text;not null;default:'PAID'"`
	AmountPaid    decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0"`
	AmountDue     decimal.Decimal        `gorm:"type:decimal(15,2);not null;default:0"`

	Notes string `gorm:"type:text"`

	Status    DocumentStatus `gorm:"type:text;not null;default:'ACTIVE'"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName sets the database table name.
func (Purchase) TableName() string { return "purchases" }

// PurchaseItem is one line of a purchase document.
type PurchaseItem struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	PurchaseID snowflake.ID `gorm:"not null;index"`
	ProductID  snowflake.ID `gorm:"not null;index"`

	Description string `gorm:"type:text"`
	HSNCode     string `gorm:"column:hsn_code;type:text"`

	Quantity decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit     string          `gorm:"type:text"`
	Rate     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	TaxableAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	GSTPercent    decimal.Decimal `gorm:"column:gst_percent;type:decimal(5,2);not null;default:0"`
	CGSTPercent   decimal.Decimal `gorm:"column:cgst_percent;type:decimal(5,2);not null;default:0"`
	CGSTAmount    decimal.Decimal `gorm:"column:cgst_amount;type:decimal(12,2);not null;default:0"`
	SGSTPercent   decimal.Decimal `gorm:"column:sgst_percent;type:decimal(5,2);not null;default:0"`
	SGSTAmount    decimal.Decimal `gorm:"column:sgst_amount;type:decimal(12,2);not null;default:0"`
	IGSTPercent   decimal.Decimal `gorm:"column:igst_percent;type:decimal(5,2);not null;default:0"`
	IGSTAmount    decimal.Decimal `gorm:"column:igst_amount;type:decimal(12,2);not null;default:0"`

	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName sets the database table name.
func (PurchaseItem) TableName() string { return "purchase_items" }
