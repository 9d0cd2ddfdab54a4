// Package domain contains the append-only stock movement ledger model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// MovementKind classifies why stock changed.
type MovementKind string

const (
	MovementSale       MovementKind = "SALE"
	MovementPurchase   MovementKind = "PURCHASE"
	MovementAdjustment MovementKind = "ADJUSTMENT"
)

// Reference types tying a movement back to its source document.
const (
	RefInvoice        = "INVOICE"
	RefInvoiceCancel  = "INVOICE_CANCEL"
	RefPurchase       = "PURCHASE"
	RefPurchaseCancel = "PURCHASE_CANCEL"
	RefManual         = "MANUAL"
	RefOpening        = "OPENING"
)

// WarningNegativeStock is appended to a movement note when a deduction
// drives stock below zero. Backorders are allowed, not errors.
const WarningNegativeStock = " [WARNING: Stock went negative]"

// StockMovement records one atomic change to a product's quantity with
// before/after snapshots. Rows are never updated or deleted; for one
// product, StockAfter of movement n equals StockBefore of movement n+1.
type StockMovement struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ProductID snowflake.ID `gorm:"not null;index"`

	Kind     MovementKind    `gorm:"column:movement_type;type:text;not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(12,3);not null"` // signed; negative = outward

	RefType   string        `gorm:"column:reference_type;type:text"`
	RefID     *snowflake.ID `gorm:"column:reference_id;index"`
	RefNumber string        `gorm:"column:reference_number;type:text"`

	StockBefore decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null"`

	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (StockMovement) TableName() string { return "stock_movements" }
