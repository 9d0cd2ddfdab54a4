// Package domain contains the product master models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ProductCategory groups products for reporting.
type ProductCategory struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null"`
	Description *string      `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ProductCategory) TableName() string { return "product_categories" }

// Product is the inventory-tracked product master. CurrentStock is
// mutated exclusively through the stock ledger so every change leaves
// a movement row behind.
type Product struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	Code        *string       `gorm:"type:text;uniqueIndex"`
	Name        string        `gorm:"type:text;not null"`
	Description *string       `gorm:"type:text"`
	CategoryID  *snowflake.ID `gorm:"index"`

	HSNCode    string          `gorm:"column:hsn_code;type:text"`
	GSTPercent decimal.Decimal `gorm:"column:gst_percent;type:decimal(5,2);not null;default:0"`

	CostPrice    decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	SellingPrice decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	MRP          decimal.NullDecimal `gorm:"column:mrp;type:decimal(12,2)"`

	CurrentStock      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(12,3);not null;default:10"`
	Unit              string          `gorm:"type:text;not null;default:'PCS'"`

	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Product) TableName() string { return "products" }

// IsLowStock reports whether current stock is at or below the alert threshold.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.LowStockThreshold)
}

// StockValue is the inventory value of this product at cost price.
func (p *Product) StockValue() decimal.Decimal {
	return p.CurrentStock.Mul(p.CostPrice)
}
