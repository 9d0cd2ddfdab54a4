// Package domain contains the financial year model and period rules.
// Indian financial years run April 1 through March 31.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DocumentKind selects which per-year counter a document draws from.
type DocumentKind string

const (
	KindInvoice  DocumentKind = "INVOICE"
	KindPurchase DocumentKind = "PURCHASE"
)

// FinancialYear tracks one fiscal period and its document counters.
// Exactly one year is active at a time for numbering purposes.
type FinancialYear struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null;uniqueIndex"` // e.g. "2024-25"
	Code string       `gorm:"type:text;not null;uniqueIndex"` // e.g. "2425"

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	IsActive bool `gorm:"not null;default:false"`
	IsClosed bool `gorm:"not null;default:false"`

	InvoiceCounter  int64 `gorm:"not null;default:0"`
	PurchaseCounter int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (FinancialYear) TableName() string { return "financial_years" }

// Contains reports whether d falls inside the period.
func (fy *FinancialYear) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	return !day.Before(fy.StartDate) && !day.After(fy.EndDate)
}

// Period identifies a fiscal period without persistence state.
type Period struct {
	Name      string
	Code      string
	StartDate time.Time
	EndDate   time.Time
}

// ResolvePeriod returns the fiscal period a date falls in. April
// onwards belongs to the year starting that April; January through
// March belongs to the year started the previous April.
func ResolvePeriod(d time.Time) Period {
	startYear := d.Year()
	if d.Month() < time.April {
		startYear--
	}
	endYear := startYear + 1

	return Period{
		Name:      fmt.Sprintf("%d-%02d", startYear, endYear%100),
		Code:      fmt.Sprintf("%02d%02d", startYear%100, endYear%100),
		StartDate: time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(endYear, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}
