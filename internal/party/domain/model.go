// Package domain contains the party master and its running-balance ledger.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// PartyType separates the receivable side from the payable side.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
)

// Transaction types on the party ledger.
const (
	TxnOpening          = "OPENING"
	TxnSale             = "SALE"
	TxnSaleReversal     = "SALE_REVERSAL"
	TxnPurchase         = "PURCHASE"
	TxnPurchaseReversal = "PURCHASE_REVERSAL"
	TxnReceipt          = "RECEIPT"
	TxnPayment          = "PAYMENT"
	TxnAdjustment       = "ADJUSTMENT"
)

// Party is a customer or supplier. CurrentBalance is signed: positive
// means the party owes us, negative means we owe the party, so a
// supplier with outstanding payables sits below zero. It moves only
// through Post so the transaction trail always explains it.
type Party struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Type PartyType    `gorm:"column:party_type;type:text;not null"`
	Name string       `gorm:"type:text;not null;index"`

	GSTIN *string `gorm:"column:gstin;type:text"`
	PAN   *string `gorm:"column:pan;type:text"`
	Phone *string `gorm:"type:text"`
	Email *string `gorm:"type:text"`

	Address   *string `gorm:"type:text"`
	City      *string `gorm:"type:text"`
	Pincode   *string `gorm:"type:text"`
	StateCode string  `gorm:"column:state_code;type:text"`

	OpeningBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreditLimit    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Party) TableName() string { return "parties" }

// PartyTransaction is one append-only ledger row. Exactly one of Debit
// and Credit is non-zero; debit raises the balance, credit lowers it.
type PartyTransaction struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	PartyID snowflake.ID `gorm:"not null;index"`

	// TransactionDate is the document date, not the posting time; a
	// back-dated invoice lands on the day it was issued.
	TransactionDate time.Time `gorm:"column:transaction_date;type:date;not null;index"`

	Type   string          `gorm:"column:transaction_type;type:text;not null"`
	Debit  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Credit decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	BalanceAfter decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	RefType   string        `gorm:"column:reference_type;type:text"`
	RefID     *snowflake.ID `gorm:"column:reference_id;index"`
	RefNumber string        `gorm:"column:reference_number;type:text"`

	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PartyTransaction) TableName() string { return "party_transactions" }
