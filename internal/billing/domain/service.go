package domain

import (
	"context"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// LineRequest is one requested document line. Lines with quantity ≤ 0
// or an unknown product are skipped in lenient mode and rejected in
// strict mode.
type LineRequest struct {
	ProductID       snowflake.ID    `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type CreateInvoiceRequest struct {
	PartyID        snowflake.ID           `json:"party_id"`
	Date           time.Time              `json:"invoice_date"`
	IsGSTInvoice   bool                   `json:"is_gst_invoice"`
	Mode           acctdomain.PaymentMode `json:"payment_mode"`
	DiscountAmount decimal.Decimal        `json:"discount_amount"`
	Notes          string                 `json:"notes,omitempty"`
	Lines          []LineRequest          `json:"lines"`
}

type CreatePurchaseRequest struct {
	PartyID            snowflake.ID           `json:"party_id"`
	Date               time.Time              `json:"purchase_date"`
	SupplierBillNumber string                 `json:"supplier_bill_number,omitempty"`
	IsGSTPurchase      bool                   `json:"is_gst_purchase"`
	Mode               acctdomain.PaymentMode `json:"payment_mode"`
	DiscountAmount     decimal.Decimal        `json:"discount_amount"`
	Notes              string                 `json:"notes,omitempty"`
	Lines              []LineRequest          `json:"lines"`
}

type ListRequest struct {
	From   time.Time
	To     time.Time
	Status DocumentStatus
}

// RegisterSummary aggregates a document register over a date range.
type RegisterSummary struct {
	Count       int             `json:"count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Service creates and cancels documents. Each operation runs as one
// transaction covering the document row, its items, the number
// issuance and every ledger posting.
type Service interface {
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error)
	CancelInvoice(ctx context.Context, id snowflake.ID) (*Invoice, error)
	GetInvoice(ctx context.Context, id snowflake.ID) (*Invoice, error)
	ListInvoices(ctx context.Context, req ListRequest) ([]Invoice, error)
	SalesRegister(ctx context.Context, from, to time.Time) (*RegisterSummary, error)

	CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*Purchase, error)
	CancelPurchase(ctx context.Context, id snowflake.ID) (*Purchase, error)
	GetPurchase(ctx context.Context, id snowflake.ID) (*Purchase, error)
	ListPurchases(ctx context.Context, req ListRequest) ([]Purchase, error)
	PurchaseRegister(ctx context.Context, from, to time.Time) (*RegisterSummary, error)
}
