package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRequest struct {
	Type           PartyType       `json:"party_type"`
	Name           string          `json:"name"`
	GSTIN          *string         `json:"gstin,omitempty"`
	PAN            *string         `json:"pan,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Address        *string         `json:"address,omitempty"`
	City           *string         `json:"city,omitempty"`
	Pincode        *string         `json:"pincode,omitempty"`
	StateCode      string          `json:"state_code"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
}

type UpdateRequest struct {
	ID          snowflake.ID     `json:"id"`
	Name        *string          `json:"name,omitempty"`
	GSTIN       *string          `json:"gstin,omitempty"`
	PAN         *string          `json:"pan,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Address     *string          `json:"address,omitempty"`
	City        *string          `json:"city,omitempty"`
	Pincode     *string          `json:"pincode,omitempty"`
	StateCode   *string          `json:"state_code,omitempty"`
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
}

type ListRequest struct {
	Type         PartyType
	Search       string
	ShowInactive bool
}

// PostInput is one ledger posting. Exactly one of Debit or Credit must
// be positive. Date is the document date; zero means the posting time.
type PostInput struct {
	PartyID   snowflake.ID
	Date      time.Time
	Type      string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	RefType   string
	RefID     *snowflake.ID
	RefNumber string
	Note      string
}

// Service is the party ledger. Post appends the transaction row and
// moves CurrentBalance in one step so the two can never disagree.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Party, error)
	Update(ctx context.Context, req UpdateRequest) (*Party, error)
	Get(ctx context.Context, id snowflake.ID) (*Party, error)
	List(ctx context.Context, req ListRequest) ([]Party, error)
	Deactivate(ctx context.Context, id snowflake.ID) error

	Post(ctx context.Context, tx *gorm.DB, in PostInput) (*PartyTransaction, error)
	TransactionsFor(ctx context.Context, partyID snowflake.ID, limit int) ([]PartyTransaction, error)

	TotalReceivable(ctx context.Context) (decimal.Decimal, error)
	TotalPayable(ctx context.Context) (decimal.Decimal, error)
}
