package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product_not_found")
	ErrInvalidQuantity = errors.New("invalid_quantity")
)

// MovementInput describes one stock mutation.
type MovementInput struct {
	ProductID snowflake.ID
	Quantity  decimal.Decimal
	RefType   string
	RefID     *snowflake.ID
	RefNumber string
	Note      string
}

// Service is the stock ledger. Every mutation updates the product row
// and appends a movement in one atomic unit. The Tx variants join the
// caller's transaction so document posting remains all-or-nothing.
type Service interface {
	AddStock(ctx context.Context, in MovementInput) (decimal.Decimal, error)
	DeductStock(ctx context.Context, in MovementInput) (decimal.Decimal, error)
	AdjustStockTo(ctx context.Context, productID snowflake.ID, newQuantity decimal.Decimal, note string) (decimal.Decimal, error)

	AddStockTx(ctx context.Context, tx *gorm.DB, in MovementInput) (decimal.Decimal, error)
	DeductStockTx(ctx context.Context, tx *gorm.DB, in MovementInput) (decimal.Decimal, error)

	MovementsFor(ctx context.Context, productID snowflake.ID, limit int) ([]StockMovement, error)
	LowStockProducts(ctx context.Context) ([]catalogdomain.Product, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}
