package service

import (
	"context"
	"testing"

	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.Product{}, &stockdomain.StockMovement{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
	}).(*Service)

	return svc, db, node
}

func seedProduct(t *testing.T, db *gorm.DB, node *snowflake.Node, stock, cost string) catalogdomain.Product {
	t.Helper()

	p := catalogdomain.Product{
		ID:                node.Generate(),
		Name:              "Blue Pen",
		GSTPercent:        decimal.RequireFromString("18"),
		CostPrice:         decimal.RequireFromString(cost),
		SellingPrice:      decimal.RequireFromString(cost).Mul(decimal.RequireFromString("1.5")),
		CurrentStock:      decimal.RequireFromString(stock),
		LowStockThreshold: decimal.RequireFromString("10"),
		Unit:              "PCS",
		Active:            true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAddStock_RecordsPurchaseMovement(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "10", "20")

	after, err := svc.AddStock(ctx, stockdomain.MovementInput{
		ProductID: p.ID,
		Quantity:  decimal.RequireFromString("25"),
		RefType:   stockdomain.RefPurchase,
		RefNumber: "PUR/2425/0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "35", after.String())

	var got catalogdomain.Product
	require.NoError(t, db.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, "35", got.CurrentStock.String())

	movements, err := svc.MovementsFor(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, stockdomain.MovementPurchase, movements[0].Kind)
	assert.Equal(t, "25", movements[0].Quantity.String())
	assert.Equal(t, "10", movements[0].StockBefore.String())
	assert.Equal(t, "35", movements[0].StockAfter.String())
	assert.Equal(t, "PUR/2425/0001", movements[0].RefNumber)
}

func TestDeductStock_AllowsNegativeWithWarning(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "10", "20")

	after, err := svc.DeductStock(ctx, stockdomain.MovementInput{
		ProductID: p.ID,
		Quantity:  decimal.RequireFromString("15"),
		RefType:   stockdomain.RefInvoice,
		RefNumber: "INV/2425/0001",
		Note:      "Sale INV/2425/0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "-5", after.String())

	movements, err := svc.MovementsFor(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, stockdomain.MovementSale, movements[0].Kind)
	assert.Equal(t, "-15", movements[0].Quantity.String())
	assert.Equal(t, "10", movements[0].StockBefore.String())
	assert.Equal(t, "-5", movements[0].StockAfter.String())
	assert.Equal(t, "Sale INV/2425/0001 [WARNING: Stock went negative]", movements[0].Note)
}

func TestDeductStock_NoWarningWhenStockRemains(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "10", "20")

	_, err := svc.DeductStock(ctx, stockdomain.MovementInput{
		ProductID: p.ID,
		Quantity:  decimal.RequireFromString("4"),
		RefType:   stockdomain.RefInvoice,
		Note:      "Sale",
	})
	require.NoError(t, err)

	movements, err := svc.MovementsFor(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "Sale", movements[0].Note)
}

func TestMovements_ChainIsContiguous(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "100", "20")

	_, err := svc.AddStock(ctx, stockdomain.MovementInput{
		ProductID: p.ID, Quantity: decimal.RequireFromString("50"), RefType: stockdomain.RefPurchase,
	})
	require.NoError(t, err)
	_, err = svc.DeductStock(ctx, stockdomain.MovementInput{
		ProductID: p.ID, Quantity: decimal.RequireFromString("30"), RefType: stockdomain.RefInvoice,
	})
	require.NoError(t, err)
	_, err = svc.AdjustStockTo(ctx, p.ID, decimal.RequireFromString("115"), "")
	require.NoError(t, err)

	movements, err := svc.MovementsFor(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	// newest first; walk oldest to newest checking the chain
	for i := len(movements) - 1; i > 0; i-- {
		assert.True(t, movements[i].StockAfter.Equal(movements[i-1].StockBefore),
			"movement chain broken between %d and %d", i, i-1)
	}
	assert.Equal(t, "115", movements[0].StockAfter.String())
}

func TestAdjustStockTo_RecordsDelta(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "40", "20")

	after, err := svc.AdjustStockTo(ctx, p.ID, decimal.RequireFromString("33"), "")
	require.NoError(t, err)
	assert.Equal(t, "33", after.String())

	movements, err := svc.MovementsFor(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, stockdomain.MovementAdjustment, movements[0].Kind)
	assert.Equal(t, "-7", movements[0].Quantity.String())
	assert.Equal(t, stockdomain.RefManual, movements[0].RefType)
	assert.Equal(t, "Manual stock adjustment", movements[0].Note)
}

func TestMutations_RejectNonPositiveQuantity(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, db, node, "10", "20")

	_, err := svc.AddStock(ctx, stockdomain.MovementInput{ProductID: p.ID, Quantity: decimal.Zero})
	assert.ErrorIs(t, err, stockdomain.ErrInvalidQuantity)

	_, err = svc.DeductStock(ctx, stockdomain.MovementInput{ProductID: p.ID, Quantity: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, stockdomain.ErrInvalidQuantity)
}

func TestDeductStock_UnknownProduct(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.DeductStock(context.Background(), stockdomain.MovementInput{
		ProductID: node.Generate(),
		Quantity:  decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, stockdomain.ErrProductNotFound)
}

func TestInventoryValue_ActiveProductsAtCost(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	seedProduct(t, db, node, "10", "20") // 200
	p2 := seedProduct(t, db, node, "5", "100")
	p2.Name = "Notebook"
	code := "NB-01"
	p2.Code = &code
	require.NoError(t, db.Save(&p2).Error) // 500

	inactive := seedProductNamed(t, db, node, "Stapler", "3", "50")
	require.NoError(t, db.Model(&inactive).Update("active", false).Error)

	value, err := svc.InventoryValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "700", value.String())
}

func TestLowStockProducts(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	low := seedProductNamed(t, db, node, "Almost Out", "3", "10")
	seedProductNamed(t, db, node, "Plenty", "500", "10")

	products, err := svc.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, low.ID, products[0].ID)
}

func seedProductNamed(t *testing.T, db *gorm.DB, node *snowflake.Node, name, stock, cost string) catalogdomain.Product {
	t.Helper()

	p := catalogdomain.Product{
		ID:                node.Generate(),
		Name:              name,
		CostPrice:         decimal.RequireFromString(cost),
		SellingPrice:      decimal.RequireFromString(cost),
		CurrentStock:      decimal.RequireFromString(stock),
		LowStockThreshold: decimal.RequireFromString("10"),
		Unit:              "PCS",
		Active:            true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}
