package service

import (
	"context"
	"errors"
	"time"

	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *obsmetrics.Metrics
}

func NewService(p Params) stockdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("stock.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

func (s *Service) AddStock(ctx context.Context, in stockdomain.MovementInput) (decimal.Decimal, error) {
	var after decimal.Decimal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		after, err = s.AddStockTx(ctx, tx, in)
		return err
	})
	return after, err
}

func (s *Service) DeductStock(ctx context.Context, in stockdomain.MovementInput) (decimal.Decimal, error) {
	var after decimal.Decimal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		after, err = s.DeductStockTx(ctx, tx, in)
		return err
	})
	return after, err
}

// AddStockTx increases stock inside the caller's transaction. Inbound
// from a purchase is a PURCHASE movement, anything else an ADJUSTMENT.
func (s *Service) AddStockTx(ctx context.Context, tx *gorm.DB, in stockdomain.MovementInput) (decimal.Decimal, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, stockdomain.ErrInvalidQuantity
	}

	product, err := lockProduct(ctx, tx, in.ProductID)
	if err != nil {
		return decimal.Zero, err
	}

	kind := stockdomain.MovementAdjustment
	if in.RefType == stockdomain.RefPurchase {
		kind = stockdomain.MovementPurchase
	}

	before := product.CurrentStock
	after := before.Add(in.Quantity)

	if err := s.apply(ctx, tx, product, stockdomain.StockMovement{
		ID:          s.genID.Generate(),
		ProductID:   in.ProductID,
		Kind:        kind,
		Quantity:    in.Quantity,
		RefType:     in.RefType,
		RefID:       in.RefID,
		RefNumber:   in.RefNumber,
		StockBefore: before,
		StockAfter:  after,
		Note:        in.Note,
	}); err != nil {
		return decimal.Zero, err
	}
	return after, nil
}

// DeductStockTx decreases stock inside the caller's transaction.
// Negative resulting stock is permitted (backorder); the movement note
// gains a warning marker instead of the operation failing.
func (s *Service) DeductStockTx(ctx context.Context, tx *gorm.DB, in stockdomain.MovementInput) (decimal.Decimal, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, stockdomain.ErrInvalidQuantity
	}

	product, err := lockProduct(ctx, tx, in.ProductID)
	if err != nil {
		return decimal.Zero, err
	}

	kind := stockdomain.MovementAdjustment
	if in.RefType == stockdomain.RefInvoice {
		kind = stockdomain.MovementSale
	}

	before := product.CurrentStock
	after := before.Sub(in.Quantity)

	note := in.Note
	if after.IsNegative() {
		note += stockdomain.WarningNegativeStock
		s.log.Warn("stock went negative",
			zap.String("product_id", in.ProductID.String()),
			zap.String("stock_after", after.String()))
	}

	if err := s.apply(ctx, tx, product, stockdomain.StockMovement{
		ID:          s.genID.Generate(),
		ProductID:   in.ProductID,
		Kind:        kind,
		Quantity:    in.Quantity.Neg(),
		RefType:     in.RefType,
		RefID:       in.RefID,
		RefNumber:   in.RefNumber,
		StockBefore: before,
		StockAfter:  after,
		Note:        note,
	}); err != nil {
		return decimal.Zero, err
	}
	return after, nil
}

// AdjustStockTo sets the absolute stock level; the signed delta is what
// gets recorded on the movement.
func (s *Service) AdjustStockTo(ctx context.Context, productID snowflake.ID, newQuantity decimal.Decimal, note string) (decimal.Decimal, error) {
	if note == "" {
		note = "Manual stock adjustment"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := lockProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		before := product.CurrentStock
		return s.apply(ctx, tx, product, stockdomain.StockMovement{
			ID:          s.genID.Generate(),
			ProductID:   productID,
			Kind:        stockdomain.MovementAdjustment,
			Quantity:    newQuantity.Sub(before),
			RefType:     stockdomain.RefManual,
			StockBefore: before,
			StockAfter:  newQuantity,
			Note:        note,
		})
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newQuantity, nil
}

func (s *Service) MovementsFor(ctx context.Context, productID snowflake.ID, limit int) ([]stockdomain.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var movements []stockdomain.StockMovement
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (s *Service) LowStockProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	var products []catalogdomain.Product
	err := s.db.WithContext(ctx).
		Where("active = ? AND current_stock <= low_stock_threshold", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) InventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var products []catalogdomain.Product
	if err := s.db.WithContext(ctx).Where("active = ?", true).Find(&products).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total, nil
}

// apply persists the product quantity and the movement together; the
// surrounding transaction makes the pair atomic.
func (s *Service) apply(ctx context.Context, tx *gorm.DB, product *catalogdomain.Product, movement stockdomain.StockMovement) error {
	if err := tx.WithContext(ctx).Model(&catalogdomain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"current_stock": movement.StockAfter,
			"updated_at":    time.Now().UTC(),
		}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		return err
	}
	s.metrics.RecordStockMovement(string(movement.Kind))
	return nil
}

func lockProduct(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := tx.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, stockdomain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
