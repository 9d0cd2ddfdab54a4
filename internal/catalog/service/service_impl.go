package service

import (
	"context"
	"errors"
	"strings"
	"time"

	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
	}
}

// Create inserts the product and, when an opening stock quantity is
// given, seeds the movement trail so the very first balance is
// explainable from the ledger.
func (s *Service) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.Unit == "" {
		req.Unit = "PCS"
	}
	if req.LowStockThreshold.IsZero() {
		req.LowStockThreshold = decimal.NewFromInt(10)
	}

	product := catalogdomain.Product{
		ID:                s.genID.Generate(),
		Code:              req.Code,
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		HSNCode:           req.HSNCode,
		GSTPercent:        req.GSTPercent,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		CurrentStock:      req.OpeningStock,
		LowStockThreshold: req.LowStockThreshold,
		Unit:              req.Unit,
		Active:            true,
	}
	if req.MRP != nil {
		product.MRP = decimal.NewNullDecimal(*req.MRP)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CategoryID != nil {
			var count int64
			if err := tx.Model(&catalogdomain.ProductCategory{}).
				Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return catalogdomain.ErrCategoryNotFound
			}
		}

		if err := tx.Create(&product).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return catalogdomain.ErrDuplicateCode
			}
			return err
		}

		if req.OpeningStock.IsPositive() {
			movement := stockdomain.StockMovement{
				ID:          s.genID.Generate(),
				ProductID:   product.ID,
				Kind:        stockdomain.MovementAdjustment,
				Quantity:    req.OpeningStock,
				RefType:     stockdomain.RefOpening,
				StockBefore: decimal.Zero,
				StockAfter:  req.OpeningStock,
				Note:        "Opening stock",
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	return &product, nil
}

func (s *Service) Update(ctx context.Context, req catalogdomain.UpdateRequest) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalogdomain.ErrNotFound
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return catalogdomain.ErrInvalidName
			}
			product.Name = name
		}
		if req.Code != nil {
			product.Code = req.Code
		}
		if req.Description != nil {
			product.Description = req.Description
		}
		if req.CategoryID != nil {
			product.CategoryID = req.CategoryID
		}
		if req.HSNCode != nil {
			product.HSNCode = *req.HSNCode
		}
		if req.GSTPercent != nil {
			product.GSTPercent = *req.GSTPercent
		}
		if req.CostPrice != nil {
			product.CostPrice = *req.CostPrice
		}
		if req.SellingPrice != nil {
			product.SellingPrice = *req.SellingPrice
		}
		if req.MRP != nil {
			product.MRP = decimal.NewNullDecimal(*req.MRP)
		}
		if req.LowStockThreshold != nil {
			product.LowStockThreshold = *req.LowStockThreshold
		}
		if req.Unit != nil {
			product.Unit = *req.Unit
		}
		if req.Active != nil {
			product.Active = *req.Active
		}
		product.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&product).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				return catalogdomain.ErrDuplicateCode
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*catalogdomain.Product, error) {
	var product catalogdomain.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalogdomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) List(ctx context.Context, req catalogdomain.ListRequest) ([]catalogdomain.Product, error) {
	q := s.db.WithContext(ctx).Model(&catalogdomain.Product{})

	if !req.ShowInactive {
		q = q.Where("active = ?", true)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(code, '')) LIKE ? OR hsn_code LIKE ?", like, like, like)
	}
	if req.CategoryID != nil {
		q = q.Where("category_id = ?", *req.CategoryID)
	}
	if req.LowStockOnly {
		q = q.Where("current_stock <= low_stock_threshold")
	}

	var products []catalogdomain.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Deactivate soft-hides the product. Rows referenced by documents and
// movements must survive, so there is no hard delete.
func (s *Service) Deactivate(ctx context.Context, id snowflake.ID) error {
	res := s.db.WithContext(ctx).Model(&catalogdomain.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalogdomain.ErrNotFound
	}
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*catalogdomain.ProductCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}

	category := catalogdomain.ProductCategory{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) Categories(ctx context.Context) ([]catalogdomain.ProductCategory, error) {
	var categories []catalogdomain.ProductCategory
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory refuses while any product still points at the category.
func (s *Service) DeleteCategory(ctx context.Context, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Product{}).
			Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return catalogdomain.ErrCategoryInUse
		}

		res := tx.Delete(&catalogdomain.ProductCategory{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalogdomain.ErrCategoryNotFound
		}
		return nil
	})
}
