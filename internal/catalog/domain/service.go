package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, req UpdateRequest) (*Product, error)
	Get(ctx context.Context, id snowflake.ID) (*Product, error)
	List(ctx context.Context, req ListRequest) ([]Product, error)
	Deactivate(ctx context.Context, id snowflake.ID) error

	CreateCategory(ctx context.Context, name string, description *string) (*ProductCategory, error)
	Categories(ctx context.Context) ([]ProductCategory, error)
	DeleteCategory(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name              string           `json:"name"`
	Code              *string          `json:"code,omitempty"`
	Description       *string          `json:"description,omitempty"`
	CategoryID        *snowflake.ID    `json:"category_id,omitempty"`
	HSNCode           string           `json:"hsn_code"`
	GSTPercent        decimal.Decimal  `json:"gst_percent"`
	CostPrice         decimal.Decimal  `json:"cost_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	MRP               *decimal.Decimal `json:"mrp,omitempty"`
	OpeningStock      decimal.Decimal  `json:"opening_stock"`
	LowStockThreshold decimal.Decimal  `json:"low_stock_threshold"`
	Unit              string           `json:"unit"`
}

type UpdateRequest struct {
	ID                snowflake.ID     `json:"id"`
	Name              *string          `json:"name,omitempty"`
	Code              *string          `json:"code,omitempty"`
	Description       *string          `json:"description,omitempty"`
	CategoryID        *snowflake.ID    `json:"category_id,omitempty"`
	HSNCode           *string          `json:"hsn_code,omitempty"`
	GSTPercent        *decimal.Decimal `json:"gst_percent,omitempty"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	MRP               *decimal.Decimal `json:"mrp,omitempty"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold,omitempty"`
	Unit              *string          `json:"unit,omitempty"`
	Active            *bool            `json:"active,omitempty"`
}

type ListRequest struct {
	Search       string
	CategoryID   *snowflake.ID
	LowStockOnly bool
	ShowInactive bool
}
