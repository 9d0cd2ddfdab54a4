package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	fydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/fiscalyear/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p Params) fydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("fiscalyear.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) GetOrCreateCurrent(ctx context.Context) (*fydomain.FinancialYear, error) {
	period := fydomain.ResolvePeriod(s.clock.Now())

	existing, err := s.findByCode(ctx, period.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	fy := &fydomain.FinancialYear{
		ID:        s.genID.Generate(),
		Name:      period.Name,
		Code:      period.Code,
		StartDate: period.StartDate,
		EndDate:   period.EndDate,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fy).Error; err != nil {
			return err
		}
		// Only one year may be active for numbering.
		return tx.Model(&fydomain.FinancialYear{}).
			Where("code <> ?", period.Code).
			Update("is_active", false).Error
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			// Lost the creation race; the winner's row is authoritative.
			return s.findByCode(ctx, period.Code)
		}
		return nil, fmt.Errorf("create financial year %s: %w", period.Code, err)
	}

	s.log.Info("financial year opened",
		zap.String("name", fy.Name),
		zap.String("code", fy.Code))
	return fy, nil
}

func (s *Service) ActiveYear(ctx context.Context) (*fydomain.FinancialYear, error) {
	var fy fydomain.FinancialYear
	err := s.db.WithContext(ctx).First(&fy, "is_active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.GetOrCreateCurrent(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &fy, nil
}

func (s *Service) List(ctx context.Context) ([]fydomain.FinancialYear, error) {
	var years []fydomain.FinancialYear
	if err := s.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error; err != nil {
		return nil, err
	}
	return years, nil
}

func (s *Service) Close(ctx context.Context, code string) error {
	result := s.db.WithContext(ctx).Model(&fydomain.FinancialYear{}).
		Where("code = ?", code).
		Updates(map[string]any{"is_closed": true, "is_active": false})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fydomain.ErrNotFound
	}
	s.log.Info("financial year closed", zap.String("code", code))
	return nil
}

// NextDocumentNumber runs inside the caller's transaction so a rolled
// back document never consumes a number. The in-place UPDATE serializes
// concurrent issuers on the year row.
func (s *Service) NextDocumentNumber(ctx context.Context, tx *gorm.DB, yearID snowflake.ID, kind fydomain.DocumentKind, prefix string) (string, error) {
	var column string
	switch kind {
	case fydomain.KindInvoice:
		column = "invoice_counter"
	case fydomain.KindPurchase:
		column = "purchase_counter"
	default:
		return "", fydomain.ErrUnknownKind
	}

	var fy fydomain.FinancialYear
	if err := tx.WithContext(ctx).First(&fy, "id = ?", yearID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fydomain.ErrNotFound
		}
		return "", err
	}
	if fy.IsClosed {
		return "", fydomain.ErrYearClosed
	}

	if err := tx.WithContext(ctx).Exec(
		fmt.Sprintf("UPDATE financial_years SET %s = %s + 1 WHERE id = ?", column, column),
		yearID,
	).Error; err != nil {
		return "", err
	}

	var counter int64
	if err := tx.WithContext(ctx).Raw(
		fmt.Sprintf("SELECT %s FROM financial_years WHERE id = ?", column),
		yearID,
	).Scan(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s/%04d", prefix, fy.Code, counter), nil
}

func (s *Service) findByCode(ctx context.Context, code string) (*fydomain.FinancialYear, error) {
	var fy fydomain.FinancialYear
	err := s.db.WithContext(ctx).First(&fy, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fy, nil
}
