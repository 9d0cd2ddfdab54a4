package service

import (
	"context"
	"strings"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Composer acctdomain.Composer
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	composer acctdomain.Composer
}

func NewService(p Params) acctdomain.Books {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("accounting.service"),
		genID:    p.GenID,
		composer: p.Composer,
	}
}

// RecordExpense writes the expense row and its cash/bank leg in one
// transaction.
func (s *Service) RecordExpense(ctx context.Context, req acctdomain.ExpenseRequest) (*acctdomain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, acctdomain.ErrInvalidAmount
	}
	if req.Mode == "" {
		req.Mode = acctdomain.ModeCash
	}
	if req.Mode == acctdomain.ModeCredit || !req.Mode.Valid() {
		return nil, acctdomain.ErrInvalidPaymentMode
	}

	expense := acctdomain.Expense{
		ID:           s.genID.Generate(),
		ExpenseDate:  req.Date,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		Amount:       req.Amount,
		IsGSTExpense: req.IsGSTExpense,
		GSTAmount:    req.GSTAmount,
		PaymentMode:  req.Mode,
		RefNumber:    req.Reference,
		VendorName:   req.VendorName,
		Notes:        req.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CategoryID != nil {
			var count int64
			if err := tx.Model(&acctdomain.ExpenseCategory{}).
				Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return acctdomain.ErrCategoryNotFound
			}
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return s.composer.PostExpense(ctx, tx, &expense)
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *Service) RecordReceipt(ctx context.Context, ev acctdomain.MoneyEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.composer.PostReceipt(ctx, tx, ev)
	})
}

func (s *Service) RecordPayment(ctx context.Context, ev acctdomain.MoneyEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.composer.PostPayment(ctx, tx, ev)
	})
}

func (s *Service) CashBook(ctx context.Context, from, to time.Time) (*acctdomain.CashBookReport, error) {
	var txns []acctdomain.CashTransaction
	err := s.db.WithContext(ctx).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to).
		Order("transaction_date ASC, id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	report := &acctdomain.CashBookReport{
		Transactions:  txns,
		TotalReceipts: decimal.Zero,
		TotalPayments: decimal.Zero,
	}
	for _, t := range txns {
		report.TotalReceipts = report.TotalReceipts.Add(t.Receipt)
		report.TotalPayments = report.TotalPayments.Add(t.Payment)
	}
	report.ClosingBalance = report.TotalReceipts.Sub(report.TotalPayments)
	return report, nil
}

func (s *Service) BankBook(ctx context.Context, from, to time.Time) (*acctdomain.BankBookReport, error) {
	var txns []acctdomain.BankTransaction
	err := s.db.WithContext(ctx).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to).
		Order("transaction_date ASC, id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	report := &acctdomain.BankBookReport{
		Transactions:     txns,
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
	}
	for _, t := range txns {
		report.TotalDeposits = report.TotalDeposits.Add(t.Deposit)
		report.TotalWithdrawals = report.TotalWithdrawals.Add(t.Withdrawal)
	}
	report.ClosingBalance = report.TotalDeposits.Sub(report.TotalWithdrawals)
	return report, nil
}

func (s *Service) CreateExpenseCategory(ctx context.Context, name string, description *string) (*acctdomain.ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, acctdomain.ErrInvalidName
	}

	category := acctdomain.ExpenseCategory{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: description,
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Service) ExpenseCategories(ctx context.Context) ([]acctdomain.ExpenseCategory, error) {
	var categories []acctdomain.ExpenseCategory
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Service) Expenses(ctx context.Context, from, to time.Time) ([]acctdomain.Expense, error) {
	var expenses []acctdomain.Expense
	err := s.db.WithContext(ctx).
		Where("expense_date >= ? AND expense_date <= ?", from, to).
		Order("expense_date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}
