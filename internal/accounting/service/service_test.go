package service

import (
	"context"
	"testing"
	"time"

	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/composer"
	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	catalogdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/catalog/domain"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	partyservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/service"
	stockdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/domain"
	stockservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/stock/service"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestBooks(t *testing.T) (acctdomain.Books, partydomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Product{},
		&stockdomain.StockMovement{},
		&partydomain.Party{},
		&partydomain.PartyTransaction{},
		&acctdomain.JournalEntry{},
		&acctdomain.CashTransaction{},
		&acctdomain.BankTransaction{},
		&acctdomain.Expense{},
		&acctdomain.ExpenseCategory{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	parties := partyservice.NewService(partyservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	stock := stockservice.NewService(stockservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	comp := composer.NewComposer(composer.Params{
		Log: zap.NewNop(), GenID: node, Parties: parties, Stock: stock,
	})

	books := NewService(Params{DB: db, Log: zap.NewNop(), GenID: node, Composer: comp})
	return books, parties, db
}

var testDay = time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

func TestRecordExpense_CashLegWritten(t *testing.T) {
	books, _, db := newTestBooks(t)
	ctx := context.Background()

	expense, err := books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date:        testDay,
		Description: "Shop electricity bill",
		Amount:      decimal.RequireFromString("2400"),
		Mode:        acctdomain.ModeCash,
	})
	require.NoError(t, err)

	var cash acctdomain.CashTransaction
	require.NoError(t, db.First(&cash, "reference_id = ?", expense.ID).Error)
	assert.Equal(t, acctdomain.CashPayment, cash.Type)
	assert.Equal(t, "2400", cash.Payment.String())
	assert.Equal(t, "Expense: Shop electricity bill", cash.Narration)
}

func TestRecordExpense_Validation(t *testing.T) {
	books, _, _ := newTestBooks(t)
	ctx := context.Background()

	_, err := books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, Description: "x", Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, acctdomain.ErrInvalidAmount)

	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, Description: "x",
		Amount: decimal.RequireFromString("10"), Mode: acctdomain.ModeCredit,
	})
	assert.ErrorIs(t, err, acctdomain.ErrInvalidPaymentMode)

	missing := snowflake.ID(404)
	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, Description: "x",
		Amount: decimal.RequireFromString("10"), Mode: acctdomain.ModeCash,
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, acctdomain.ErrCategoryNotFound)
}

func TestRecordReceiptAndPayment_RoundTrip(t *testing.T) {
	books, parties, _ := newTestBooks(t)
	ctx := context.Background()

	customer, err := parties.Create(ctx, partydomain.CreateRequest{
		Type: partydomain.PartyCustomer, Name: "Gupta & Sons",
		OpeningBalance: decimal.RequireFromString("1180"),
	})
	require.NoError(t, err)

	require.NoError(t, books.RecordReceipt(ctx, acctdomain.MoneyEvent{
		Date: testDay, PartyID: customer.ID, PartyName: customer.Name,
		Amount: decimal.RequireFromString("1180"), Mode: acctdomain.ModeCash,
	}))

	got, err := parties.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero())

	supplier, err := parties.Create(ctx, partydomain.CreateRequest{
		Type: partydomain.PartySupplier, Name: "Mehta Distributors",
		OpeningBalance: decimal.RequireFromString("900"),
	})
	require.NoError(t, err)

	require.NoError(t, books.RecordPayment(ctx, acctdomain.MoneyEvent{
		Date: testDay, PartyID: supplier.ID, PartyName: supplier.Name,
		Amount: decimal.RequireFromString("900"), Mode: acctdomain.ModeBank,
	}))

	got, err = parties.Get(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero())
}

func TestCashBook_TotalsAndRange(t *testing.T) {
	books, parties, _ := newTestBooks(t)
	ctx := context.Background()

	customer, err := parties.Create(ctx, partydomain.CreateRequest{
		Type: partydomain.PartyCustomer, Name: "C1",
		OpeningBalance: decimal.RequireFromString("5000"),
	})
	require.NoError(t, err)

	require.NoError(t, books.RecordReceipt(ctx, acctdomain.MoneyEvent{
		Date: testDay, PartyID: customer.ID, PartyName: customer.Name,
		Amount: decimal.RequireFromString("3000"), Mode: acctdomain.ModeCash,
	}))
	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, Description: "Tea and snacks",
		Amount: decimal.RequireFromString("250"), Mode: acctdomain.ModeCash,
	})
	require.NoError(t, err)
	// outside the queried range
	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay.AddDate(0, 2, 0), Description: "Later expense",
		Amount: decimal.RequireFromString("999"), Mode: acctdomain.ModeCash,
	})
	require.NoError(t, err)

	report, err := books.CashBook(ctx, testDay.AddDate(0, 0, -1), testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, report.Transactions, 2)
	assert.Equal(t, "3000", report.TotalReceipts.String())
	assert.Equal(t, "250", report.TotalPayments.String())
	assert.Equal(t, "2750", report.ClosingBalance.String())
}

func TestBankBook_Totals(t *testing.T) {
	books, parties, _ := newTestBooks(t)
	ctx := context.Background()

	customer, err := parties.Create(ctx, partydomain.CreateRequest{
		Type: partydomain.PartyCustomer, Name: "C1",
		OpeningBalance: decimal.RequireFromString("5000"),
	})
	require.NoError(t, err)

	require.NoError(t, books.RecordReceipt(ctx, acctdomain.MoneyEvent{
		Date: testDay, PartyID: customer.ID, PartyName: customer.Name,
		Amount: decimal.RequireFromString("4000"), Mode: acctdomain.ModeBank,
		Reference: "NEFT-100",
	}))
	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, Description: "Rent",
		Amount: decimal.RequireFromString("1500"), Mode: acctdomain.ModeBank,
	})
	require.NoError(t, err)

	report, err := books.BankBook(ctx, testDay.AddDate(0, 0, -1), testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, report.Transactions, 2)
	assert.Equal(t, "4000", report.TotalDeposits.String())
	assert.Equal(t, "1500", report.TotalWithdrawals.String())
	assert.Equal(t, "2500", report.ClosingBalance.String())
}

func TestExpenseCategories(t *testing.T) {
	books, _, _ := newTestBooks(t)
	ctx := context.Background()

	_, err := books.CreateExpenseCategory(ctx, " ", nil)
	assert.ErrorIs(t, err, acctdomain.ErrInvalidName)

	category, err := books.CreateExpenseCategory(ctx, "Utilities", nil)
	require.NoError(t, err)

	_, err = books.RecordExpense(ctx, acctdomain.ExpenseRequest{
		Date: testDay, CategoryID: &category.ID,
		Description: "Water bill",
		Amount:      decimal.RequireFromString("300"),
		Mode:        acctdomain.ModeCash,
	})
	require.NoError(t, err)

	categories, err := books.ExpenseCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Utilities", categories[0].Name)

	expenses, err := books.Expenses(ctx, testDay.AddDate(0, 0, -1), testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Water bill", expenses[0].Description)
}
