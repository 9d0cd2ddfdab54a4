package service

import (
	"context"
	"testing"
	"time"

	"github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/composer"
	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	partydomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/domain"
	partyservice "github.com/AtharvaMeherkar/billpro-billing-software/internal/party/service"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
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

func newService(t *testing.T) (payrolldomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&payrolldomain.Employee{},
		&payrolldomain.SalarySlip{},
		&acctdomain.Expense{},
		&acctdomain.CashTransaction{},
		&acctdomain.BankTransaction{},
		&partydomain.Party{},
		&partydomain.PartyTransaction{},
		&stockdomain.StockMovement{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	parties := partyservice.NewService(partyservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	stock := stockservice.NewService(stockservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	comp := composer.NewComposer(composer.Params{
		Log: zap.NewNop(), GenID: node, Parties: parties, Stock: stock,
	})

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2024, 7, 31, 18, 0, 0, 0, time.UTC)),
		Composer: comp,
	})
	return svc, db
}

func seedEmployee(t *testing.T, svc payrolldomain.Service, name string) *payrolldomain.Employee {
	t.Helper()
	emp, err := svc.CreateEmployee(context.Background(), payrolldomain.CreateEmployeeRequest{
		Name:            name,
		BasicSalary:     decimal.RequireFromString("20000"),
		HRA:             decimal.RequireFromString("5000"),
		DA:              decimal.RequireFromString("3000"),
		OtherAllowances: decimal.RequireFromString("2000"),
		PFDeduction:     decimal.RequireFromString("1800"),
		ESIDeduction:    decimal.RequireFromString("500"),
		OtherDeductions: decimal.RequireFromString("200"),
	})
	require.NoError(t, err)
	return emp
}

func TestSalarySlip_CalculateProration(t *testing.T) {
	emp := &payrolldomain.Employee{
		BasicSalary:     decimal.RequireFromString("20000"),
		HRA:             decimal.RequireFromString("5000"),
		DA:              decimal.RequireFromString("3000"),
		OtherAllowances: decimal.RequireFromString("2000"),
		PFDeduction:     decimal.RequireFromString("1800"),
		ESIDeduction:    decimal.RequireFromString("500"),
		OtherDeductions: decimal.RequireFromString("200"),
	}
	slip := payrolldomain.SalarySlip{
		TotalWorkingDays: 30,
		DaysWorked:       27,
		DaysAbsent:       3,
		Bonus:            decimal.RequireFromString("1000"),
		LoanDeduction:    decimal.RequireFromString("500"),
	}

	slip.Calculate(emp)

	assert.Equal(t, "18000.00", slip.BasicSalary.StringFixed(2))
	assert.Equal(t, "4500.00", slip.HRA.StringFixed(2))
	assert.Equal(t, "28000.00", slip.GrossSalary.StringFixed(2))
	assert.Equal(t, "1620.00", slip.PFDeduction.StringFixed(2))
	assert.Equal(t, "450.00", slip.ESIDeduction.StringFixed(2))
	// loan plus the employee's standing other deductions
	assert.Equal(t, "700.00", slip.OtherDeductions.StringFixed(2))
	// three absent days at one day of gross each
	assert.Equal(t, "3000.00", slip.AbsentDeduction.StringFixed(2))
	assert.Equal(t, "5770.00", slip.TotalDeductions.StringFixed(2))
	assert.Equal(t, "22220.00", slip.NetSalary.StringFixed(2))
}

func TestSalarySlip_CalculateFullMonth(t *testing.T) {
	emp := &payrolldomain.Employee{
		BasicSalary: decimal.RequireFromString("30000"),
		PFDeduction: decimal.RequireFromString("1800"),
	}
	slip := payrolldomain.SalarySlip{TotalWorkingDays: 30, DaysWorked: 30}

	slip.Calculate(emp)

	assert.Equal(t, "30000.00", slip.GrossSalary.StringFixed(2))
	assert.True(t, slip.AbsentDeduction.IsZero())
	assert.Equal(t, "28200.00", slip.NetSalary.StringFixed(2))
}

func TestProcessPayroll_SkipsExistingSlips(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	first := seedEmployee(t, svc, "Asha Verma")
	seedEmployee(t, svc, "Ravi Kumar")

	processed, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{
		Month: 7, Year: 2024, TotalWorkingDays: 30,
		Attendance: map[snowflake.ID]payrolldomain.Attendance{
			first.ID: {DaysWorked: 25},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	// second run for the same period creates nothing
	processed, err = svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{
		Month: 7, Year: 2024, TotalWorkingDays: 30,
	})
	require.NoError(t, err)
	assert.Zero(t, processed)

	var count int64
	require.NoError(t, db.Model(&payrolldomain.SalarySlip{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	slips, err := svc.SlipsFor(ctx, 7, 2024)
	require.NoError(t, err)
	require.Len(t, slips, 2)
	for _, slip := range slips {
		if slip.EmployeeID == first.ID {
			assert.Equal(t, 25, slip.DaysWorked)
			assert.Equal(t, 5, slip.DaysAbsent)
		} else {
			assert.Equal(t, 30, slip.DaysWorked)
		}
	}
}

func TestProcessPayroll_SkipsInactiveEmployees(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	seedEmployee(t, svc, "Asha Verma")
	inactive := seedEmployee(t, svc, "Ravi Kumar")

	off := false
	_, err := svc.UpdateEmployee(ctx, inactive.ID, payrolldomain.UpdateEmployeeRequest{Active: &off})
	require.NoError(t, err)

	processed, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{Month: 7, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
}

func TestProcessPayroll_RejectsBadPeriod(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.ProcessPayroll(context.Background(), payrolldomain.ProcessRequest{Month: 13, Year: 2024})
	assert.ErrorIs(t, err, payrolldomain.ErrInvalidPeriod)
}

func TestPaySalary_BankPostsExpenseAndWithdrawal(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	emp := seedEmployee(t, svc, "Asha Verma")

	_, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{Month: 7, Year: 2024})
	require.NoError(t, err)
	slips, err := svc.SlipsFor(ctx, 7, 2024)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	paid, err := svc.PaySalary(ctx, slips[0].ID, acctdomain.ModeBank, "NEFT-2041")
	require.NoError(t, err)
	assert.True(t, paid.Paid)
	require.NotNil(t, paid.PaymentMode)
	assert.Equal(t, "BANK", *paid.PaymentMode)

	var expense acctdomain.Expense
	require.NoError(t, db.First(&expense).Error)
	assert.Equal(t, "Salary - Asha Verma (7/2024)", expense.Description)
	assert.Equal(t, "27500.00", expense.Amount.StringFixed(2))
	require.NotNil(t, expense.VendorName)
	assert.Equal(t, emp.Name, *expense.VendorName)

	var bank acctdomain.BankTransaction
	require.NoError(t, db.First(&bank).Error)
	assert.Equal(t, "Salary payment - Asha Verma", bank.Description)
	assert.Equal(t, "27500.00", bank.Withdrawal.StringFixed(2))
	assert.Equal(t, acctdomain.AccountSalary, bank.RefType)
}

func TestPaySalary_CashLeg(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	seedEmployee(t, svc, "Asha Verma")

	_, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{Month: 7, Year: 2024})
	require.NoError(t, err)
	slips, err := svc.SlipsFor(ctx, 7, 2024)
	require.NoError(t, err)

	_, err = svc.PaySalary(ctx, slips[0].ID, acctdomain.ModeCash, "")
	require.NoError(t, err)

	var cash acctdomain.CashTransaction
	require.NoError(t, db.First(&cash).Error)
	assert.Equal(t, "27500.00", cash.Payment.StringFixed(2))

	var bankCount int64
	require.NoError(t, db.Model(&acctdomain.BankTransaction{}).Count(&bankCount).Error)
	assert.Zero(t, bankCount)
}

func TestPaySalary_TwiceRejected(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	seedEmployee(t, svc, "Asha Verma")

	_, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{Month: 7, Year: 2024})
	require.NoError(t, err)
	slips, err := svc.SlipsFor(ctx, 7, 2024)
	require.NoError(t, err)

	_, err = svc.PaySalary(ctx, slips[0].ID, acctdomain.ModeBank, "")
	require.NoError(t, err)
	_, err = svc.PaySalary(ctx, slips[0].ID, acctdomain.ModeBank, "")
	assert.ErrorIs(t, err, payrolldomain.ErrAlreadyPaid)

	var expenses int64
	require.NoError(t, db.Model(&acctdomain.Expense{}).Count(&expenses).Error)
	assert.Equal(t, int64(1), expenses)
}

func TestMonthSummary(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	seedEmployee(t, svc, "Asha Verma")
	seedEmployee(t, svc, "Ravi Kumar")

	_, err := svc.ProcessPayroll(ctx, payrolldomain.ProcessRequest{Month: 7, Year: 2024})
	require.NoError(t, err)
	slips, err := svc.SlipsFor(ctx, 7, 2024)
	require.NoError(t, err)
	require.Len(t, slips, 2)

	_, err = svc.PaySalary(ctx, slips[0].ID, acctdomain.ModeBank, "")
	require.NoError(t, err)

	summary, err := svc.MonthSummary(ctx, 7, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, "55000.00", summary.TotalSalary.StringFixed(2))
}

func TestCreateEmployee_RequiresName(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateEmployee(context.Background(), payrolldomain.CreateEmployeeRequest{Name: "  "})
	assert.ErrorIs(t, err, payrolldomain.ErrInvalidName)
}
