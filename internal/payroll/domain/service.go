package domain

import (
	"context"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	Name         string  `json:"name"`

	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`

	Designation   *string    `json:"designation,omitempty"`
	Department    *string    `json:"department,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`

	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	IFSCCode    *string `json:"ifsc_code,omitempty"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	HRA             decimal.Decimal `json:"hra"`
	DA              decimal.Decimal `json:"da"`
	OtherAllowances decimal.Decimal `json:"other_allowances"`

	PFDeduction     decimal.Decimal `json:"pf_deduction"`
	ESIDeduction    decimal.Decimal `json:"esi_deduction"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	PAN    *string `json:"pan,omitempty"`
	Aadhar *string `json:"aadhar,omitempty"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`

	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	IFSCCode    *string `json:"ifsc_code,omitempty"`

	BasicSalary     *decimal.Decimal `json:"basic_salary,omitempty"`
	HRA             *decimal.Decimal `json:"hra,omitempty"`
	DA              *decimal.Decimal `json:"da,omitempty"`
	OtherAllowances *decimal.Decimal `json:"other_allowances,omitempty"`
	PFDeduction     *decimal.Decimal `json:"pf_deduction,omitempty"`
	ESIDeduction    *decimal.Decimal `json:"esi_deduction,omitempty"`
	OtherDeductions *decimal.Decimal `json:"other_deductions,omitempty"`

	Active *bool `json:"is_active,omitempty"`
}

// Attendance is one employee's inputs for a payroll run.
type Attendance struct {
	DaysWorked    int             `json:"days_worked"`
	Bonus         decimal.Decimal `json:"bonus"`
	LoanDeduction decimal.Decimal `json:"loan_deduction"`
}

// ProcessRequest runs payroll for one month. Employees missing from
// Attendance are treated as present for all working days.
type ProcessRequest struct {
	Month            int                         `json:"month"`
	Year             int                         `json:"year"`
	TotalWorkingDays int                         `json:"total_working_days"`
	Attendance       map[snowflake.ID]Attendance `json:"attendance,omitempty"`
}

// MonthSummary is the payroll dashboard for one month.
type MonthSummary struct {
	Processed   int             `json:"processed"`
	Paid        int             `json:"paid"`
	TotalSalary decimal.Decimal `json:"total_salary"`
}

type Service interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)
	UpdateEmployee(ctx context.Context, id snowflake.ID, req UpdateEmployeeRequest) (*Employee, error)
	GetEmployee(ctx context.Context, id snowflake.ID) (*Employee, error)
	ListEmployees(ctx context.Context, includeInactive bool) ([]Employee, error)

	// ProcessPayroll creates slips for every active employee without
	// one for the period and returns how many were created.
	ProcessPayroll(ctx context.Context, req ProcessRequest) (int, error)
	SlipsFor(ctx context.Context, month, year int) ([]SalarySlip, error)
	GetSlip(ctx context.Context, id snowflake.ID) (*SalarySlip, error)

	// PaySalary marks the slip paid and posts the expense plus the
	// cash or bank leg. Paying twice is rejected.
	PaySalary(ctx context.Context, id snowflake.ID, mode acctdomain.PaymentMode, reference string) (*SalarySlip, error)

	MonthSummary(ctx context.Context, month, year int) (*MonthSummary, error)
}
