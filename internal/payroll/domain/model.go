// Package domain holds the employee master and the monthly salary
// slips derived from it.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Employee is the employee master. Salary components and standing
// deductions are monthly amounts; slips prorate them by attendance.
type Employee struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	EmployeeCode *string      `gorm:"type:text;uniqueIndex"`
	Name         string       `gorm:"type:text;not null"`

	Phone   *string `gorm:"type:text"`
	Email   *string `gorm:"type:text"`
	Address *string `gorm:"type:text"`

	Designation   *string    `gorm:"type:text"`
	Department    *string    `gorm:"type:text"`
	DateOfJoining *time.Time `gorm:"type:date"`
	DateOfLeaving *time.Time `gorm:"type:date"`

	BankName    *string `gorm:"type:text"`
	BankAccount *string `gorm:"type:text"`
	IFSCCode    *string `gorm:"column:ifsc_code;type:text"`

	BasicSalary     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HRA             decimal.Decimal `gorm:"column:hra;type:decimal(12,2);not null;default:0"`
	DA              decimal.Decimal `gorm:"column:da;type:decimal(12,2);not null;default:0"`
	OtherAllowances decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PFDeduction     decimal.Decimal `gorm:"column:pf_deduction;type:decimal(12,2);not null;default:0"`
	ESIDeduction    decimal.Decimal `gorm:"column:esi_deduction;type:decimal(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PAN    *string `gorm:"column:pan;type:text"`
	Aadhar *string `gorm:"type:text"`

	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }

// GrossSalary is the full monthly gross before deductions.
func (e *Employee) GrossSalary() decimal.Decimal {
	return e.BasicSalary.Add(e.HRA).Add(e.DA).Add(e.OtherAllowances)
}

// StandingDeductions is the full monthly deduction total.
func (e *Employee) StandingDeductions() decimal.Decimal {
	return e.PFDeduction.Add(e.ESIDeduction).Add(e.OtherDeductions)
}

// NetSalary is gross minus standing deductions for a full month.
func (e *Employee) NetSalary() decimal.Decimal {
	return e.GrossSalary().Sub(e.StandingDeductions())
}

// SalarySlip is one employee's pay for one month. Amount fields are
// filled by Calculate from the employee master and attendance.
type SalarySlip struct {
	ID         snowflake.ID `gorm:"primaryKey"`
	EmployeeID snowflake.ID `gorm:"not null;index:idx_slip_period,unique"`

	SalaryMonth int `gorm:"not null;index:idx_slip_period,unique"` // 1-12
	SalaryYear  int `gorm:"not null;index:idx_slip_period,unique"`

	TotalWorkingDays int `gorm:"not null;default:30"`
	DaysWorked       int `gorm:"not null;default:30"`
	DaysAbsent       int `gorm:"not null;default:0"`

	BasicSalary     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	HRA             decimal.Decimal `gorm:"column:hra;type:decimal(12,2);not null;default:0"`
	DA              decimal.Decimal `gorm:"column:da;type:decimal(12,2);not null;default:0"`
	OtherAllowances decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Overtime        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Bonus           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PFDeduction     decimal.Decimal `gorm:"column:pf_deduction;type:decimal(12,2);not null;default:0"`
	ESIDeduction    decimal.Decimal `gorm:"column:esi_deduction;type:decimal(12,2);not null;default:0"`
	TDS             decimal.Decimal `gorm:"column:tds;type:decimal(12,2);not null;default:0"`
	LoanDeduction   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AbsentDeduction decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	NetSalary decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PaymentDate      *time.Time `gorm:"type:date"`
	PaymentMode      *string    `gorm:"type:text"`
	PaymentReference *string    `gorm:"type:text"`
	Paid             bool       `gorm:"column:is_paid;not null;default:false"`

	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SalarySlip) TableName() string { return "salary_slips" }

// Calculate fills the slip's earnings and deductions from the employee
// master and the slip's attendance. Overtime and bonus are paid in
// full; the monthly components and PF/ESI are prorated by days worked.
// Loan and standing other deductions are taken in full, and each
// absent day additionally deducts one day of gross.
func (s *SalarySlip) Calculate(emp *Employee) {
	if s.TotalWorkingDays <= 0 {
		return
	}
	totalDays := decimal.NewFromInt(int64(s.TotalWorkingDays))
	ratio := decimal.NewFromInt(int64(s.DaysWorked)).Div(totalDays)
	dayRate := emp.GrossSalary().Div(totalDays)

	s.BasicSalary = emp.BasicSalary.Mul(ratio).Round(2)
	s.HRA = emp.HRA.Mul(ratio).Round(2)
	s.DA = emp.DA.Mul(ratio).Round(2)
	s.OtherAllowances = emp.OtherAllowances.Mul(ratio).Round(2)
	s.GrossSalary = s.BasicSalary.Add(s.HRA).Add(s.DA).Add(s.OtherAllowances).
		Add(s.Overtime).Add(s.Bonus)

	s.PFDeduction = emp.PFDeduction.Mul(ratio).Round(2)
	s.ESIDeduction = emp.ESIDeduction.Mul(ratio).Round(2)
	s.OtherDeductions = s.LoanDeduction.Add(emp.OtherDeductions)
	s.AbsentDeduction = decimal.NewFromInt(int64(s.DaysAbsent)).Mul(dayRate).Round(2)
	s.TotalDeductions = s.PFDeduction.Add(s.ESIDeduction).Add(s.TDS).
		Add(s.OtherDeductions).Add(s.AbsentDeduction)

	s.NetSalary = s.GrossSalary.Sub(s.TotalDeductions)
}
