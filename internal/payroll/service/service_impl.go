package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	acctdomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/accounting/domain"
	"github.com/AtharvaMeherkar/billpro-billing-software/internal/clock"
	obsmetrics "github.com/AtharvaMeherkar/billpro-billing-software/internal/observability/metrics"
	payrolldomain "github.com/AtharvaMeherkar/billpro-billing-software/internal/payroll/domain"
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
	Clock    clock.Clock
	Composer acctdomain.Composer
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	composer acctdomain.Composer
	metrics  *obsmetrics.Metrics
}

func NewService(p Params) payrolldomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payroll.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		composer: p.Composer,
		metrics:  p.Metrics,
	}
}

func (s *Service) CreateEmployee(ctx context.Context, req payrolldomain.CreateEmployeeRequest) (*payrolldomain.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, payrolldomain.ErrInvalidName
	}

	emp := payrolldomain.Employee{
		ID:              s.genID.Generate(),
		EmployeeCode:    req.EmployeeCode,
		Name:            name,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		Designation:     req.Designation,
		Department:      req.Department,
		DateOfJoining:   req.DateOfJoining,
		BankName:        req.BankName,
		BankAccount:     req.BankAccount,
		IFSCCode:        req.IFSCCode,
		BasicSalary:     req.BasicSalary,
		HRA:             req.HRA,
		DA:              req.DA,
		OtherAllowances: req.OtherAllowances,
		PFDeduction:     req.PFDeduction,
		ESIDeduction:    req.ESIDeduction,
		OtherDeductions: req.OtherDeductions,
		PAN:             req.PAN,
		Aadhar:          req.Aadhar,
		Active:          true,
	}
	if err := s.db.WithContext(ctx).Create(&emp).Error; err != nil {
		return nil, err
	}

	s.log.Info("employee created",
		zap.String("name", emp.Name),
		zap.String("net_salary", emp.NetSalary().String()))
	return &emp, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id snowflake.ID, req payrolldomain.UpdateEmployeeRequest) (*payrolldomain.Employee, error) {
	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, payrolldomain.ErrInvalidName
		}
		emp.Name = name
	}
	if req.Phone != nil {
		emp.Phone = req.Phone
	}
	if req.Email != nil {
		emp.Email = req.Email
	}
	if req.Address != nil {
		emp.Address = req.Address
	}
	if req.Designation != nil {
		emp.Designation = req.Designation
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.BankName != nil {
		emp.BankName = req.BankName
	}
	if req.BankAccount != nil {
		emp.BankAccount = req.BankAccount
	}
	if req.IFSCCode != nil {
		emp.IFSCCode = req.IFSCCode
	}
	if req.BasicSalary != nil {
		emp.BasicSalary = *req.BasicSalary
	}
	if req.HRA != nil {
		emp.HRA = *req.HRA
	}
	if req.DA != nil {
		emp.DA = *req.DA
	}
	if req.OtherAllowances != nil {
		emp.OtherAllowances = *req.OtherAllowances
	}
	if req.PFDeduction != nil {
		emp.PFDeduction = *req.PFDeduction
	}
	if req.ESIDeduction != nil {
		emp.ESIDeduction = *req.ESIDeduction
	}
	if req.OtherDeductions != nil {
		emp.OtherDeductions = *req.OtherDeductions
	}
	if req.Active != nil {
		emp.Active = *req.Active
	}
	emp.UpdatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Save(emp).Error; err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, id snowflake.ID) (*payrolldomain.Employee, error) {
	var emp payrolldomain.Employee
	err := s.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payrolldomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Service) ListEmployees(ctx context.Context, includeInactive bool) ([]payrolldomain.Employee, error) {
	q := s.db.WithContext(ctx).Model(&payrolldomain.Employee{})
	if !includeInactive {
		q = q.Where("active = ?", true)
	}

	var employees []payrolldomain.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *Service) ProcessPayroll(ctx context.Context, req payrolldomain.ProcessRequest) (int, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 {
		return 0, payrolldomain.ErrInvalidPeriod
	}
	if req.TotalWorkingDays <= 0 {
		req.TotalWorkingDays = 30
	}

	processed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employees []payrolldomain.Employee
		if err := tx.Where("active = ?", true).Order("name ASC").Find(&employees).Error; err != nil {
			return err
		}

		for i := range employees {
			emp := &employees[i]

			var existing int64
			err := tx.Model(&payrolldomain.SalarySlip{}).
				Where("employee_id = ? AND salary_month = ? AND salary_year = ?", emp.ID, req.Month, req.Year).
				Count(&existing).Error
			if err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			att, ok := req.Attendance[emp.ID]
			if !ok {
				att = payrolldomain.Attendance{DaysWorked: req.TotalWorkingDays}
			}
			if att.DaysWorked < 0 || att.DaysWorked > req.TotalWorkingDays {
				return payrolldomain.ErrInvalidDays
			}

			slip := payrolldomain.SalarySlip{
				ID:               s.genID.Generate(),
				EmployeeID:       emp.ID,
				SalaryMonth:      req.Month,
				SalaryYear:       req.Year,
				TotalWorkingDays: req.TotalWorkingDays,
				DaysWorked:       att.DaysWorked,
				DaysAbsent:       req.TotalWorkingDays - att.DaysWorked,
				Bonus:            att.Bonus,
				LoanDeduction:    att.LoanDeduction,
			}
			slip.Calculate(emp)

			if err := tx.Create(&slip).Error; err != nil {
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("payroll processed",
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
		zap.Int("slips", processed))
	return processed, nil
}

func (s *Service) SlipsFor(ctx context.Context, month, year int) ([]payrolldomain.SalarySlip, error) {
	var slips []payrolldomain.SalarySlip
	err := s.db.WithContext(ctx).
		Where("salary_month = ? AND salary_year = ?", month, year).
		Order("id ASC").
		Find(&slips).Error
	if err != nil {
		return nil, err
	}
	return slips, nil
}

func (s *Service) GetSlip(ctx context.Context, id snowflake.ID) (*payrolldomain.SalarySlip, error) {
	var slip payrolldomain.SalarySlip
	err := s.db.WithContext(ctx).First(&slip, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payrolldomain.ErrSlipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func (s *Service) PaySalary(ctx context.Context, id snowflake.ID, mode acctdomain.PaymentMode, reference string) (*payrolldomain.SalarySlip, error) {
	if mode == "" {
		mode = acctdomain.ModeBank
	}

	var slip payrolldomain.SalarySlip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&slip, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrolldomain.ErrSlipNotFound
			}
			return err
		}
		if slip.Paid {
			s.log.Warn("salary already paid", zap.String("slip_id", slip.ID.String()))
			return payrolldomain.ErrAlreadyPaid
		}

		var emp payrolldomain.Employee
		if err := tx.First(&emp, "id = ?", slip.EmployeeID).Error; err != nil {
			return err
		}

		now := s.clock.Now()
		if err := s.composer.PostSalaryPayment(ctx, tx, acctdomain.SalaryEvent{
			Date:         now,
			SlipID:       slip.ID,
			EmployeeName: emp.Name,
			Month:        fmt.Sprintf("%d/%d", slip.SalaryMonth, slip.SalaryYear),
			NetSalary:    slip.NetSalary,
			Mode:         mode,
		}); err != nil {
			return err
		}

		slip.Paid = true
		slip.PaymentDate = &now
		modeStr := string(mode)
		slip.PaymentMode = &modeStr
		if reference != "" {
			slip.PaymentReference = &reference
		}
		return tx.Save(&slip).Error
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSalaryPaid()
	s.log.Info("salary paid",
		zap.String("employee_id", slip.EmployeeID.String()),
		zap.String("net_salary", slip.NetSalary.String()))
	return &slip, nil
}

func (s *Service) MonthSummary(ctx context.Context, month, year int) (*payrolldomain.MonthSummary, error) {
	slips, err := s.SlipsFor(ctx, month, year)
	if err != nil {
		return nil, err
	}

	summary := &payrolldomain.MonthSummary{TotalSalary: decimal.Zero}
	for _, slip := range slips {
		summary.Processed++
		if slip.Paid {
			summary.Paid++
		}
		summary.TotalSalary = summary.TotalSalary.Add(slip.NetSalary)
	}
	return summary, nil
}
