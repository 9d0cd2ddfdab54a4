package domain

import "errors"

var (
	ErrInvalidName   = errors.New("employee_name_required")
	ErrNotFound      = errors.New("employee_not_found")
	ErrSlipNotFound  = errors.New("salary_slip_not_found")
	ErrInvalidPeriod = errors.New("invalid_salary_period")
	ErrInvalidDays   = errors.New("invalid_working_days")
	ErrAlreadyPaid   = errors.New("salary_already_paid")
)
