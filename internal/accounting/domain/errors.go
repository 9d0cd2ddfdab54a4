package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidPaymentMode = errors.New("invalid_payment_mode")
	ErrCreditNotAllowed   = errors.New("credit_mode_not_allowed")
	ErrCategoryNotFound   = errors.New("expense_category_not_found")
	ErrInvalidName        = errors.New("invalid_name")
)
