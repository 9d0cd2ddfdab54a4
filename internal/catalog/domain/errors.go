package domain

import "errors"

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrNotFound         = errors.New("product_not_found")
	ErrCategoryNotFound = errors.New("category_not_found")
	ErrCategoryInUse    = errors.New("category_in_use")
	ErrDuplicateCode    = errors.New("duplicate_product_code")
)
