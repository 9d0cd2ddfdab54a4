package domain

import "errors"

var (
	ErrNotFound    = errors.New("financial_year_not_found")
	ErrYearClosed  = errors.New("financial_year_closed")
	ErrUnknownKind = errors.New("unknown_document_kind")
)
