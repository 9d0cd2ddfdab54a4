package domain

import "errors"

var (
	ErrPartyNotFound      = errors.New("party_not_found")
	ErrPartyInactive      = errors.New("party_inactive")
	ErrWrongPartyRole     = errors.New("wrong_party_role")
	ErrNoValidLines       = errors.New("no_valid_lines")
	ErrLineProductMissing = errors.New("line_product_missing")
	ErrNotFound           = errors.New("document_not_found")
)
