package domain

import "errors"

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidType    = errors.New("invalid_party_type")
	ErrNotFound       = errors.New("party_not_found")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrNonZeroBalance = errors.New("party_balance_not_zero")
	ErrPartyInactive  = errors.New("party_inactive")
)
