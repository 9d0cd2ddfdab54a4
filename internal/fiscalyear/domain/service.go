package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Service interface {
	// GetOrCreateCurrent resolves today's period, creating and
	// activating it on first sight. Idempotent within a period.
	GetOrCreateCurrent(ctx context.Context) (*FinancialYear, error)

	// ActiveYear returns the active year, creating the current one
	// when none is active yet.
	ActiveYear(ctx context.Context) (*FinancialYear, error)

	List(ctx context.Context) ([]FinancialYear, error)

	// Close marks a year closed; closed years no longer issue numbers.
	Close(ctx context.Context, code string) error

	// NextDocumentNumber increments the year's counter for kind inside
	// the caller's transaction and formats PREFIX/CODE/NNNN. Callers
	// must commit the surrounding transaction for the number to be
	// consumed; a rollback releases it.
	NextDocumentNumber(ctx context.Context, tx *gorm.DB, yearID snowflake.ID, kind DocumentKind, prefix string) (string, error)
}
