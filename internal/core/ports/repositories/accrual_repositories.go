package repositories

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// AccrualReader defines read operations for accrual data
type AccrualReader interface {
	// FindAccrualByID retrieves a specific accrual by its unique identifier.
	FindAccrualByID(ctx context.Context, accrualID string) (*domain.Accrual, error)

	// FindAccrualsByIDs retrieves multiple accruals by their IDs, keyed by accrual ID.
	// Every requested ID must resolve; a missing ID yields ErrNotFound.
	FindAccrualsByIDs(ctx context.Context, accrualIDs []string) (map[string]domain.Accrual, error)

	// ListAccrualsByContract retrieves all accruals of a contract ordered by
	// due_date ascending, accrual_id ascending.
	ListAccrualsByContract(ctx context.Context, contractID string) ([]domain.Accrual, error)

	// ListOutstandingByContract retrieves the accruals of a contract with a
	// positive balance, excluding the given IDs, ordered by due_date ascending
	// with ties broken by accrual_id ascending. This is the overflow queue for
	// single-accrual payment acceptance.
	ListOutstandingByContract(ctx context.Context, contractID string, excludeIDs []string) ([]domain.Accrual, error)
}

// AccrualWriter defines write operations for accrual data
type AccrualWriter interface {
	// SaveAccruals persists new accruals in one transaction.
	SaveAccruals(ctx context.Context, accruals []domain.Accrual) error

	// UpdateAccruals persists changed accruals in one transaction. Each row
	// update is guarded by the accrual's version; a stale version fails the
	// whole transaction with ErrConflict.
	UpdateAccruals(ctx context.Context, accruals []domain.Accrual) error

	// DeleteAccrualsCascade deletes the given accruals and their allocations
	// in one transaction, allocations first. The owning payments survive with
	// a correspondingly larger unallocated balance. Returns the number of
	// accruals deleted.
	DeleteAccrualsCascade(ctx context.Context, accrualIDs []string) (int64, error)
}

// AccrualRepositoryFacade combines all accrual-related repository interfaces.
type AccrualRepositoryFacade interface {
	AccrualReader
	AccrualWriter
}
