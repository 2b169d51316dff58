package services

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/dto"
)

// AccrualReaderSvc defines read operations for accrual data
type AccrualReaderSvc interface {
	// GetAccrualByID retrieves a specific accrual by its ID.
	GetAccrualByID(ctx context.Context, accrualID string) (*domain.Accrual, error)

	// ListAccrualsByContract retrieves all accruals of a contract ordered by due date.
	ListAccrualsByContract(ctx context.Context, contractID string) ([]domain.Accrual, error)
}

// AccrualWriterSvc defines write operations for accrual data
type AccrualWriterSvc interface {
	// CreateAccrual persists a manually entered accrual.
	CreateAccrual(ctx context.Context, req dto.CreateAccrualRequest, creatorUserID string) (*domain.Accrual, error)

	// UpdateAccrual applies a sparse edit to one accrual, recomputing its
	// derived fields. An edit that would push the final amount below the
	// already-recorded paid amount is rejected.
	UpdateAccrual(ctx context.Context, accrualID string, req dto.UpdateAccrualRequest, userID string) (*domain.Accrual, error)

	// DeleteAccrual removes one accrual, cascading its allocations.
	DeleteAccrual(ctx context.Context, accrualID string, userID string) error

	// BulkUpdateAccruals applies one sparse edit to many accruals as one
	// atomic unit; any invalid target rejects the whole batch.
	BulkUpdateAccruals(ctx context.Context, req dto.BulkUpdateAccrualsRequest, userID string) (int, error)

	// BulkDeleteAccruals removes many accruals and their allocations as one
	// atomic unit. Returns the number of accruals deleted.
	BulkDeleteAccruals(ctx context.Context, req dto.BulkDeleteAccrualsRequest, userID string) (int, error)

	// GenerateAccruals expands a contract's schedule into accruals, skipping
	// periods that already exist. Returns the newly created accruals.
	GenerateAccruals(ctx context.Context, contractID string, userID string) ([]domain.Accrual, error)
}

// AccrualSvcFacade combines all accrual-related service interfaces.
type AccrualSvcFacade interface {
	AccrualReaderSvc
	AccrualWriterSvc
}
