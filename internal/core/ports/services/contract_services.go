package services

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/dto"
)

// ContractReaderSvc defines read operations for contract data
type ContractReaderSvc interface {
	// GetContractByID retrieves a specific contract by its ID.
	GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// ListContracts retrieves a paginated list of contracts.
	ListContracts(ctx context.Context, limit int, offset int) ([]domain.Contract, error)
}

// ContractWriterSvc defines write operations for contract data
type ContractWriterSvc interface {
	// CreateContract persists a new lease contract.
	CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, error)

	// UpdateContract applies a sparse edit to a contract.
	UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, userID string) (*domain.Contract, error)

	// ProlongContract creates a derived contract whose term starts where the
	// given contract ends; the prior contract is marked ended.
	ProlongContract(ctx context.Context, contractID string, req dto.ProlongContractRequest, userID string) (*domain.Contract, error)

	// DeleteContract destroys a contract, cascading to its accruals and their
	// allocations in one atomic unit.
	DeleteContract(ctx context.Context, contractID string, userID string) error
}

// ContractSvcFacade combines all contract-related service interfaces.
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}
