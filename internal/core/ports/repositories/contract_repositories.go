package repositories

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// ContractReader defines read operations for contract data
type ContractReader interface {
	// FindContractByID retrieves a specific contract by its unique identifier.
	FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error)

	// ListContracts retrieves a paginated list of contracts ordered by start date descending.
	ListContracts(ctx context.Context, limit int, offset int) ([]domain.Contract, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	// SaveContract persists a new contract.
	SaveContract(ctx context.Context, contract domain.Contract) error

	// UpdateContract updates an existing contract's details.
	UpdateContract(ctx context.Context, contract domain.Contract) error

	// DeleteContractCascade deletes a contract, its accruals and their
	// allocations in one transaction, in that cascade order reversed
	// (allocations, then accruals, then the contract).
	DeleteContractCascade(ctx context.Context, contractID string) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces.
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
