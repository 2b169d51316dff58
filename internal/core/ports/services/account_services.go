package services

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/dto"
)

// AccountSvcFacade defines operations on cash accounts.
type AccountSvcFacade interface {
	// CreateAccount persists a new cash account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves accounts, active first.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// DeactivateAccount marks an account inactive; it stops accepting payments.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// PropertySvcFacade defines operations on properties.
type PropertySvcFacade interface {
	// CreateProperty persists a new property.
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, creatorUserID string) (*domain.Property, error)

	// ListProperties retrieves properties ordered by address.
	ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error)
}
