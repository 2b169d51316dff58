package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// accountService manages cash accounts, the reference entities payments target.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new cash account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields:  newAuditFields(creatorUserID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts, active first.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive. Inactive accounts refuse new
// payments; existing payments are untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// propertyService manages properties, the grouping entities for reporting.
type propertyService struct {
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(propertyRepo portsrepo.PropertyRepositoryFacade) portssvc.PropertySvcFacade {
	return &propertyService{propertyRepo: propertyRepo}
}

var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

// CreateProperty persists a new property.
func (s *propertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, creatorUserID string) (*domain.Property, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	property := domain.Property{
		PropertyID:  uuid.NewString(),
		Address:     req.Address,
		IsActive:    true,
		AuditFields: newAuditFields(creatorUserID, now),
	}

	if err := s.propertyRepo.SaveProperty(ctx, property); err != nil {
		logger.Error("Failed to save property", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	logger.Info("Property created", slog.String("property_id", property.PropertyID))
	return &property, nil
}

// ListProperties retrieves properties ordered by address.
func (s *propertyService) ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error) {
	if limit <= 0 {
		limit = 50
	}
	properties, err := s.propertyRepo.ListProperties(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}
