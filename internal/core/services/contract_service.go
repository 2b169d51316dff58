package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// contractService provides lease contract lifecycle operations.
type contractService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewContractService creates a new ContractService.
func NewContractService(contractRepo portsrepo.ContractRepositoryFacade, propertyRepo portsrepo.PropertyRepositoryFacade) portssvc.ContractSvcFacade {
	return &contractService{
		contractRepo: contractRepo,
		propertyRepo: propertyRepo,
	}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

// CreateContract persists a new lease contract.
func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RentAmount.IsNegative() {
		return nil, fmt.Errorf("%w: rent amount must not be negative", apperrors.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
	}
	if req.PropertyID == nil && req.Address == "" {
		return nil, fmt.Errorf("%w: either property or address is required", apperrors.ErrValidation)
	}

	address := req.Address
	if req.PropertyID != nil {
		property, err := s.propertyRepo.FindPropertyByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to find property %s: %w", *req.PropertyID, err)
		}
		if address == "" {
			address = property.Address
		}
	}

	now := time.Now().UTC()
	contract := domain.Contract{
		ContractID:     uuid.NewString(),
		PropertyID:     req.PropertyID,
		Address:        address,
		TenantName:     req.TenantName,
		RentAmount:     req.RentAmount,
		CurrencyCode:   req.CurrencyCode,
		DueDay:         req.DueDay,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DepositEnabled: req.DepositEnabled,
		AdvanceEnabled: req.AdvanceEnabled,
		Status:         domain.ContractDraft,
		AuditFields:    newAuditFields(creatorUserID, now),
	}

	if err := s.contractRepo.SaveContract(ctx, contract); err != nil {
		logger.Error("Failed to save contract", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	logger.Info("Contract created", slog.String("contract_id", contract.ContractID))
	return &contract, nil
}

// GetContractByID retrieves a specific contract.
func (s *contractService) GetContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	return contract, nil
}

// ListContracts retrieves a paginated list of contracts.
func (s *contractService) ListContracts(ctx context.Context, limit int, offset int) ([]domain.Contract, error) {
	if limit <= 0 {
		limit = 20
	}
	contracts, err := s.contractRepo.ListContracts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// UpdateContract applies a sparse edit to a contract.
func (s *contractService) UpdateContract(ctx context.Context, contractID string, req dto.UpdateContractRequest, userID string) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	updated := false
	if req.Address != nil {
		contract.Address = *req.Address
		updated = true
	}
	if req.TenantName != nil {
		contract.TenantName = *req.TenantName
		updated = true
	}
	if req.RentAmount != nil {
		if req.RentAmount.IsNegative() {
			return nil, fmt.Errorf("%w: rent amount must not be negative", apperrors.ErrValidation)
		}
		contract.RentAmount = *req.RentAmount
		updated = true
	}
	if req.DueDay != nil {
		contract.DueDay = *req.DueDay
		updated = true
	}
	if req.EndDate != nil {
		if req.EndDate.Before(contract.StartDate) {
			return nil, fmt.Errorf("%w: end date before start date", apperrors.ErrValidation)
		}
		contract.EndDate = *req.EndDate
		updated = true
	}
	if req.DepositEnabled != nil {
		contract.DepositEnabled = *req.DepositEnabled
		updated = true
	}
	if req.AdvanceEnabled != nil {
		contract.AdvanceEnabled = *req.AdvanceEnabled
		updated = true
	}
	if req.Status != nil {
		contract.Status = domain.ContractStatus(*req.Status)
		updated = true
	}

	if !updated {
		return contract, nil
	}

	now := time.Now().UTC()
	contract.LastUpdatedAt = now
	contract.LastUpdatedBy = userID

	if err := s.contractRepo.UpdateContract(ctx, *contract); err != nil {
		logger.Error("Failed to update contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	logger.Info("Contract updated", slog.String("contract_id", contractID))
	return contract, nil
}

// ProlongContract creates a derived contract whose term starts where the prior
// one ends, and marks the prior contract ended.
func (s *contractService) ProlongContract(ctx context.Context, contractID string, req dto.ProlongContractRequest, userID string) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prior, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	if prior.Status == domain.ContractCancelled {
		return nil, fmt.Errorf("%w: cannot prolong a cancelled contract", apperrors.ErrValidation)
	}
	if !req.EndDate.After(prior.EndDate) {
		return nil, fmt.Errorf("%w: prolongation must end after the prior contract", apperrors.ErrValidation)
	}

	rent := prior.RentAmount
	if req.RentAmount != nil {
		if req.RentAmount.IsNegative() {
			return nil, fmt.Errorf("%w: rent amount must not be negative", apperrors.ErrValidation)
		}
		rent = *req.RentAmount
	}

	now := time.Now().UTC()
	derived := domain.Contract{
		ContractID:       uuid.NewString(),
		PropertyID:       prior.PropertyID,
		Address:          prior.Address,
		TenantName:       prior.TenantName,
		RentAmount:       rent,
		CurrencyCode:     prior.CurrencyCode,
		DueDay:           prior.DueDay,
		StartDate:        prior.EndDate,
		EndDate:          req.EndDate,
		DepositEnabled:   prior.DepositEnabled,
		AdvanceEnabled:   prior.AdvanceEnabled,
		Status:           domain.ContractActive,
		ParentContractID: &prior.ContractID,
		AuditFields:      newAuditFields(userID, now),
	}

	if err := s.contractRepo.SaveContract(ctx, derived); err != nil {
		logger.Error("Failed to save prolongation contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save prolongation: %w", err)
	}

	prior.Status = domain.ContractEnded
	prior.LastUpdatedAt = now
	prior.LastUpdatedBy = userID
	if err := s.contractRepo.UpdateContract(ctx, *prior); err != nil {
		logger.Error("Failed to end prior contract after prolongation", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to end prior contract: %w", err)
	}

	logger.Info("Contract prolonged", slog.String("contract_id", contractID), slog.String("derived_contract_id", derived.ContractID))
	return &derived, nil
}

// DeleteContract destroys a contract, its accruals and their allocations.
// Deletion is explicit and destructive; it never happens automatically.
func (s *contractService) DeleteContract(ctx context.Context, contractID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.contractRepo.FindContractByID(ctx, contractID); err != nil {
		return fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	if err := s.contractRepo.DeleteContractCascade(ctx, contractID); err != nil {
		logger.Error("Failed to delete contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return fmt.Errorf("failed to delete contract: %w", err)
	}

	logger.Info("Contract deleted", slog.String("contract_id", contractID), slog.String("deleted_by", userID))
	return nil
}
