package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
	"github.com/rentledger/rentledger/internal/dto"
	"github.com/rentledger/rentledger/internal/middleware"
)

// accrualService provides accrual lifecycle operations: manual entry,
// schedule generation, sparse edits (single and bulk) and cascading deletes.
type accrualService struct {
	accrualRepo  portsrepo.AccrualRepositoryFacade
	contractRepo portsrepo.ContractRepositoryFacade
	dueSoonDays  int
}

// NewAccrualService creates a new AccrualService.
func NewAccrualService(accrualRepo portsrepo.AccrualRepositoryFacade, contractRepo portsrepo.ContractRepositoryFacade, dueSoonDays int) portssvc.AccrualSvcFacade {
	return &accrualService{
		accrualRepo:  accrualRepo,
		contractRepo: contractRepo,
		dueSoonDays:  dueSoonDays,
	}
}

var _ portssvc.AccrualSvcFacade = (*accrualService)(nil)

// validateAmounts enforces the amount invariants: base and utilities are
// non-negative, adjustments may be negative but the final amount may not be.
func validateAmounts(base, adjustments, utilities decimal.Decimal) error {
	if base.IsNegative() {
		return fmt.Errorf("%w: base amount must not be negative", apperrors.ErrValidation)
	}
	if utilities.IsNegative() {
		return fmt.Errorf("%w: utilities amount must not be negative", apperrors.ErrValidation)
	}
	if base.Add(adjustments).Add(utilities).IsNegative() {
		return fmt.Errorf("%w: final amount must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// CreateAccrual persists a manually entered accrual on an existing contract.
func (s *accrualService) CreateAccrual(ctx context.Context, req dto.CreateAccrualRequest, creatorUserID string) (*domain.Accrual, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, req.ContractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", req.ContractID, err)
	}
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}

	adjustments := decimal.Zero
	if req.Adjustments != nil {
		adjustments = *req.Adjustments
	}
	utilities := decimal.Zero
	if req.UtilitiesAmount != nil {
		utilities = *req.UtilitiesAmount
	}
	if err := validateAmounts(req.BaseAmount, adjustments, utilities); err != nil {
		return nil, err
	}

	utilityType := domain.UtilityNone
	if req.UtilityType != "" {
		utilityType = domain.UtilityType(req.UtilityType)
	}

	now := time.Now().UTC()
	accrual := domain.Accrual{
		AccrualID:       uuid.NewString(),
		ContractID:      contract.ContractID,
		PeriodStart:     req.PeriodStart,
		PeriodEnd:       req.PeriodEnd,
		DueDate:         req.DueDate,
		BaseAmount:      req.BaseAmount,
		Adjustments:     adjustments,
		UtilitiesAmount: utilities,
		UtilityType:     utilityType,
		CurrencyCode:    contract.CurrencyCode,
		Comment:         req.Comment,
		PaidAmount:      decimal.Zero,
		AuditFields:     newAuditFields(creatorUserID, now),
	}
	accrual.Recalculate(now, s.dueSoonDays)

	if err := s.accrualRepo.SaveAccruals(ctx, []domain.Accrual{accrual}); err != nil {
		logger.Error("Failed to save accrual", slog.String("error", err.Error()), slog.String("contract_id", contract.ContractID))
		return nil, fmt.Errorf("failed to save accrual: %w", err)
	}

	logger.Info("Accrual created", slog.String("accrual_id", accrual.AccrualID), slog.String("contract_id", contract.ContractID))
	return &accrual, nil
}

// GetAccrualByID retrieves a specific accrual.
func (s *accrualService) GetAccrualByID(ctx context.Context, accrualID string) (*domain.Accrual, error) {
	accrual, err := s.accrualRepo.FindAccrualByID(ctx, accrualID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accrual %s: %w", accrualID, err)
	}
	return accrual, nil
}

// ListAccrualsByContract retrieves all accruals of a contract in due date order.
func (s *accrualService) ListAccrualsByContract(ctx context.Context, contractID string) ([]domain.Accrual, error) {
	accruals, err := s.accrualRepo.ListAccrualsByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accruals for contract %s: %w", contractID, err)
	}
	return accruals, nil
}

// applySparseEdit applies the fields present in the request to the accrual and
// reports whether anything changed. Derived fields are not recomputed here.
func applySparseEdit(accrual *domain.Accrual, fields dto.UpdateAccrualRequest) bool {
	changed := false
	if fields.DueDate != nil {
		accrual.DueDate = *fields.DueDate
		changed = true
	}
	if fields.BaseAmount != nil {
		accrual.BaseAmount = *fields.BaseAmount
		changed = true
	}
	if fields.Adjustments != nil {
		accrual.Adjustments = *fields.Adjustments
		changed = true
	}
	if fields.UtilitiesAmount != nil {
		accrual.UtilitiesAmount = *fields.UtilitiesAmount
		changed = true
	}
	if fields.UtilityType != nil {
		accrual.UtilityType = domain.UtilityType(*fields.UtilityType)
		changed = true
	}
	if fields.Comment != nil {
		accrual.Comment = *fields.Comment
		changed = true
	}
	return changed
}

// editAccrual applies a sparse edit and re-derives the accruals fields,
// rejecting edits that would push the final amount below what has already
// been paid.
func (s *accrualService) editAccrual(accrual *domain.Accrual, fields dto.UpdateAccrualRequest, userID string, now time.Time) (bool, error) {
	changed := applySparseEdit(accrual, fields)
	if !changed {
		return false, nil
	}
	if err := validateAmounts(accrual.BaseAmount, accrual.Adjustments, accrual.UtilitiesAmount); err != nil {
		return false, err
	}
	accrual.Recalculate(now, s.dueSoonDays)
	if accrual.FinalAmount.LessThan(accrual.PaidAmount) {
		// Shrinking an accrual below its recorded payments would manufacture
		// credit out of thin air; the payments must be cancelled first.
		return false, fmt.Errorf("%w: accrual %s has %s already paid, new final amount %s is below that",
			apperrors.ErrValidation, accrual.AccrualID, accrual.PaidAmount.String(), accrual.FinalAmount.String())
	}
	accrual.LastUpdatedAt = now
	accrual.LastUpdatedBy = userID
	return true, nil
}

// UpdateAccrual applies a sparse edit to one accrual.
func (s *accrualService) UpdateAccrual(ctx context.Context, accrualID string, req dto.UpdateAccrualRequest, userID string) (*domain.Accrual, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accrual, err := s.accrualRepo.FindAccrualByID(ctx, accrualID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accrual %s: %w", accrualID, err)
	}

	now := time.Now().UTC()
	changed, err := s.editAccrual(accrual, req, userID, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return accrual, nil
	}

	if err := s.accrualRepo.UpdateAccruals(ctx, []domain.Accrual{*accrual}); err != nil {
		logger.Error("Failed to update accrual", slog.String("error", err.Error()), slog.String("accrual_id", accrualID))
		return nil, fmt.Errorf("failed to update accrual: %w", err)
	}
	accrual.Version++

	logger.Info("Accrual updated", slog.String("accrual_id", accrualID))
	return accrual, nil
}

// DeleteAccrual removes one accrual, cascading its allocations.
func (s *accrualService) DeleteAccrual(ctx context.Context, accrualID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accrualRepo.FindAccrualByID(ctx, accrualID); err != nil {
		return fmt.Errorf("failed to find accrual %s: %w", accrualID, err)
	}
	if _, err := s.accrualRepo.DeleteAccrualsCascade(ctx, []string{accrualID}); err != nil {
		logger.Error("Failed to delete accrual", slog.String("error", err.Error()), slog.String("accrual_id", accrualID))
		return fmt.Errorf("failed to delete accrual: %w", err)
	}

	logger.Info("Accrual deleted", slog.String("accrual_id", accrualID), slog.String("deleted_by", userID))
	return nil
}

// BulkUpdateAccruals applies one sparse edit to every targeted accrual as one
// atomic unit. The batch is validated up front; a single invalid target
// rejects everything.
func (s *accrualService) BulkUpdateAccruals(ctx context.Context, req dto.BulkUpdateAccrualsRequest, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ids := uniqueStrings(req.AccrualIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no accruals targeted", apperrors.ErrValidation)
	}

	accrualsMap, err := s.accrualRepo.FindAccrualsByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to find accruals: %w", err)
	}

	now := time.Now().UTC()
	updates := make([]domain.Accrual, 0, len(ids))
	for _, id := range ids {
		accrual, found := accrualsMap[id]
		if !found {
			return 0, fmt.Errorf("%w: accrual %s", apperrors.ErrNotFound, id)
		}
		changed, err := s.editAccrual(&accrual, req.Fields, userID, now)
		if err != nil {
			return 0, err
		}
		if changed {
			updates = append(updates, accrual)
		}
	}

	if len(updates) == 0 {
		return 0, nil
	}
	if err := s.accrualRepo.UpdateAccruals(ctx, updates); err != nil {
		logger.Error("Failed to bulk update accruals", slog.String("error", err.Error()), slog.Int("targets", len(updates)))
		return 0, fmt.Errorf("failed to bulk update accruals: %w", err)
	}

	logger.Info("Bulk accrual update completed", slog.Int("updated", len(updates)))
	return len(updates), nil
}

// BulkDeleteAccruals removes the targeted accruals and their allocations as
// one atomic unit. Owning payments are not deleted; their unallocated balance
// grows by the removed allocations.
func (s *accrualService) BulkDeleteAccruals(ctx context.Context, req dto.BulkDeleteAccrualsRequest, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ids := uniqueStrings(req.AccrualIDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no accruals targeted", apperrors.ErrValidation)
	}

	accrualsMap, err := s.accrualRepo.FindAccrualsByIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to find accruals: %w", err)
	}
	for _, id := range ids {
		if _, found := accrualsMap[id]; !found {
			return 0, fmt.Errorf("%w: accrual %s", apperrors.ErrNotFound, id)
		}
	}

	deleted, err := s.accrualRepo.DeleteAccrualsCascade(ctx, ids)
	if err != nil {
		logger.Error("Failed to bulk delete accruals", slog.String("error", err.Error()), slog.Int("targets", len(ids)))
		return 0, fmt.Errorf("failed to bulk delete accruals: %w", err)
	}

	logger.Info("Bulk accrual delete completed", slog.Int64("deleted", deleted), slog.String("deleted_by", userID))
	return int(deleted), nil
}

// GenerateAccruals expands the contract's schedule into accruals. Periods that
// already have an accrual are skipped, so regeneration is idempotent.
func (s *accrualService) GenerateAccruals(ctx context.Context, contractID string, userID string) ([]domain.Accrual, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	if contract.Status == domain.ContractCancelled {
		return nil, fmt.Errorf("%w: contract %s is cancelled", apperrors.ErrValidation, contractID)
	}

	existing, err := s.accrualRepo.ListAccrualsByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accruals for contract %s: %w", contractID, err)
	}
	existingPeriods := make(map[string]struct{}, len(existing))
	for _, accrual := range existing {
		existingPeriods[accrual.PeriodStart.UTC().Format("2006-01-02")] = struct{}{}
	}

	now := time.Now().UTC()
	var created []domain.Accrual
	for _, period := range domain.ExpandSchedule(*contract) {
		if _, exists := existingPeriods[period.PeriodStart.Format("2006-01-02")]; exists {
			continue
		}
		accrual := domain.Accrual{
			AccrualID:       uuid.NewString(),
			ContractID:      contract.ContractID,
			PeriodStart:     period.PeriodStart,
			PeriodEnd:       period.PeriodEnd,
			DueDate:         period.DueDate,
			BaseAmount:      contract.RentAmount,
			Adjustments:     decimal.Zero,
			UtilitiesAmount: decimal.Zero,
			UtilityType:     domain.UtilityNone,
			CurrencyCode:    contract.CurrencyCode,
			PaidAmount:      decimal.Zero,
			AuditFields:     newAuditFields(userID, now),
		}
		accrual.Recalculate(now, s.dueSoonDays)
		created = append(created, accrual)
	}

	if len(created) == 0 {
		logger.Debug("No new periods to generate", slog.String("contract_id", contractID))
		return []domain.Accrual{}, nil
	}

	if err := s.accrualRepo.SaveAccruals(ctx, created); err != nil {
		logger.Error("Failed to save generated accruals", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save generated accruals: %w", err)
	}

	logger.Info("Accruals generated", slog.String("contract_id", contractID), slog.Int("count", len(created)))
	return created, nil
}
