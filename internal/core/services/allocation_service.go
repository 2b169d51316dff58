package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
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

// allocationService implements the payment allocator: FIFO distribution of
// incoming money over outstanding accruals, bulk acceptance and cancellation.
type allocationService struct {
	accrualRepo portsrepo.AccrualRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	dueSoonDays int
}

// NewAllocationService creates a new AllocationService.
func NewAllocationService(paymentRepo portsrepo.PaymentRepositoryFacade, accrualRepo portsrepo.AccrualRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, dueSoonDays int) portssvc.AllocationSvcFacade {
	return &allocationService{
		accrualRepo: accrualRepo,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		dueSoonDays: dueSoonDays,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// resolveAccount fetches the payment target account and verifies it can
// receive money in the given currency.
func (s *allocationService) resolveAccount(ctx context.Context, accountID string, accrualCurrency string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	if account.CurrencyCode != accrualCurrency {
		return nil, fmt.Errorf("%w: account currency %s does not match accrual currency %s", apperrors.ErrCurrencyMismatch, account.CurrencyCode, accrualCurrency)
	}
	return account, nil
}

// AcceptPayment records one payment against a target accrual. When the amount
// exceeds the target's balance, the excess overflows FIFO (due date ascending,
// id ascending) onto the contract's other outstanding accruals. Whatever the
// scope cannot absorb is returned as remainder and stays on the payment as
// unallocated balance.
func (s *allocationService) AcceptPayment(ctx context.Context, accrualID string, req dto.AcceptPaymentRequest, userID string) (*dto.AcceptPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if req.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}

	target, err := s.accrualRepo.FindAccrualByID(ctx, accrualID)
	if err != nil {
		return nil, fmt.Errorf("failed to find accrual %s: %w", accrualID, err)
	}
	if target.Balance().LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: accrual %s", apperrors.ErrAlreadySettled, accrualID)
	}

	account, err := s.resolveAccount(ctx, req.AccountID, target.CurrencyCode)
	if err != nil {
		return nil, err
	}

	// Build the allocation queue: the target first, then — only when the
	// payment exceeds the target's balance — the contract's other outstanding
	// accruals in FIFO order.
	queue := []domain.Accrual{*target}
	if req.Amount.GreaterThan(target.Balance()) {
		overflow, err := s.accrualRepo.ListOutstandingByContract(ctx, target.ContractID, []string{target.AccrualID})
		if err != nil {
			return nil, fmt.Errorf("failed to load overflow accruals for contract %s: %w", target.ContractID, err)
		}
		queue = append(queue, overflow...)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		AccountID:    account.AccountID,
		PaymentDate:  req.PaymentDate,
		Amount:       req.Amount,
		CurrencyCode: account.CurrencyCode,
		Comment:      req.Comment,
		AuditFields:  newAuditFields(userID, now),
	}

	allocations, updates, remainder := s.distribute(payment, queue, now, userID)

	if err := s.paymentRepo.SavePaymentsWithAllocations(ctx, []domain.Payment{payment}, allocations, updates); err != nil {
		logger.Error("Failed to save payment with allocations", slog.String("error", err.Error()), slog.String("accrual_id", accrualID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	if remainder.GreaterThan(decimal.Zero) {
		logger.Warn("Payment exceeds outstanding balances in scope",
			slog.String("payment_id", payment.PaymentID),
			slog.String("remainder", remainder.String()))
	}
	logger.Info("Payment accepted",
		slog.String("payment_id", payment.PaymentID),
		slog.String("accrual_id", accrualID),
		slog.Int("allocations", len(allocations)))

	return &dto.AcceptPaymentResponse{
		PaymentID:        payment.PaymentID,
		AllocationsCount: len(allocations),
		Remainder:        remainder,
	}, nil
}

// distribute walks the queue oldest-due first, taking min(remaining, balance)
// from each accrual until the payment is consumed or the queue is exhausted.
// It returns the allocations created, the updated accruals and the remainder.
func (s *allocationService) distribute(payment domain.Payment, queue []domain.Accrual, now time.Time, userID string) ([]domain.Allocation, []domain.Accrual, decimal.Decimal) {
	remaining := payment.Amount
	var allocations []domain.Allocation
	var updates []domain.Accrual

	for i := range queue {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		accrual := queue[i]
		take := decimal.Min(remaining, accrual.Balance())
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocations = append(allocations, domain.Allocation{
			AllocationID: uuid.NewString(),
			PaymentID:    payment.PaymentID,
			AccrualID:    accrual.AccrualID,
			Amount:       take,
			AuditFields:  newAuditFields(userID, now),
		})

		accrual.PaidAmount = accrual.PaidAmount.Add(take)
		accrual.Recalculate(now, s.dueSoonDays)
		accrual.LastUpdatedAt = now
		accrual.LastUpdatedBy = userID
		updates = append(updates, accrual)

		remaining = remaining.Sub(take)
	}
	return allocations, updates, remaining
}

// BulkAcceptPayment settles each targeted accrual in full with one dedicated
// payment, applied in due date order. The whole batch is validated before the
// first insert and committed as one unit: any already-settled target or
// currency mismatch rejects everything.
func (s *allocationService) BulkAcceptPayment(ctx context.Context, req dto.BulkAcceptPaymentRequest, userID string) (*dto.BulkAcceptPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PaymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}
	ids := uniqueStrings(req.AccrualIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no accruals targeted", apperrors.ErrValidation)
	}

	accrualsMap, err := s.accrualRepo.FindAccrualsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find accruals: %w", err)
	}

	targets := make([]domain.Accrual, 0, len(ids))
	for _, id := range ids {
		accrual, found := accrualsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: accrual %s", apperrors.ErrNotFound, id)
		}
		if accrual.Balance().LessThanOrEqual(decimal.Zero) {
			// One settled target rejects the whole batch: no payment must be
			// created for any of them.
			return nil, fmt.Errorf("%w: accrual %s", apperrors.ErrAlreadySettled, id)
		}
		targets = append(targets, accrual)
	}

	account, err := s.resolveAccount(ctx, req.AccountID, targets[0].CurrencyCode)
	if err != nil {
		return nil, err
	}
	for _, accrual := range targets {
		if accrual.CurrencyCode != account.CurrencyCode {
			return nil, fmt.Errorf("%w: accrual %s currency %s does not match account currency %s", apperrors.ErrCurrencyMismatch, accrual.AccrualID, accrual.CurrencyCode, account.CurrencyCode)
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].DueDate.Equal(targets[j].DueDate) {
			return targets[i].AccrualID < targets[j].AccrualID
		}
		return targets[i].DueDate.Before(targets[j].DueDate)
	})

	now := time.Now().UTC()
	payments := make([]domain.Payment, 0, len(targets))
	allocations := make([]domain.Allocation, 0, len(targets))
	updates := make([]domain.Accrual, 0, len(targets))

	// Each target gets its own payment sized to its current balance: full
	// settlement, no partial amounts, no carry-over between targets.
	for _, accrual := range targets {
		balance := accrual.Balance()
		payment := domain.Payment{
			PaymentID:    uuid.NewString(),
			AccountID:    account.AccountID,
			PaymentDate:  req.PaymentDate,
			Amount:       balance,
			CurrencyCode: account.CurrencyCode,
			Comment:      req.Comment,
			AuditFields:  newAuditFields(userID, now),
		}
		payments = append(payments, payment)

		allocations = append(allocations, domain.Allocation{
			AllocationID: uuid.NewString(),
			PaymentID:    payment.PaymentID,
			AccrualID:    accrual.AccrualID,
			Amount:       balance,
			AuditFields:  newAuditFields(userID, now),
		})

		accrual.PaidAmount = accrual.PaidAmount.Add(balance)
		accrual.Recalculate(now, s.dueSoonDays)
		accrual.LastUpdatedAt = now
		accrual.LastUpdatedBy = userID
		updates = append(updates, accrual)
	}

	if err := s.paymentRepo.SavePaymentsWithAllocations(ctx, payments, allocations, updates); err != nil {
		logger.Error("Failed to save bulk accept batch", slog.String("error", err.Error()), slog.Int("targets", len(targets)))
		return nil, fmt.Errorf("failed to save bulk accept: %w", err)
	}

	logger.Info("Bulk accept completed",
		slog.Int("payments_created", len(payments)),
		slog.Int("total_allocations", len(allocations)))

	return &dto.BulkAcceptPaymentResponse{
		PaymentsCreated:  len(payments),
		TotalAllocations: len(allocations),
	}, nil
}

// CancelPayment reverses every allocation of the payment, recomputes the
// affected accruals and marks the payment cancelled, all in one atomic unit.
// Cancellation is terminal.
func (s *allocationService) CancelPayment(ctx context.Context, paymentID string, userID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	if payment.IsCancelled() {
		return 0, fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyCancelled, paymentID)
	}

	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to load allocations for payment %s: %w", paymentID, err)
	}

	now := time.Now().UTC()
	var updates []domain.Accrual
	if len(allocations) > 0 {
		accrualIDs := make([]string, 0, len(allocations))
		reversed := make(map[string]decimal.Decimal, len(allocations))
		for _, alloc := range allocations {
			if _, seen := reversed[alloc.AccrualID]; !seen {
				accrualIDs = append(accrualIDs, alloc.AccrualID)
			}
			reversed[alloc.AccrualID] = reversed[alloc.AccrualID].Add(alloc.Amount)
		}

		accrualsMap, err := s.accrualRepo.FindAccrualsByIDs(ctx, accrualIDs)
		if err != nil {
			return 0, fmt.Errorf("failed to find accruals for reversal: %w", err)
		}

		updates = make([]domain.Accrual, 0, len(accrualIDs))
		for _, id := range accrualIDs {
			accrual := accrualsMap[id]
			accrual.PaidAmount = accrual.PaidAmount.Sub(reversed[id])
			if accrual.PaidAmount.IsNegative() {
				logger.Error("Allocation reversal would drive paid amount negative", slog.String("accrual_id", id))
				return 0, fmt.Errorf("%w: inconsistent paid amount on accrual %s", apperrors.ErrInternal, id)
			}
			accrual.Recalculate(now, s.dueSoonDays)
			accrual.LastUpdatedAt = now
			accrual.LastUpdatedBy = userID
			updates = append(updates, accrual)
		}
	}

	if err := s.paymentRepo.CancelPaymentWithReversals(ctx, paymentID, now, updates, userID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyCancelled) {
			return 0, fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyCancelled, paymentID)
		}
		logger.Error("Failed to cancel payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return 0, fmt.Errorf("failed to cancel payment: %w", err)
	}

	logger.Info("Payment cancelled", slog.String("payment_id", paymentID), slog.Int("accruals_affected", len(updates)))
	return len(updates), nil
}

// CancelLatestPaymentForAccrual cancels the most recent non-cancelled payment
// that was allocated against the given accrual.
func (s *allocationService) CancelLatestPaymentForAccrual(ctx context.Context, accrualID string, userID string) (*dto.CancelPaymentResponse, error) {
	payment, err := s.paymentRepo.FindLatestPaymentForAccrual(ctx, accrualID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment for accrual %s: %w", accrualID, err)
	}

	affected, err := s.CancelPayment(ctx, payment.PaymentID, userID)
	if err != nil {
		return nil, err
	}

	return &dto.CancelPaymentResponse{
		StatusMessage:    fmt.Sprintf("payment %s cancelled", payment.PaymentID),
		AccrualsAffected: affected,
	}, nil
}

// GetPaymentByID retrieves a payment and its allocations.
func (s *allocationService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.Allocation, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocations for payment %s: %w", paymentID, err)
	}
	return payment, allocations, nil
}

// ListPaymentsByAccount retrieves payments received into an account.
func (s *allocationService) ListPaymentsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	payments, err := s.paymentRepo.ListPaymentsByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for account %s: %w", accountID, err)
	}
	return payments, nil
}
