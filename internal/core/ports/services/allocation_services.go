package services

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/rentledger/rentledger/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment with its allocations.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.Allocation, error)

	// ListPaymentsByAccount retrieves payments received into an account.
	ListPaymentsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Payment, error)
}

// AllocatorSvc defines the payment allocation operations.
type AllocatorSvc interface {
	// AcceptPayment records a payment against one target accrual and
	// distributes it FIFO over the contract's outstanding accruals when the
	// amount exceeds the target's balance.
	AcceptPayment(ctx context.Context, accrualID string, req dto.AcceptPaymentRequest, userID string) (*dto.AcceptPaymentResponse, error)

	// BulkAcceptPayment settles each targeted accrual in full with one
	// dedicated payment, in due date order, all-or-nothing. The whole batch
	// is rejected if any target is already settled.
	BulkAcceptPayment(ctx context.Context, req dto.BulkAcceptPaymentRequest, userID string) (*dto.BulkAcceptPaymentResponse, error)

	// CancelPayment reverses every allocation of the payment and marks it
	// cancelled. Cancellation is terminal; a second call fails with
	// ErrAlreadyCancelled. Returns the number of accruals affected.
	CancelPayment(ctx context.Context, paymentID string, userID string) (int, error)

	// CancelLatestPaymentForAccrual cancels the most recent non-cancelled
	// payment allocated against the given accrual.
	CancelLatestPaymentForAccrual(ctx context.Context, accrualID string, userID string) (*dto.CancelPaymentResponse, error)
}

// AllocationSvcFacade combines payment reading and allocation operations.
type AllocationSvcFacade interface {
	PaymentReaderSvc
	AllocatorSvc
}
