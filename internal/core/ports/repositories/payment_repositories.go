package repositories

import (
	"context"
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// PaymentReader defines read operations for payment and allocation data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its derived allocated amount.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByAccount retrieves payments received into an account,
	// newest payment date first.
	ListPaymentsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Payment, error)

	// FindLatestPaymentForAccrual retrieves the most recently created
	// non-cancelled payment that has an allocation against the given accrual.
	FindLatestPaymentForAccrual(ctx context.Context, accrualID string) (*domain.Payment, error)

	// FindAllocationsByPaymentID retrieves all allocations of a payment.
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error)
}

// PaymentWriter defines the atomic mutation units of the allocator.
type PaymentWriter interface {
	// SavePaymentsWithAllocations persists payments, their allocations and the
	// resulting accrual balance updates as one transaction. Accrual updates
	// are version-guarded; any stale row aborts everything with ErrConflict.
	SavePaymentsWithAllocations(ctx context.Context, payments []domain.Payment, allocations []domain.Allocation, accrualUpdates []domain.Accrual) error

	// CancelPaymentWithReversals marks the payment cancelled, deletes all of
	// its allocations and applies the reversed accrual balances, as one
	// transaction. A payment that is already cancelled fails with
	// ErrAlreadyCancelled and nothing is changed.
	CancelPaymentWithReversals(ctx context.Context, paymentID string, cancelledAt time.Time, accrualUpdates []domain.Accrual, userID string) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
