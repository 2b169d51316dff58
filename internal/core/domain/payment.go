package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received against one account on one date. Once allocations
// exist a payment is immutable except for cancellation, which reverses all of
// its allocations and is terminal.
type Payment struct {
	PaymentID    string          `json:"paymentID"` // Primary Key (UUID)
	AccountID    string          `json:"accountID"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Amount       decimal.Decimal `json:"amount"` // > 0
	CurrencyCode string          `json:"currencyCode"`
	Comment      string          `json:"comment"`
	CancelledAt  *time.Time      `json:"cancelledAt"`
	// AllocatedAmount is derived by summing the payment's active allocations.
	// Populated on reads; never written directly.
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	AuditFields
}

// IsCancelled reports whether the payment has been cancelled.
func (p Payment) IsCancelled() bool {
	return p.CancelledAt != nil
}

// UnallocatedAmount is the portion of the payment not applied to any accrual.
func (p Payment) UnallocatedAmount() decimal.Decimal {
	return p.Amount.Sub(p.AllocatedAmount)
}
