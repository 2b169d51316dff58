package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row shape of the payments table. AllocatedAmount is not a
// column; it is computed by summing allocations when reading.
type Payment struct {
	PaymentID       string
	AccountID       string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	CurrencyCode    string
	Comment         string
	CancelledAt     *time.Time
	AllocatedAmount decimal.Decimal
	AuditFields
}

// Allocation is the row shape of the allocations table.
type Allocation struct {
	AllocationID string
	PaymentID    string
	AccrualID    string
	Amount       decimal.Decimal
	AuditFields
}
