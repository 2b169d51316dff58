package domain

import "github.com/shopspring/decimal"

// Allocation is the join record connecting money to obligation: a slice of one
// payment applied to one accrual. Allocations are created exclusively by the
// allocator and deleted only by payment cancellation or accrual deletion.
type Allocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	PaymentID    string          `json:"paymentID"`
	AccrualID    string          `json:"accrualID"`
	Amount       decimal.Decimal `json:"amount"` // > 0
	AuditFields
}
