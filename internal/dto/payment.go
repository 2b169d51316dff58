package dto

import (
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AcceptPaymentRequest defines the payload for accepting a payment against a
// single accrual. Overflow to the contract's other outstanding accruals is
// enabled for this operation.
type AcceptPaymentRequest struct {
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	Comment     string          `json:"comment"`
}

// AcceptPaymentResponse reports the outcome of a single payment acceptance.
// Remainder is the portion of the payment that could not be allocated after
// exhausting all outstanding accruals in scope; it stays on the payment as an
// unallocated balance.
type AcceptPaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	AllocationsCount int             `json:"allocationsCount"`
	Remainder        decimal.Decimal `json:"remainder"`
}

// BulkAcceptPaymentRequest settles every targeted accrual in full with one
// dedicated payment each. No overflow between targets, all-or-nothing.
type BulkAcceptPaymentRequest struct {
	AccrualIDs  []string  `json:"accrualIDs" binding:"required,min=1,dive,uuid"`
	PaymentDate time.Time `json:"paymentDate" binding:"required"`
	AccountID   string    `json:"accountID" binding:"required,uuid"`
	Comment     string    `json:"comment"`
}

// BulkAcceptPaymentResponse reports the aggregate outcome of a bulk accept.
type BulkAcceptPaymentResponse struct {
	PaymentsCreated  int `json:"paymentsCreated"`
	TotalAllocations int `json:"totalAllocations"`
}

// CancelPaymentResponse reports a successful cancellation.
type CancelPaymentResponse struct {
	StatusMessage    string `json:"statusMessage"`
	AccrualsAffected int    `json:"accrualsAffected"`
}

// AllocationResponse defines the data returned for one allocation.
type AllocationResponse struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	AccrualID    string          `json:"accrualID"`
	Amount       decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	AccountID       string          `json:"accountID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Comment         string          `json:"comment"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	Unallocated     decimal.Decimal `json:"unallocated"`
	Cancelled       bool            `json:"cancelled"`
	CancelledAt     *time.Time      `json:"cancelledAt,omitempty"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		AccountID:       p.AccountID,
		PaymentDate:     p.PaymentDate,
		Amount:          p.Amount,
		CurrencyCode:    p.CurrencyCode,
		Comment:         p.Comment,
		AllocatedAmount: p.AllocatedAmount,
		Unallocated:     p.UnallocatedAmount(),
		Cancelled:       p.IsCancelled(),
		CancelledAt:     p.CancelledAt,
	}
}

// ToPaymentResponses converts a slice of domain payments to response DTOs.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ToAllocationResponses converts domain allocations to response DTOs.
func ToAllocationResponses(allocations []domain.Allocation) []AllocationResponse {
	responses := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		responses[i] = AllocationResponse{
			AllocationID: a.AllocationID,
			PaymentID:    a.PaymentID,
			AccrualID:    a.AccrualID,
			Amount:       a.Amount,
		}
	}
	return responses
}
