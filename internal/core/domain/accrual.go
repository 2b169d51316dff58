package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UtilityType describes how the utilities portion of an accrual is charged.
type UtilityType string

const (
	UtilityNone    UtilityType = "NONE"
	UtilityFixed   UtilityType = "FIXED"
	UtilityMetered UtilityType = "METERED"
)

// Accrual is one billable charge for one period on one contract.
//
// FinalAmount, PaidAmount, Balance and Status are materialized derived fields:
// they are recomputed inside the same unit of work as any mutation affecting
// their inputs, never lazily at read time.
type Accrual struct {
	AccrualID      string          `json:"accrualID"` // Primary Key (UUID)
	ContractID     string          `json:"contractID"`
	PeriodStart    time.Time       `json:"periodStart"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	DueDate        time.Time       `json:"dueDate"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`      // >= 0
	Adjustments    decimal.Decimal `json:"adjustments"`     // May be negative
	UtilitiesAmount decimal.Decimal `json:"utilitiesAmount"` // >= 0
	UtilityType    UtilityType     `json:"utilityType"`
	CurrencyCode   string          `json:"currencyCode"`
	Comment        string          `json:"comment"`
	FinalAmount    decimal.Decimal `json:"finalAmount"` // BaseAmount + Adjustments + UtilitiesAmount
	PaidAmount     decimal.Decimal `json:"paidAmount"`  // Sum of allocation amounts
	Status         AccrualStatus   `json:"status"`
	Version        int64           `json:"-"` // Optimistic concurrency token, checked on every update
	AuditFields
}

// Balance is the amount still owed on the accrual.
func (a Accrual) Balance() decimal.Decimal {
	return a.FinalAmount.Sub(a.PaidAmount)
}

// Recalculate re-derives FinalAmount and Status from the accrual's inputs.
// Call after any change to amounts, paid amount or due date.
func (a *Accrual) Recalculate(referenceDate time.Time, dueSoonDays int) {
	a.FinalAmount = a.BaseAmount.Add(a.Adjustments).Add(a.UtilitiesAmount)
	a.Status = ComputeStatus(a.FinalAmount, a.PaidAmount, a.DueDate, referenceDate, dueSoonDays)
}
