package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualStatus mirrors domain.AccrualStatus at the storage boundary.
type AccrualStatus string

// Accrual is the row shape of the accruals table. The derived columns
// (final_amount, paid_amount, status) are materialized and kept in step with
// their inputs inside the writing transaction; version guards every update.
type Accrual struct {
	AccrualID       string
	ContractID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	DueDate         time.Time
	BaseAmount      decimal.Decimal
	Adjustments     decimal.Decimal
	UtilitiesAmount decimal.Decimal
	UtilityType     string
	CurrencyCode    string
	Comment         string
	FinalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	Status          AccrualStatus
	Version         int64
	AuditFields
}
