package dto

import (
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccrualRequest defines the payload for manually creating an accrual.
type CreateAccrualRequest struct {
	ContractID      string           `json:"contractID" binding:"required,uuid"`
	PeriodStart     time.Time        `json:"periodStart" binding:"required"`
	PeriodEnd       time.Time        `json:"periodEnd" binding:"required"`
	DueDate         time.Time        `json:"dueDate" binding:"required"`
	BaseAmount      decimal.Decimal  `json:"baseAmount" binding:"required"`
	Adjustments     *decimal.Decimal `json:"adjustments"`
	UtilitiesAmount *decimal.Decimal `json:"utilitiesAmount"`
	UtilityType     string           `json:"utilityType" binding:"omitempty,oneof=NONE FIXED METERED"`
	Comment         string           `json:"comment"`
}

// UpdateAccrualRequest defines a sparse edit of one accrual. Only fields
// present in the request are applied.
type UpdateAccrualRequest struct {
	DueDate         *time.Time       `json:"dueDate"`
	BaseAmount      *decimal.Decimal `json:"baseAmount"`
	Adjustments     *decimal.Decimal `json:"adjustments"`
	UtilitiesAmount *decimal.Decimal `json:"utilitiesAmount"`
	UtilityType     *string          `json:"utilityType" binding:"omitempty,oneof=NONE FIXED METERED"`
	Comment         *string          `json:"comment"`
}

// BulkUpdateAccrualsRequest applies one sparse edit to many accruals.
type BulkUpdateAccrualsRequest struct {
	AccrualIDs []string             `json:"accrualIDs" binding:"required,min=1,dive,uuid"`
	Fields     UpdateAccrualRequest `json:"fields" binding:"required"`
}

// BulkDeleteAccrualsRequest removes many accruals, cascading their allocations.
type BulkDeleteAccrualsRequest struct {
	AccrualIDs []string `json:"accrualIDs" binding:"required,min=1,dive,uuid"`
}

// AccrualResponse defines the data returned for an accrual.
type AccrualResponse struct {
	AccrualID       string          `json:"accrualID"`
	ContractID      string          `json:"contractID"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	DueDate         time.Time       `json:"dueDate"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	Adjustments     decimal.Decimal `json:"adjustments"`
	UtilitiesAmount decimal.Decimal `json:"utilitiesAmount"`
	UtilityType     string          `json:"utilityType"`
	CurrencyCode    string          `json:"currencyCode"`
	Comment         string          `json:"comment"`
	FinalAmount     decimal.Decimal `json:"finalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Balance         decimal.Decimal `json:"balance"`
	Status          string          `json:"status"`
	OverdueDays     int             `json:"overdueDays"`
}

// BulkUpdateResponse reports how many accruals a bulk edit touched.
type BulkUpdateResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// BulkDeleteResponse reports how many accruals a bulk delete removed.
type BulkDeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// ToAccrualResponse converts a domain.Accrual to AccrualResponse DTO.
// Overdue days are derived against the given reference date.
func ToAccrualResponse(a *domain.Accrual, referenceDate time.Time) AccrualResponse {
	overdue := 0
	if a.Status == domain.StatusOverdue {
		overdue = domain.OverdueDays(a.DueDate, referenceDate)
	}
	return AccrualResponse{
		AccrualID:       a.AccrualID,
		ContractID:      a.ContractID,
		PeriodStart:     a.PeriodStart,
		PeriodEnd:       a.PeriodEnd,
		DueDate:         a.DueDate,
		BaseAmount:      a.BaseAmount,
		Adjustments:     a.Adjustments,
		UtilitiesAmount: a.UtilitiesAmount,
		UtilityType:     string(a.UtilityType),
		CurrencyCode:    a.CurrencyCode,
		Comment:         a.Comment,
		FinalAmount:     a.FinalAmount,
		PaidAmount:      a.PaidAmount,
		Balance:         a.Balance(),
		Status:          string(a.Status),
		OverdueDays:     overdue,
	}
}

// ToAccrualResponses converts a slice of domain accruals to response DTOs.
func ToAccrualResponses(accruals []domain.Accrual, referenceDate time.Time) []AccrualResponse {
	responses := make([]AccrualResponse, len(accruals))
	for i := range accruals {
		responses[i] = ToAccrualResponse(&accruals[i], referenceDate)
	}
	return responses
}
