package dto

import (
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest defines the payload for creating a lease contract.
type CreateContractRequest struct {
	PropertyID     *string         `json:"propertyID" binding:"omitempty,uuid"`
	Address        string          `json:"address"`
	TenantName     string          `json:"tenantName" binding:"required"`
	RentAmount     decimal.Decimal `json:"rentAmount" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,currency"`
	DueDay         int             `json:"dueDay" binding:"required,min=1,max=31"`
	StartDate      time.Time       `json:"startDate" binding:"required"`
	EndDate        time.Time       `json:"endDate" binding:"required"`
	DepositEnabled bool            `json:"depositEnabled"`
	AdvanceEnabled bool            `json:"advanceEnabled"`
}

// UpdateContractRequest defines a sparse edit of a contract.
type UpdateContractRequest struct {
	Address        *string          `json:"address"`
	TenantName     *string          `json:"tenantName"`
	RentAmount     *decimal.Decimal `json:"rentAmount"`
	DueDay         *int             `json:"dueDay" binding:"omitempty,min=1,max=31"`
	EndDate        *time.Time       `json:"endDate"`
	DepositEnabled *bool            `json:"depositEnabled"`
	AdvanceEnabled *bool            `json:"advanceEnabled"`
	Status         *string          `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE ENDED CANCELLED"`
}

// ProlongContractRequest derives a follow-up contract starting where the
// current one ends.
type ProlongContractRequest struct {
	EndDate    time.Time        `json:"endDate" binding:"required"`
	RentAmount *decimal.Decimal `json:"rentAmount"` // Defaults to the prior contract's rent
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ContractID       string          `json:"contractID"`
	PropertyID       *string         `json:"propertyID"`
	Address          string          `json:"address"`
	TenantName       string          `json:"tenantName"`
	RentAmount       decimal.Decimal `json:"rentAmount"`
	CurrencyCode     string          `json:"currencyCode"`
	DueDay           int             `json:"dueDay"`
	StartDate        time.Time       `json:"startDate"`
	EndDate          time.Time       `json:"endDate"`
	DepositEnabled   bool            `json:"depositEnabled"`
	AdvanceEnabled   bool            `json:"advanceEnabled"`
	Status           string          `json:"status"`
	ParentContractID *string         `json:"parentContractID,omitempty"`
}

// ToContractResponse converts a domain.Contract to ContractResponse DTO.
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:       c.ContractID,
		PropertyID:       c.PropertyID,
		Address:          c.Address,
		TenantName:       c.TenantName,
		RentAmount:       c.RentAmount,
		CurrencyCode:     c.CurrencyCode,
		DueDay:           c.DueDay,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		DepositEnabled:   c.DepositEnabled,
		AdvanceEnabled:   c.AdvanceEnabled,
		Status:           string(c.Status),
		ParentContractID: c.ParentContractID,
	}
}

// ToContractResponses converts a slice of domain contracts to response DTOs.
func ToContractResponses(contracts []domain.Contract) []ContractResponse {
	responses := make([]ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = ToContractResponse(&contracts[i])
	}
	return responses
}
