package dto

import (
	"github.com/rentledger/rentledger/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a cash account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string `json:"accountID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts to response DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
