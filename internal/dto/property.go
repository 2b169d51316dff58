package dto

import (
	"github.com/rentledger/rentledger/internal/core/domain"
)

// CreatePropertyRequest defines the payload for creating a property.
type CreatePropertyRequest struct {
	Address string `json:"address" binding:"required"`
}

// PropertyResponse defines the data returned for a property.
type PropertyResponse struct {
	PropertyID string `json:"propertyID"`
	Address    string `json:"address"`
	IsActive   bool   `json:"isActive"`
}

// ToPropertyResponse converts a domain.Property to PropertyResponse DTO.
func ToPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID: p.PropertyID,
		Address:    p.Address,
		IsActive:   p.IsActive,
	}
}

// ToPropertyResponses converts a slice of domain properties to response DTOs.
func ToPropertyResponses(properties []domain.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses
}
