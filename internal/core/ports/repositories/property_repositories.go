package repositories

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// PropertyReader defines read operations for property data
type PropertyReader interface {
	// FindPropertyByID retrieves a specific property by its unique identifier.
	FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error)

	// ListProperties retrieves all properties ordered by address.
	ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error)
}

// PropertyWriter defines write operations for property data
type PropertyWriter interface {
	// SaveProperty persists a new property.
	SaveProperty(ctx context.Context, property domain.Property) error
}

// PropertyRepositoryFacade combines all property-related repository interfaces.
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
}
