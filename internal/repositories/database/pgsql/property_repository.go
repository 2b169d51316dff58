package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	"github.com/rentledger/rentledger/internal/models"
	"github.com/rentledger/rentledger/internal/utils/mapping"
)

type PgxPropertyRepository struct {
	BaseRepository
}

// newPgxPropertyRepository creates a new repository for property data.
func newPgxPropertyRepository(pool *pgxpool.Pool) portsrepo.PropertyRepositoryFacade {
	return &PgxPropertyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

const propertyColumns = `property_id, address, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var m models.Property
	err := row.Scan(
		&m.PropertyID,
		&m.Address,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveProperty inserts a new property.
func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	m := mapping.ToModelProperty(property)

	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PropertyID,
		m.Address,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: property %s", apperrors.ErrDuplicate, m.PropertyID)
		}
		return apperrors.NewAppError(500, "failed to insert property", err)
	}
	return nil
}

// FindPropertyByID retrieves a property by its ID.
func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE property_id = $1;`

	m, err := scanProperty(r.Pool.QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: property %s", apperrors.ErrNotFound, propertyID)
		}
		return nil, apperrors.NewAppError(500, "failed to query property "+propertyID, err)
	}

	property := mapping.ToDomainProperty(*m)
	return &property, nil
}

// ListProperties retrieves properties ordered by address.
func (r *PgxPropertyRepository) ListProperties(ctx context.Context, limit int, offset int) ([]domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		ORDER BY address ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list properties", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		m, err := scanProperty(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan property row", err)
		}
		properties = append(properties, mapping.ToDomainProperty(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating property rows", err)
	}
	return properties, nil
}
