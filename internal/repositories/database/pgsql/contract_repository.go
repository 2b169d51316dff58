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

type PgxContractRepository struct {
	BaseRepository
}

// newPgxContractRepository creates a new repository for contract data.
func newPgxContractRepository(pool *pgxpool.Pool) portsrepo.ContractRepositoryFacade {
	return &PgxContractRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

const contractColumns = `contract_id, property_id, address, tenant_name, rent_amount, currency_code, due_day, start_date, end_date, deposit_enabled, advance_enabled, status, parent_contract_id, created_at, created_by, last_updated_at, last_updated_by`

func scanContract(row pgx.Row) (*models.Contract, error) {
	var m models.Contract
	err := row.Scan(
		&m.ContractID,
		&m.PropertyID,
		&m.Address,
		&m.TenantName,
		&m.RentAmount,
		&m.CurrencyCode,
		&m.DueDay,
		&m.StartDate,
		&m.EndDate,
		&m.DepositEnabled,
		&m.AdvanceEnabled,
		&m.Status,
		&m.ParentContractID,
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

// SaveContract inserts a new contract.
func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.Contract) error {
	m := mapping.ToModelContract(contract)

	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.PropertyID,
		m.Address,
		m.TenantName,
		m.RentAmount,
		m.CurrencyCode,
		m.DueDay,
		m.StartDate,
		m.EndDate,
		m.DepositEnabled,
		m.AdvanceEnabled,
		m.Status,
		m.ParentContractID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: contract %s", apperrors.ErrDuplicate, m.ContractID)
		}
		return apperrors.NewAppError(500, "failed to insert contract", err)
	}
	return nil
}

// FindContractByID retrieves a contract by its ID.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = $1;`

	m, err := scanContract(r.Pool.QueryRow(ctx, query, contractID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: contract %s", apperrors.ErrNotFound, contractID)
		}
		return nil, apperrors.NewAppError(500, "failed to query contract "+contractID, err)
	}

	contract := mapping.ToDomainContract(*m)
	return &contract, nil
}

// ListContracts retrieves contracts ordered by start date descending.
func (r *PgxContractRepository) ListContracts(ctx context.Context, limit int, offset int) ([]domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		ORDER BY start_date DESC, contract_id ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list contracts", err)
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		m, err := scanContract(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contract row", err)
		}
		contracts = append(contracts, mapping.ToDomainContract(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating contract rows", err)
	}
	return contracts, nil
}

// UpdateContract updates an existing contract's details.
func (r *PgxContractRepository) UpdateContract(ctx context.Context, contract domain.Contract) error {
	m := mapping.ToModelContract(contract)

	query := `
		UPDATE contracts
		SET property_id = $2,
			address = $3,
			tenant_name = $4,
			rent_amount = $5,
			currency_code = $6,
			due_day = $7,
			start_date = $8,
			end_date = $9,
			deposit_enabled = $10,
			advance_enabled = $11,
			status = $12,
			parent_contract_id = $13,
			last_updated_at = $14,
			last_updated_by = $15
		WHERE contract_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContractID,
		m.PropertyID,
		m.Address,
		m.TenantName,
		m.RentAmount,
		m.CurrencyCode,
		m.DueDay,
		m.StartDate,
		m.EndDate,
		m.DepositEnabled,
		m.AdvanceEnabled,
		m.Status,
		m.ParentContractID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update contract "+m.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contract %s", apperrors.ErrNotFound, m.ContractID)
	}
	return nil
}

// DeleteContractCascade removes a contract together with its accruals and
// their allocations. Payments referenced by the allocations are kept.
func (r *PgxContractRepository) DeleteContractCascade(ctx context.Context, contractID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		DELETE FROM allocations
		WHERE accrual_id IN (SELECT accrual_id FROM accruals WHERE contract_id = $1);
	`, contractID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocations for contract "+contractID, err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM accruals WHERE contract_id = $1;`, contractID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete accruals for contract "+contractID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM contracts WHERE contract_id = $1;`, contractID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete contract "+contractID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: contract %s", apperrors.ErrNotFound, contractID)
	}

	return r.Commit(ctx, tx)
}
