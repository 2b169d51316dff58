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

type PgxAccrualRepository struct {
	BaseRepository
}

// newPgxAccrualRepository creates a new repository for accrual data.
func newPgxAccrualRepository(pool *pgxpool.Pool) portsrepo.AccrualRepositoryFacade {
	return &PgxAccrualRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccrualRepositoryFacade = (*PgxAccrualRepository)(nil)

const accrualColumns = `accrual_id, contract_id, period_start, period_end, due_date, base_amount, adjustments, utilities_amount, utility_type, currency_code, comment, final_amount, paid_amount, status, version, created_at, created_by, last_updated_at, last_updated_by`

func scanAccrual(row pgx.Row) (*models.Accrual, error) {
	var m models.Accrual
	err := row.Scan(
		&m.AccrualID,
		&m.ContractID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.DueDate,
		&m.BaseAmount,
		&m.Adjustments,
		&m.UtilitiesAmount,
		&m.UtilityType,
		&m.CurrencyCode,
		&m.Comment,
		&m.FinalAmount,
		&m.PaidAmount,
		&m.Status,
		&m.Version,
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

func collectAccruals(rows pgx.Rows) ([]domain.Accrual, error) {
	defer rows.Close()
	var accruals []domain.Accrual
	for rows.Next() {
		m, err := scanAccrual(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accrual row", err)
		}
		accruals = append(accruals, mapping.ToDomainAccrual(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating accrual rows", err)
	}
	return accruals, nil
}

// FindAccrualByID retrieves an accrual by its ID.
func (r *PgxAccrualRepository) FindAccrualByID(ctx context.Context, accrualID string) (*domain.Accrual, error) {
	query := `SELECT ` + accrualColumns + ` FROM accruals WHERE accrual_id = $1;`

	m, err := scanAccrual(r.Pool.QueryRow(ctx, query, accrualID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: accrual %s", apperrors.ErrNotFound, accrualID)
		}
		return nil, apperrors.NewAppError(500, "failed to query accrual "+accrualID, err)
	}

	accrual := mapping.ToDomainAccrual(*m)
	return &accrual, nil
}

// FindAccrualsByIDs retrieves multiple accruals keyed by ID. Every requested
// ID must resolve.
func (r *PgxAccrualRepository) FindAccrualsByIDs(ctx context.Context, accrualIDs []string) (map[string]domain.Accrual, error) {
	if len(accrualIDs) == 0 {
		return map[string]domain.Accrual{}, nil
	}

	query := `SELECT ` + accrualColumns + ` FROM accruals WHERE accrual_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accrualIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accruals by ids", err)
	}

	accruals, err := collectAccruals(rows)
	if err != nil {
		return nil, err
	}

	found := make(map[string]domain.Accrual, len(accruals))
	for _, a := range accruals {
		found[a.AccrualID] = a
	}
	for _, id := range accrualIDs {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: accrual %s", apperrors.ErrNotFound, id)
		}
	}
	return found, nil
}

// ListAccrualsByContract retrieves all accruals of a contract in due-date order.
func (r *PgxAccrualRepository) ListAccrualsByContract(ctx context.Context, contractID string) ([]domain.Accrual, error) {
	query := `
		SELECT ` + accrualColumns + `
		FROM accruals
		WHERE contract_id = $1
		ORDER BY due_date ASC, accrual_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accruals for contract "+contractID, err)
	}
	return collectAccruals(rows)
}

// ListOutstandingByContract retrieves the accruals of a contract that still
// carry a balance, skipping the excluded IDs. Order matches the allocation
// walk: due_date ascending, accrual_id ascending.
func (r *PgxAccrualRepository) ListOutstandingByContract(ctx context.Context, contractID string, excludeIDs []string) ([]domain.Accrual, error) {
	if excludeIDs == nil {
		excludeIDs = []string{}
	}
	query := `
		SELECT ` + accrualColumns + `
		FROM accruals
		WHERE contract_id = $1
		  AND paid_amount < final_amount
		  AND NOT (accrual_id = ANY($2))
		ORDER BY due_date ASC, accrual_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, contractID, excludeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list outstanding accruals for contract "+contractID, err)
	}
	return collectAccruals(rows)
}

// SaveAccruals persists new accruals in one transaction.
func (r *PgxAccrualRepository) SaveAccruals(ctx context.Context, accruals []domain.Accrual) error {
	if len(accruals) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertAccruals(ctx, tx, accruals); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertAccruals batches accrual inserts on the given transaction.
func insertAccruals(ctx context.Context, tx pgx.Tx, accruals []domain.Accrual) error {
	query := `
		INSERT INTO accruals (` + accrualColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	batch := &pgx.Batch{}
	for _, a := range accruals {
		m := mapping.ToModelAccrual(a)
		batch.Queue(query,
			m.AccrualID,
			m.ContractID,
			m.PeriodStart,
			m.PeriodEnd,
			m.DueDate,
			m.BaseAmount,
			m.Adjustments,
			m.UtilitiesAmount,
			m.UtilityType,
			m.CurrencyCode,
			m.Comment,
			m.FinalAmount,
			m.PaidAmount,
			m.Status,
			m.Version,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range accruals {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return fmt.Errorf("%w: accrual insert", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert accrual", err)
		}
	}
	return results.Close()
}

// UpdateAccruals persists changed accruals in one transaction. Each update is
// guarded by the version the caller read; a row changed underneath fails the
// whole batch with ErrConflict.
func (r *PgxAccrualRepository) UpdateAccruals(ctx context.Context, accruals []domain.Accrual) error {
	if len(accruals) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := updateAccruals(ctx, tx, accruals); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// updateAccruals applies version-guarded accrual updates on the given
// transaction. The guard compares against the version the caller read, so the
// domain accruals carry the pre-update version here.
func updateAccruals(ctx context.Context, tx pgx.Tx, accruals []domain.Accrual) error {
	query := `
		UPDATE accruals
		SET due_date = $3,
			base_amount = $4,
			adjustments = $5,
			utilities_amount = $6,
			utility_type = $7,
			comment = $8,
			final_amount = $9,
			paid_amount = $10,
			status = $11,
			version = version + 1,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE accrual_id = $1 AND version = $2;
	`
	for _, a := range accruals {
		m := mapping.ToModelAccrual(a)
		tag, err := tx.Exec(ctx, query,
			m.AccrualID,
			m.Version,
			m.DueDate,
			m.BaseAmount,
			m.Adjustments,
			m.UtilitiesAmount,
			m.UtilityType,
			m.Comment,
			m.FinalAmount,
			m.PaidAmount,
			m.Status,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update accrual "+m.AccrualID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: accrual %s changed concurrently", apperrors.ErrConflict, m.AccrualID)
		}
	}
	return nil
}

// DeleteAccrualsCascade deletes the given accruals and their allocations in one
// transaction, allocations first. Returns the number of accruals deleted.
func (r *PgxAccrualRepository) DeleteAccrualsCascade(ctx context.Context, accrualIDs []string) (int64, error) {
	if len(accrualIDs) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `DELETE FROM allocations WHERE accrual_id = ANY($1);`, accrualIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete allocations for accruals", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM accruals WHERE accrual_id = ANY($1);`, accrualIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete accruals", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
