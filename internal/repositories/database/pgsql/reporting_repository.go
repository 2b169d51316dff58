package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting reads.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SnapshotAccrualRows reads every accrual joined with its contract's grouping
// keys. The read runs inside a repeatable-read read-only transaction so the
// whole result set reflects one snapshot.
func (r *PgxReportingRepository) SnapshotAccrualRows(ctx context.Context) ([]domain.AccrualReportRow, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin reporting snapshot", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		SELECT a.accrual_id, a.contract_id, c.property_id, c.address, a.due_date, a.final_amount, a.paid_amount, a.currency_code
		FROM accruals a
		JOIN contracts c ON c.contract_id = a.contract_id
		ORDER BY a.due_date ASC, a.accrual_id ASC;
	`
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reporting snapshot", err)
	}
	defer rows.Close()

	var result []domain.AccrualReportRow
	for rows.Next() {
		var row domain.AccrualReportRow
		err := rows.Scan(
			&row.AccrualID,
			&row.ContractID,
			&row.PropertyID,
			&row.Address,
			&row.DueDate,
			&row.FinalAmount,
			&row.PaidAmount,
			&row.CurrencyCode,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reporting row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating reporting rows", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}
