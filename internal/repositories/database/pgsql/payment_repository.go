package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentledger/rentledger/internal/apperrors"
	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	"github.com/rentledger/rentledger/internal/models"
	"github.com/rentledger/rentledger/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// paymentColumns selects payment rows together with the derived allocated
// amount, so "p" must alias the payments table in every query using it.
const paymentColumns = `p.payment_id, p.account_id, p.payment_date, p.amount, p.currency_code, p.comment, p.cancelled_at,
	COALESCE((SELECT SUM(a.amount) FROM allocations a WHERE a.payment_id = p.payment_id), 0) AS allocated_amount,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

const allocationColumns = `allocation_id, payment_id, accrual_id, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.AccountID,
		&m.PaymentDate,
		&m.Amount,
		&m.CurrencyCode,
		&m.Comment,
		&m.CancelledAt,
		&m.AllocatedAmount,
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

func scanAllocation(row pgx.Row) (*models.Allocation, error) {
	var m models.Allocation
	err := row.Scan(
		&m.AllocationID,
		&m.PaymentID,
		&m.AccrualID,
		&m.Amount,
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

// FindPaymentByID retrieves a payment with its derived allocated amount.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, apperrors.NewAppError(500, "failed to query payment "+paymentID, err)
	}

	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

// ListPaymentsByAccount retrieves payments received into an account, newest
// payment date first.
func (r *PgxPaymentRepository) ListPaymentsByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.account_id = $1
		ORDER BY p.payment_date DESC, p.payment_id ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payments for account "+accountID, err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating payment rows", err)
	}
	return payments, nil
}

// FindLatestPaymentForAccrual retrieves the most recently created
// non-cancelled payment holding an allocation against the accrual.
func (r *PgxPaymentRepository) FindLatestPaymentForAccrual(ctx context.Context, accrualID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		WHERE p.cancelled_at IS NULL
		  AND EXISTS (SELECT 1 FROM allocations a WHERE a.payment_id = p.payment_id AND a.accrual_id = $1)
		ORDER BY p.created_at DESC, p.payment_id DESC
		LIMIT 1;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, accrualID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no payment allocated to accrual %s", apperrors.ErrNotFound, accrualID)
		}
		return nil, apperrors.NewAppError(500, "failed to query latest payment for accrual "+accrualID, err)
	}

	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

// FindAllocationsByPaymentID retrieves all allocations of a payment.
func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM allocations
		WHERE payment_id = $1
		ORDER BY allocation_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list allocations for payment "+paymentID, err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan allocation row", err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating allocation rows", err)
	}
	return allocations, nil
}

// SavePaymentsWithAllocations persists payments, allocations and the resulting
// accrual updates as one transaction.
func (r *PgxPaymentRepository) SavePaymentsWithAllocations(ctx context.Context, payments []domain.Payment, allocations []domain.Allocation, accrualUpdates []domain.Accrual) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertPayments(ctx, tx, payments); err != nil {
		return err
	}
	if err := insertAllocations(ctx, tx, allocations); err != nil {
		return err
	}
	if err := updateAccruals(ctx, tx, accrualUpdates); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertPayments(ctx context.Context, tx pgx.Tx, payments []domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, account_id, payment_date, amount, currency_code, comment, cancelled_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		m := mapping.ToModelPayment(p)
		batch.Queue(query,
			m.PaymentID,
			m.AccountID,
			m.PaymentDate,
			m.Amount,
			m.CurrencyCode,
			m.Comment,
			m.CancelledAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range payments {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return fmt.Errorf("%w: payment insert", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert payment", err)
		}
	}
	return results.Close()
}

func insertAllocations(ctx context.Context, tx pgx.Tx, allocations []domain.Allocation) error {
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, a := range allocations {
		m := mapping.ToModelAllocation(a)
		batch.Queue(query,
			m.AllocationID,
			m.PaymentID,
			m.AccrualID,
			m.Amount,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range allocations {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return fmt.Errorf("%w: allocation insert", apperrors.ErrDuplicate)
			}
			return apperrors.NewAppError(500, "failed to insert allocation", err)
		}
	}
	return results.Close()
}

// CancelPaymentWithReversals marks the payment cancelled, deletes its
// allocations and applies the reversed accrual balances, all in one
// transaction. The cancelled_at guard makes cancellation race-safe: the second
// caller affects zero rows and gets ErrAlreadyCancelled.
func (r *PgxPaymentRepository) CancelPaymentWithReversals(ctx context.Context, paymentID string, cancelledAt time.Time, accrualUpdates []domain.Accrual, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET cancelled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND cancelled_at IS NULL;
	`, paymentID, cancelledAt, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyCancelled, paymentID)
	}

	_, err = tx.Exec(ctx, `DELETE FROM allocations WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete allocations for payment "+paymentID, err)
	}

	if err := updateAccruals(ctx, tx, accrualUpdates); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
