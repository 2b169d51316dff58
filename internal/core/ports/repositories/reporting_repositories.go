package repositories

import (
	"context"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// ReportingRepository reads the ledger for aggregation. All rows of one call
// come from a single consistent snapshot so rollups are never skewed by
// concurrent writers.
type ReportingRepository interface {
	// SnapshotAccrualRows retrieves every accrual joined with its contract's
	// grouping keys (property id, address) as of one snapshot.
	SnapshotAccrualRows(ctx context.Context) ([]domain.AccrualReportRow, error)
}
