package services

import (
	"context"
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
)

// ReportingSvcFacade derives read-only rollups from the ledger state.
type ReportingSvcFacade interface {
	// PropertyReport groups all accruals by property (address fallback for
	// contracts without one) and rolls up sums, counts and status as of the
	// given reference date.
	PropertyReport(ctx context.Context, referenceDate time.Time) ([]domain.PropertyGroup, error)

	// DashboardKPI computes the global rollup as of the given reference date.
	DashboardKPI(ctx context.Context, referenceDate time.Time) (*domain.DashboardKPI, error)
}
