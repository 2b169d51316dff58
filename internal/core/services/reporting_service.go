package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentledger/rentledger/internal/core/domain"
	portsrepo "github.com/rentledger/rentledger/internal/core/ports/repositories"
	portssvc "github.com/rentledger/rentledger/internal/core/ports/services"
)

// reportingService derives read-only rollups from a consistent ledger
// snapshot. Statuses are recomputed against the caller's reference date so
// accruals that became overdue purely by passage of time report correctly.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	dueSoonDays   int
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, dueSoonDays int) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		dueSoonDays:   dueSoonDays,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// groupKeyFor groups by property id when present, otherwise by address so no
// accrual silently drops out of the report.
func groupKeyFor(row domain.AccrualReportRow) string {
	if row.PropertyID != nil && *row.PropertyID != "" {
		return *row.PropertyID
	}
	return "addr:" + row.Address
}

// PropertyReport groups all accruals by property, rolling up sums, counts and
// the group status with precedence overdue > due > partial > paid > planned.
func (s *reportingService) PropertyReport(ctx context.Context, referenceDate time.Time) ([]domain.PropertyGroup, error) {
	rows, err := s.reportingRepo.SnapshotAccrualRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot accruals for report: %w", err)
	}

	groups := make(map[string]*domain.PropertyGroup)
	statuses := make(map[string][]domain.AccrualStatus)
	for _, row := range rows {
		key := groupKeyFor(row)
		group, ok := groups[key]
		if !ok {
			group = &domain.PropertyGroup{
				GroupKey:   key,
				PropertyID: row.PropertyID,
				Address:    row.Address,
			}
			groups[key] = group
		}

		balance := row.FinalAmount.Sub(row.PaidAmount)
		status := domain.ComputeStatus(row.FinalAmount, row.PaidAmount, row.DueDate, referenceDate, s.dueSoonDays)

		group.TotalFinal = group.TotalFinal.Add(row.FinalAmount)
		group.TotalPaid = group.TotalPaid.Add(row.PaidAmount)
		group.TotalBalance = group.TotalBalance.Add(balance)
		group.AccrualCount++
		if status == domain.StatusPaid {
			group.PaidCount++
		} else {
			group.UnpaidCount++
		}
		if status == domain.StatusOverdue {
			group.OverdueCount++
			if days := domain.OverdueDays(row.DueDate, referenceDate); days > group.MaxOverdueDays {
				group.MaxOverdueDays = days
			}
		}
		statuses[key] = append(statuses[key], status)
	}

	result := make([]domain.PropertyGroup, 0, len(groups))
	for key, group := range groups {
		group.Status = domain.RollupStatus(statuses[key])
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].GroupKey < result[j].GroupKey
	})
	return result, nil
}

// DashboardKPI computes the global rollup as of the reference date.
func (s *reportingService) DashboardKPI(ctx context.Context, referenceDate time.Time) (*domain.DashboardKPI, error) {
	rows, err := s.reportingRepo.SnapshotAccrualRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot accruals for dashboard: %w", err)
	}

	kpi := domain.DashboardKPI{}
	for _, row := range rows {
		balance := row.FinalAmount.Sub(row.PaidAmount)
		status := domain.ComputeStatus(row.FinalAmount, row.PaidAmount, row.DueDate, referenceDate, s.dueSoonDays)

		kpi.AccrualCount++
		kpi.TotalAccrued = kpi.TotalAccrued.Add(row.FinalAmount)
		kpi.TotalPaid = kpi.TotalPaid.Add(row.PaidAmount)
		kpi.TotalOutstanding = kpi.TotalOutstanding.Add(balance)
		if status == domain.StatusOverdue {
			kpi.OverdueCount++
			kpi.OverdueAmount = kpi.OverdueAmount.Add(balance)
		}
	}

	if kpi.TotalAccrued.GreaterThan(decimal.Zero) {
		kpi.CollectionRate = kpi.TotalPaid.DivRound(kpi.TotalAccrued, 4)
	}
	return &kpi, nil
}
