package dto

import (
	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PropertyGroupResponse is the rollup of accruals for one property group.
type PropertyGroupResponse struct {
	GroupKey       string          `json:"groupKey"`
	PropertyID     *string         `json:"propertyID,omitempty"`
	Address        string          `json:"address"`
	TotalFinal     decimal.Decimal `json:"totalFinal"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	AccrualCount   int             `json:"accrualCount"`
	PaidCount      int             `json:"paidCount"`
	UnpaidCount    int             `json:"unpaidCount"`
	OverdueCount   int             `json:"overdueCount"`
	MaxOverdueDays int             `json:"maxOverdueDays"`
	Status         string          `json:"status"`
}

// PropertyReportResponse lists all property groups.
type PropertyReportResponse struct {
	Groups []PropertyGroupResponse `json:"groups"`
}

// DashboardResponse carries the global KPI rollup.
type DashboardResponse struct {
	TotalAccrued     decimal.Decimal `json:"totalAccrued"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	OverdueAmount    decimal.Decimal `json:"overdueAmount"`
	OverdueCount     int             `json:"overdueCount"`
	AccrualCount     int             `json:"accrualCount"`
	CollectionRate   decimal.Decimal `json:"collectionRate"`
}

// ToPropertyGroupResponses converts domain property groups to response DTOs.
func ToPropertyGroupResponses(groups []domain.PropertyGroup) []PropertyGroupResponse {
	responses := make([]PropertyGroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = PropertyGroupResponse{
			GroupKey:       g.GroupKey,
			PropertyID:     g.PropertyID,
			Address:        g.Address,
			TotalFinal:     g.TotalFinal,
			TotalPaid:      g.TotalPaid,
			TotalBalance:   g.TotalBalance,
			AccrualCount:   g.AccrualCount,
			PaidCount:      g.PaidCount,
			UnpaidCount:    g.UnpaidCount,
			OverdueCount:   g.OverdueCount,
			MaxOverdueDays: g.MaxOverdueDays,
			Status:         string(g.Status),
		}
	}
	return responses
}

// ToDashboardResponse converts domain dashboard KPI to its response DTO.
func ToDashboardResponse(kpi domain.DashboardKPI) DashboardResponse {
	return DashboardResponse{
		TotalAccrued:     kpi.TotalAccrued,
		TotalPaid:        kpi.TotalPaid,
		TotalOutstanding: kpi.TotalOutstanding,
		OverdueAmount:    kpi.OverdueAmount,
		OverdueCount:     kpi.OverdueCount,
		AccrualCount:     kpi.AccrualCount,
		CollectionRate:   kpi.CollectionRate,
	}
}
