package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualReportRow is one accrual joined with its grouping keys, as read from
// a single consistent snapshot for reporting.
type AccrualReportRow struct {
	AccrualID    string          `json:"accrualID"`
	ContractID   string          `json:"contractID"`
	PropertyID   *string         `json:"propertyID"`
	Address      string          `json:"address"`
	DueDate      time.Time       `json:"dueDate"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
	PaidAmount   decimal.Decimal `json:"paidAmount"`
	CurrencyCode string          `json:"currencyCode"`
}

// PropertyGroup is the rollup of all accruals sharing a property (or, for
// contracts without a property, sharing an address).
type PropertyGroup struct {
	GroupKey       string          `json:"groupKey"`   // property id or "addr:<address>"
	PropertyID     *string         `json:"propertyID"` // nil for address-fallback groups
	Address        string          `json:"address"`
	TotalFinal     decimal.Decimal `json:"totalFinal"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalBalance   decimal.Decimal `json:"totalBalance"`
	AccrualCount   int             `json:"accrualCount"`
	PaidCount      int             `json:"paidCount"`
	UnpaidCount    int             `json:"unpaidCount"`
	OverdueCount   int             `json:"overdueCount"`
	MaxOverdueDays int             `json:"maxOverdueDays"`
	Status         AccrualStatus   `json:"status"`
}

// DashboardKPI is the global rollup shown on the dashboard.
type DashboardKPI struct {
	TotalAccrued     decimal.Decimal `json:"totalAccrued"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	OverdueAmount    decimal.Decimal `json:"overdueAmount"`
	OverdueCount     int             `json:"overdueCount"`
	AccrualCount     int             `json:"accrualCount"`
	CollectionRate   decimal.Decimal `json:"collectionRate"` // TotalPaid / TotalAccrued, 0 when nothing accrued
}
