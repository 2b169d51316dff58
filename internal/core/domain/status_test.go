package domain_test

import (
	"testing"
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestComputeStatus(t *testing.T) {
	ref := day(2026, time.March, 15)

	testCases := []struct {
		name        string
		finalAmount decimal.Decimal
		paidAmount  decimal.Decimal
		dueDate     time.Time
		dueSoonDays int
		expected    domain.AccrualStatus
	}{
		{
			name:        "fully paid regardless of due date",
			finalAmount: d("1000"),
			paidAmount:  d("1000"),
			dueDate:     day(2026, time.January, 1),
			expected:    domain.StatusPaid,
		},
		{
			name:        "zero final amount counts as paid",
			finalAmount: d("0"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.April, 1),
			expected:    domain.StatusPaid,
		},
		{
			name:        "unpaid past due date is overdue",
			finalAmount: d("1000"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.March, 14),
			expected:    domain.StatusOverdue,
		},
		{
			name:        "partially paid past due date is still overdue",
			finalAmount: d("1000"),
			paidAmount:  d("400"),
			dueDate:     day(2026, time.March, 1),
			expected:    domain.StatusOverdue,
		},
		{
			name:        "partially paid before due date is partial",
			finalAmount: d("1000"),
			paidAmount:  d("400"),
			dueDate:     day(2026, time.April, 1),
			expected:    domain.StatusPartial,
		},
		{
			name:        "due today",
			finalAmount: d("1000"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.March, 15),
			expected:    domain.StatusDue,
		},
		{
			name:        "future due date without horizon is planned",
			finalAmount: d("1000"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.March, 16),
			expected:    domain.StatusPlanned,
		},
		{
			name:        "future due date within horizon is due",
			finalAmount: d("1000"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.March, 18),
			dueSoonDays: 3,
			expected:    domain.StatusDue,
		},
		{
			name:        "future due date beyond horizon is planned",
			finalAmount: d("1000"),
			paidAmount:  d("0"),
			dueDate:     day(2026, time.March, 19),
			dueSoonDays: 3,
			expected:    domain.StatusPlanned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ComputeStatus(tc.finalAmount, tc.paidAmount, tc.dueDate, ref, tc.dueSoonDays)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestComputeStatusTransitionAfterPayment(t *testing.T) {
	// An accrual due yesterday and unpaid is overdue by one day; paying it in
	// full flips it to paid and zeroes the overdue metric.
	ref := day(2026, time.March, 15)
	due := day(2026, time.March, 14)

	assert.Equal(t, domain.StatusOverdue, domain.ComputeStatus(d("1000"), d("0"), due, ref, 0))
	assert.Equal(t, 1, domain.OverdueDays(due, ref))

	assert.Equal(t, domain.StatusPaid, domain.ComputeStatus(d("1000"), d("1000"), due, ref, 0))
	assert.Equal(t, 0, domain.OverdueDays(due, ref.AddDate(0, 0, -1)))
}

func TestOverdueDays(t *testing.T) {
	ref := day(2026, time.March, 15)

	assert.Equal(t, 0, domain.OverdueDays(day(2026, time.March, 15), ref))
	assert.Equal(t, 0, domain.OverdueDays(day(2026, time.April, 1), ref))
	assert.Equal(t, 1, domain.OverdueDays(day(2026, time.March, 14), ref))
	assert.Equal(t, 31, domain.OverdueDays(day(2026, time.February, 12), ref))

	// Time-of-day must not affect whole-day arithmetic.
	lateEvening := time.Date(2026, time.March, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, domain.OverdueDays(lateEvening, ref))
}

func TestRollupStatus(t *testing.T) {
	testCases := []struct {
		name     string
		statuses []domain.AccrualStatus
		expected domain.AccrualStatus
	}{
		{
			name:     "empty rolls up to planned",
			statuses: nil,
			expected: domain.StatusPlanned,
		},
		{
			name:     "overdue dominates everything",
			statuses: []domain.AccrualStatus{domain.StatusPaid, domain.StatusOverdue, domain.StatusDue},
			expected: domain.StatusOverdue,
		},
		{
			name:     "due beats partial",
			statuses: []domain.AccrualStatus{domain.StatusPartial, domain.StatusDue},
			expected: domain.StatusDue,
		},
		{
			name:     "partial beats paid",
			statuses: []domain.AccrualStatus{domain.StatusPaid, domain.StatusPartial},
			expected: domain.StatusPartial,
		},
		{
			name:     "paid beats planned",
			statuses: []domain.AccrualStatus{domain.StatusPlanned, domain.StatusPaid},
			expected: domain.StatusPaid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.RollupStatus(tc.statuses))
		})
	}
}

func TestAccrualRecalculate(t *testing.T) {
	ref := day(2026, time.March, 15)

	a := domain.Accrual{
		BaseAmount:      d("900"),
		Adjustments:     d("-50"),
		UtilitiesAmount: d("150"),
		PaidAmount:      d("0"),
		DueDate:         day(2026, time.April, 1),
	}
	a.Recalculate(ref, 0)

	assert.True(t, a.FinalAmount.Equal(d("1000")), "final = base + adjustments + utilities")
	assert.True(t, a.Balance().Equal(d("1000")))
	assert.Equal(t, domain.StatusPlanned, a.Status)

	a.PaidAmount = d("1000")
	a.Recalculate(ref, 0)
	assert.Equal(t, domain.StatusPaid, a.Status)
	assert.True(t, a.Balance().IsZero())
}
