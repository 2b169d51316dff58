package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccrualStatus is the derived payment state of an accrual.
type AccrualStatus string

const (
	StatusPlanned AccrualStatus = "PLANNED"
	StatusDue     AccrualStatus = "DUE"
	StatusPartial AccrualStatus = "PARTIAL"
	StatusOverdue AccrualStatus = "OVERDUE"
	StatusPaid    AccrualStatus = "PAID"
)

// statusPrecedence orders statuses for group rollups, highest urgency first.
var statusPrecedence = map[AccrualStatus]int{
	StatusOverdue: 5,
	StatusDue:     4,
	StatusPartial: 3,
	StatusPaid:    2,
	StatusPlanned: 1,
}

// ComputeStatus derives an accrual's status from its amounts and due date
// relative to a reference date. It is pure and must be re-run after every
// allocation or edit that touches final amount, paid amount or due date.
//
//   - paid when nothing is owed, regardless of due date
//   - overdue when the due date has passed
//   - partial when some money has arrived but the due date has not passed
//   - due when the due date falls within dueSoonDays of the reference date
//   - planned otherwise
func ComputeStatus(finalAmount, paidAmount decimal.Decimal, dueDate, referenceDate time.Time, dueSoonDays int) AccrualStatus {
	balance := finalAmount.Sub(paidAmount)
	if balance.LessThanOrEqual(decimal.Zero) {
		return StatusPaid
	}

	due := dateOnly(dueDate)
	ref := dateOnly(referenceDate)

	if due.Before(ref) {
		return StatusOverdue
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return StatusPartial
	}
	if !due.After(ref.AddDate(0, 0, dueSoonDays)) {
		return StatusDue
	}
	return StatusPlanned
}

// OverdueDays returns the number of whole days the due date lies behind the
// reference date; zero when not overdue.
func OverdueDays(dueDate, referenceDate time.Time) int {
	days := int(dateOnly(referenceDate).Sub(dateOnly(dueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// RollupStatus returns the highest-precedence status among the given statuses,
// with precedence overdue > due > partial > paid > planned. An empty input
// rolls up to planned.
func RollupStatus(statuses []AccrualStatus) AccrualStatus {
	rollup := StatusPlanned
	for _, s := range statuses {
		if statusPrecedence[s] > statusPrecedence[rollup] {
			rollup = s
		}
	}
	return rollup
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
