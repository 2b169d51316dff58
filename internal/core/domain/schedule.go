package domain

import (
	"time"
)

// SchedulePeriod is one billable period expanded from a contract's term.
type SchedulePeriod struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	DueDate     time.Time
}

// ExpandSchedule expands a contract's term into monthly billing periods.
// The first period starts at the contract start date and the last period ends
// at the contract end date; interior periods span whole calendar months.
// The due date falls in the period's month on the contract's due day, clamped
// to the last day of short months (due day 31 in February becomes the 28th/29th).
func ExpandSchedule(c Contract) []SchedulePeriod {
	start := dateOnly(c.StartDate)
	end := dateOnly(c.EndDate)
	if end.Before(start) {
		return nil
	}

	var periods []SchedulePeriod
	cursor := start
	for !cursor.After(end) {
		monthStart := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, -1)

		periodStart := cursor
		periodEnd := monthEnd
		if periodEnd.After(end) {
			periodEnd = end
		}

		periods = append(periods, SchedulePeriod{
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			DueDate:     dueDateInMonth(monthStart, c.DueDay),
		})

		cursor = monthStart.AddDate(0, 1, 0)
	}
	return periods
}

// dueDateInMonth places dueDay within the month starting at monthStart,
// clamping to the month's last day.
func dueDateInMonth(monthStart time.Time, dueDay int) time.Time {
	lastDay := monthStart.AddDate(0, 1, -1).Day()
	day := dueDay
	if day < 1 {
		day = 1
	}
	if day > lastDay {
		day = lastDay
	}
	return time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
}
