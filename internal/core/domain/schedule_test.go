package domain_test

import (
	"testing"
	"time"

	"github.com/rentledger/rentledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandScheduleFullMonths(t *testing.T) {
	c := domain.Contract{
		StartDate: day(2026, time.January, 1),
		EndDate:   day(2026, time.March, 31),
		DueDay:    5,
	}

	periods := domain.ExpandSchedule(c)
	require.Len(t, periods, 3)

	assert.Equal(t, day(2026, time.January, 1), periods[0].PeriodStart)
	assert.Equal(t, day(2026, time.January, 31), periods[0].PeriodEnd)
	assert.Equal(t, day(2026, time.January, 5), periods[0].DueDate)

	assert.Equal(t, day(2026, time.February, 1), periods[1].PeriodStart)
	assert.Equal(t, day(2026, time.February, 28), periods[1].PeriodEnd)

	assert.Equal(t, day(2026, time.March, 1), periods[2].PeriodStart)
	assert.Equal(t, day(2026, time.March, 31), periods[2].PeriodEnd)
	assert.Equal(t, day(2026, time.March, 5), periods[2].DueDate)
}

func TestExpandSchedulePartialEdges(t *testing.T) {
	// Mid-month start and end produce truncated first and last periods.
	c := domain.Contract{
		StartDate: day(2026, time.January, 15),
		EndDate:   day(2026, time.March, 10),
		DueDay:    1,
	}

	periods := domain.ExpandSchedule(c)
	require.Len(t, periods, 3)

	assert.Equal(t, day(2026, time.January, 15), periods[0].PeriodStart)
	assert.Equal(t, day(2026, time.January, 31), periods[0].PeriodEnd)
	assert.Equal(t, day(2026, time.March, 1), periods[2].PeriodStart)
	assert.Equal(t, day(2026, time.March, 10), periods[2].PeriodEnd)
}

func TestExpandScheduleClampsDueDay(t *testing.T) {
	// Due day 31 must clamp to the end of short months.
	c := domain.Contract{
		StartDate: day(2026, time.January, 1),
		EndDate:   day(2026, time.April, 30),
		DueDay:    31,
	}

	periods := domain.ExpandSchedule(c)
	require.Len(t, periods, 4)

	assert.Equal(t, day(2026, time.January, 31), periods[0].DueDate)
	assert.Equal(t, day(2026, time.February, 28), periods[1].DueDate)
	assert.Equal(t, day(2026, time.March, 31), periods[2].DueDate)
	assert.Equal(t, day(2026, time.April, 30), periods[3].DueDate)
}

func TestExpandScheduleLeapFebruary(t *testing.T) {
	c := domain.Contract{
		StartDate: day(2028, time.February, 1),
		EndDate:   day(2028, time.February, 29),
		DueDay:    31,
	}

	periods := domain.ExpandSchedule(c)
	require.Len(t, periods, 1)
	assert.Equal(t, day(2028, time.February, 29), periods[0].DueDate)
	assert.Equal(t, day(2028, time.February, 29), periods[0].PeriodEnd)
}

func TestExpandScheduleEmptyTerm(t *testing.T) {
	c := domain.Contract{
		StartDate: day(2026, time.March, 1),
		EndDate:   day(2026, time.February, 1),
		DueDay:    1,
	}
	assert.Nil(t, domain.ExpandSchedule(c))
}
