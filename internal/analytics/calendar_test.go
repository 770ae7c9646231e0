package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBucketKeys(t *testing.T) {
	assert.Equal(t, "2024-03", MonthKey(day(2024, time.March, 5)))
	assert.Equal(t, "2024-W10", ISOWeekKey(day(2024, time.March, 5)))
	assert.Equal(t, "2024-W03", ISOWeekKey(day(2024, time.January, 17)))
	// 2021-01-03 belongs to the last ISO week of 2020
	assert.Equal(t, "2020-W53", ISOWeekKey(day(2021, time.January, 3)))
}

func TestMonthLabels(t *testing.T) {
	assert.Equal(t, "Mar 2024", MonthLabel(2024, time.March))
	assert.Equal(t, "Dec 2023", MonthLabel(2023, time.December))

	year, month, err := ParseMonthLabel("Jan 2025")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.January, month)

	for _, bad := range []string{"January 2025", "Jan", "Jan twenty"} {
		_, _, err := ParseMonthLabel(bad)
		assert.Error(t, err, bad)
	}
}

func TestWeekOfMonth(t *testing.T) {
	cases := map[int]int{1: 1, 7: 1, 8: 2, 14: 2, 15: 3, 22: 4, 28: 4, 29: 5, 31: 5}
	for d, want := range cases {
		assert.Equal(t, want, WeekOfMonth(day(2024, time.March, d)), "day %d", d)
	}
	assert.Equal(t, "Week 5", WeekLabel(5))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("weekly")
	require.NoError(t, err)
	assert.Equal(t, "week", p.Field())

	p, err = ParsePeriod("monthly")
	require.NoError(t, err)
	assert.Equal(t, "month", p.Field())

	_, err = ParsePeriod("daily")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got, err := ParseDate("2024-03-01", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), got)

	got, err = ParseDate("2024-03-01T10:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)))

	_, err = ParseDate("yesterday", loc)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMonthBounds(t *testing.T) {
	first, next := MonthBounds(2024, time.February, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), next)

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), StartOfDay(day(2024, time.March, 5)))
}
