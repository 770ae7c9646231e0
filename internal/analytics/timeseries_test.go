package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

func occupancy(d time.Time, count int) domain.DailyBedOccupancy {
	return domain.DailyBedOccupancy{Date: d, OccupancyCount: count}
}

func TestOccupancyTrendMonthly(t *testing.T) {
	records := []domain.DailyBedOccupancy{
		occupancy(day(2024, time.February, 28), 7),
		occupancy(day(2024, time.March, 2), 5),
		occupancy(day(2024, time.March, 3), 6),
		occupancy(day(2024, time.April, 1), 9),
	}
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	trend := OccupancyTrend(records, start, end, PeriodMonthly)
	assert.Equal(t, []TrendPoint{{Key: "2024-02", TotalOccupancy: 7}, {Key: "2024-03", TotalOccupancy: 11}}, trend)
}

func TestOccupancyTrendWeeklyInclusiveBounds(t *testing.T) {
	start := day(2024, time.March, 4)
	end := day(2024, time.March, 11)
	records := []domain.DailyBedOccupancy{
		occupancy(start, 1),
		occupancy(day(2024, time.March, 10), 2),
		occupancy(end, 4),
		occupancy(end.Add(time.Second), 100),
	}

	trend := OccupancyTrend(records, start, end, PeriodWeekly)
	assert.Equal(t, []TrendPoint{{Key: "2024-W10", TotalOccupancy: 3}, {Key: "2024-W11", TotalOccupancy: 4}}, trend)
}

func TestOccupancyTrendOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	records := make([]domain.DailyBedOccupancy, 120)
	for i := range records {
		records[i] = occupancy(day(2023, time.November, 1).AddDate(0, 0, i), rng.Intn(40))
	}
	start, end := day(2023, time.November, 1), day(2024, time.March, 1)

	want := OccupancyTrend(records, start, end, PeriodWeekly)
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.DailyBedOccupancy(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := OccupancyTrend(shuffled, start, end, PeriodWeekly)
		require.Equal(t, want, got)
	}
	for i := 1; i < len(want); i++ {
		assert.Less(t, want[i-1].Key, want[i].Key)
	}
}

func TestWeeklyTotalsSkipsEmptyWeeks(t *testing.T) {
	points := []DatedQuantity{
		{Date: day(2024, time.March, 5), Quantity: 10},
		{Date: day(2024, time.March, 10), Quantity: 20},
		{Date: day(2024, time.March, 30), Quantity: 5},
	}

	series := WeeklyTotals(points)
	assert.Equal(t, []string{"Week 1", "Week 2", "Week 5"}, series.Labels)
	assert.Equal(t, []float64{10, 20, 5}, series.Values)
}

func TestMonthWeekBreakdown(t *testing.T) {
	points := []DatedQuantity{
		{Date: day(2024, time.January, 3), Quantity: 4},
		{Date: day(2023, time.December, 30), Quantity: 1},
		{Date: day(2024, time.January, 20), Quantity: 6},
		{Date: day(2024, time.January, 2), Quantity: 2},
	}

	b := MonthWeekBreakdown(points)
	assert.Equal(t, Series{Labels: []string{"Dec 2023", "Jan 2024"}, Values: []float64{1, 12}}, b.Monthly)
	assert.Equal(t, Series{Labels: []string{"Week 1", "Week 3"}, Values: []float64{6, 6}}, b.WeeklyByMonth["Jan 2024"])
	assert.Equal(t, Series{Labels: []string{"Week 5"}, Values: []float64{1}}, b.WeeklyByMonth["Dec 2023"])
	assert.Equal(t, 13.0, b.Total)
}

func TestMonthWeekBreakdownEmpty(t *testing.T) {
	b := MonthWeekBreakdown(nil)
	assert.Empty(t, b.Monthly.Labels)
	assert.NotNil(t, b.Monthly.Labels)
	assert.Empty(t, b.WeeklyByMonth)
	assert.Zero(t, b.Total)
}
