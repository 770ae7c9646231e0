package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComparisonWindows(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)
	current, previous := ComparisonWindows(now)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), current.Start)
	assert.Equal(t, now, current.End)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), previous.Start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 999999999, time.UTC), previous.End)
}

func TestComparisonWindowsAcrossYear(t *testing.T) {
	current, previous := ComparisonWindows(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), current.Start)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), previous.Start)
	assert.Equal(t, 31, previous.End.Day())
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 50.0, PercentChange(150, 100), 1e-9)
	assert.InDelta(t, -25.0, PercentChange(75, 100), 1e-9)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		cur := rng.Float64() * 1000
		assert.Zero(t, PercentChange(cur, 0))
		prev := 1 + rng.Float64()*1000
		assert.Zero(t, PercentChange(prev, prev))
	}
}

func TestCompareTrend(t *testing.T) {
	assert.Equal(t, TrendUp, Compare(10, 10).Trend)
	assert.Equal(t, TrendUp, Compare(5, 0).Trend)
	assert.Equal(t, TrendDown, Compare(9, 10).Trend)
	assert.Equal(t, Comparison{Current: 12, Previous: 8, Change: 50, Trend: TrendUp}, Compare(12, 8))
}

func TestSatisfactionFallsBackToPreviousPeriod(t *testing.T) {
	previous := Mean([]float64{4, 3})
	s := Satisfaction(Average{}, previous, "March 2026 (till date)", "February 2026")

	assert.True(t, s.Fallback)
	assert.Equal(t, "February 2026", s.Period)
	assert.InDelta(t, 3.5, s.Current, 1e-9)
	assert.Zero(t, s.Change)
	assert.Equal(t, TrendUp, s.Trend)
}

func TestSatisfactionCurrentPeriod(t *testing.T) {
	s := Satisfaction(Mean([]float64{5, 4}), Mean([]float64{3}), "March 2026 (till date)", "February 2026")

	assert.False(t, s.Fallback)
	assert.Equal(t, "March 2026 (till date)", s.Period)
	assert.InDelta(t, 50.0, s.Change, 1e-9)
}

func TestSatisfactionBothEmpty(t *testing.T) {
	s := Satisfaction(Average{}, Average{}, "a", "b")
	assert.Zero(t, s.Current)
	assert.Zero(t, s.Change)
	assert.Equal(t, "b", s.Period)
}

func TestPeriodLabel(t *testing.T) {
	at := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "October 2026 (till date)", PeriodLabel(at, true))
	assert.Equal(t, "October 2026", PeriodLabel(at, false))
}
