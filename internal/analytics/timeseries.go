package analytics

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// Series is an index-aligned label/value sequence.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// TrendPoint is one occupancy bucket.
type TrendPoint struct {
	Key            string
	TotalOccupancy int
}

// DatedQuantity is a quantity observed at a point in time.
type DatedQuantity struct {
	Date     time.Time
	Quantity float64
}

// MonthBucket is one calendar month total.
type MonthBucket struct {
	Year  int
	Month time.Month
	Label string
	Total float64
}

// Breakdown is a monthly series with a week-of-month series per month.
type Breakdown struct {
	Monthly       Series
	WeeklyByMonth map[string]Series
	Total         float64
}

// OccupancyTrend sums occupancy per period bucket for records dated within
// [start, end]. Buckets are returned in ascending key order.
func OccupancyTrend(records []domain.DailyBedOccupancy, start, end time.Time, period Period) []TrendPoint {
	sums := map[string]int{}
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		sums[period.Key(r.Date)] += r.OccupancyCount
	}

	keys := lo.Keys(sums)
	sort.Strings(keys)

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, TrendPoint{Key: key, TotalOccupancy: sums[key]})
	}
	return points
}

// MonthlyTotals sums quantities per calendar month in chronological order.
func MonthlyTotals(points []DatedQuantity) []MonthBucket {
	type monthKey struct {
		year  int
		month time.Month
	}
	sums := map[monthKey]float64{}
	for _, p := range points {
		sums[monthKey{p.Date.Year(), p.Date.Month()}] += p.Quantity
	}

	keys := lo.Keys(sums)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	months := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		months = append(months, MonthBucket{
			Year:  k.year,
			Month: k.month,
			Label: MonthLabel(k.year, k.month),
			Total: sums[k],
		})
	}
	return months
}

// WeeklyTotals sums quantities per week-of-month in ascending week order.
func WeeklyTotals(points []DatedQuantity) Series {
	sums := map[int]float64{}
	for _, p := range points {
		sums[WeekOfMonth(p.Date)] += p.Quantity
	}

	weeks := lo.Keys(sums)
	sort.Ints(weeks)

	series := Series{Labels: make([]string, 0, len(weeks)), Values: make([]float64, 0, len(weeks))}
	for _, w := range weeks {
		series.Labels = append(series.Labels, WeekLabel(w))
		series.Values = append(series.Values, sums[w])
	}
	return series
}

// SeriesOf flattens month buckets into a series.
func SeriesOf(months []MonthBucket) Series {
	series := Series{Labels: make([]string, 0, len(months)), Values: make([]float64, 0, len(months))}
	for _, m := range months {
		series.Labels = append(series.Labels, m.Label)
		series.Values = append(series.Values, m.Total)
	}
	return series
}

// MonthWeekBreakdown groups points by month, then by week-of-month within each month.
func MonthWeekBreakdown(points []DatedQuantity) Breakdown {
	months := MonthlyTotals(points)
	byMonth := lo.GroupBy(points, func(p DatedQuantity) string {
		return MonthLabel(p.Date.Year(), p.Date.Month())
	})

	breakdown := Breakdown{
		Monthly:       SeriesOf(months),
		WeeklyByMonth: make(map[string]Series, len(months)),
	}
	for _, m := range months {
		breakdown.WeeklyByMonth[m.Label] = WeeklyTotals(byMonth[m.Label])
		breakdown.Total += m.Total
	}
	return breakdown
}
