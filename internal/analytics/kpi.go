package analytics

import (
	"fmt"
	"time"
)

// Trend is the direction of a period-over-period change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Window is an inclusive time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Comparison is one KPI measured over the current and the previous window.
type Comparison struct {
	Current  float64
	Previous float64
	Change   float64
	Trend    Trend
}

// SatisfactionComparison adds the label of the period that was reported as current.
type SatisfactionComparison struct {
	Comparison
	Period   string
	Fallback bool
}

// ComparisonWindows returns month-to-date and the whole previous month, both in now's location.
func ComparisonWindows(now time.Time) (current, previous Window) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfPrevious := firstOfMonth.AddDate(0, -1, 0)
	current = Window{Start: firstOfMonth, End: now}
	previous = Window{Start: firstOfPrevious, End: firstOfMonth.Add(-time.Nanosecond)}
	return current, previous
}

// PercentChange is (current-previous)/previous*100, or 0 when previous is not positive.
// Growth from nothing therefore reads as 0%.
func PercentChange(current, previous float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	return 0
}

// TrendOf maps a change to its direction; zero counts as up.
func TrendOf(change float64) Trend {
	if change >= 0 {
		return TrendUp
	}
	return TrendDown
}

// Compare builds a comparison.
func Compare(current, previous float64) Comparison {
	change := PercentChange(current, previous)
	return Comparison{
		Current:  current,
		Previous: previous,
		Change:   change,
		Trend:    TrendOf(change),
	}
}

// Satisfaction compares average ratings. When the current period has no rated
// feedback the previous period is reported as current under its own label, which
// makes the change 0.
func Satisfaction(current, previous Average, currentLabel, previousLabel string) SatisfactionComparison {
	fallback := false
	if current.Empty() {
		current = previous
		currentLabel = previousLabel
		fallback = true
	}
	return SatisfactionComparison{
		Comparison: Compare(current.OrZero(), previous.OrZero()),
		Period:     currentLabel,
		Fallback:   fallback,
	}
}

// PeriodLabel formats a month as "October 2026", with " (till date)" for a running month.
func PeriodLabel(t time.Time, tillDate bool) string {
	label := fmt.Sprintf("%s %d", t.Month(), t.Year())
	if tillDate {
		label += " (till date)"
	}
	return label
}
