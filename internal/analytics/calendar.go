package analytics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidPeriod is returned for an unknown trend granularity.
	ErrInvalidPeriod = errors.New("invalid period, valid options are weekly or monthly")
	// ErrInvalidDate is returned for a date string no supported layout can parse.
	ErrInvalidDate = errors.New("invalid date format")
)

var monthAbbreviations = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Period is a trend granularity.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a period token.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", ErrInvalidPeriod
}

// Key returns the bucket key of t for this period.
func (p Period) Key(t time.Time) string {
	if p == PeriodWeekly {
		return ISOWeekKey(t)
	}
	return MonthKey(t)
}

// Field is the JSON field name the dashboard uses for this period's key.
func (p Period) Field() string {
	if p == PeriodWeekly {
		return "week"
	}
	return "month"
}

// MonthKey formats t as "2006-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ISOWeekKey formats t as ISO week-year and zero padded week, e.g. "2024-W09".
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel formats a month as "Mar 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[month-1], year)
}

// ParseMonthLabel reverses MonthLabel.
func ParseMonthLabel(label string) (int, time.Month, error) {
	name, yearStr, ok := strings.Cut(label, " ")
	if !ok {
		return 0, 0, fmt.Errorf("invalid month label %q", label)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month label %q", label)
	}
	for i, abbr := range monthAbbreviations {
		if abbr == name {
			return year, time.Month(i + 1), nil
		}
	}
	return 0, 0, fmt.Errorf("invalid month label %q", label)
}

// WeekOfMonth is ceil(day/7). It is a plain day count, not calendar-week aligned,
// so days 29-31 fall in week 5.
func WeekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

// WeekLabel formats a week-of-month as "Week 3".
func WeekLabel(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the first instant of the month and the first instant of the next.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, 0)
}

// ParseDate accepts RFC3339 timestamps and plain dates. Values without an offset
// are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
