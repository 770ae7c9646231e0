package domain

import "time"

// KPISnapshot is a persisted copy of the dashboard KPIs taken by the daily job.
type KPISnapshot struct {
	ID                   string
	CapturedAt           time.Time
	PeriodLabel          string
	PatientsCurrent      int64
	PatientsPrevious     int64
	RevenueCurrent       float64
	RevenuePrevious      float64
	SatisfactionCurrent  float64
	SatisfactionPrevious float64
	SatisfactionPeriod   string
	CreatedAt            time.Time
}
