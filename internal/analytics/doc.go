// Package analytics turns already-queried hospital records into dashboard views:
// rating averages and histograms, quadrant classification, calendar bucketing and
// period-over-period KPI comparison.
//
// Every function here is pure. Callers fetch a snapshot of records, hand it in,
// and get a value back; nothing is cached or written.
package analytics
