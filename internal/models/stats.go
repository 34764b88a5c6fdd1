// ABOUTME: Aggregate shapes shared by the record store and the trend reducer.
// ABOUTME: Statistics summarize a range; DailyValue is one point of a trend.
package models

import "time"

// Statistics summarizes all records of one type over a date range.
type Statistics struct {
	Type    MetricType `json:"type"`
	Count   int        `json:"count"`
	Average float64    `json:"avg_value"`
	Min     float64    `json:"min_value"`
	Max     float64    `json:"max_value"`
	Sum     float64    `json:"total_value"`
}

// DailyValue is one (date, type) bucket of records.
type DailyValue struct {
	Date  time.Time  `json:"-"`
	Type  MetricType `json:"type"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
}
