// ABOUTME: Trend/Statistics Reducer turning raw records into daily points and range summaries.
// ABOUTME: Cumulative types sum per day; the rest average per day rounded to one decimal.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/harperreed/healthtrack/internal/models"
)

// Period is a trend window preset.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
)

var periodDays = map[Period]int{
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
}

// ParsePeriod maps s to a preset, defaulting to a week for unknown values.
func ParsePeriod(s string) Period {
	if p, ok := LookupPeriod(s); ok {
		return p
	}
	return PeriodWeek
}

// LookupPeriod reports whether s names a preset.
func LookupPeriod(s string) (Period, bool) {
	p := Period(s)
	_, ok := periodDays[p]
	return p, ok
}

// Days is the number of days the period reaches back.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[PeriodWeek]
}

// Range returns [today-Days, today] for the day containing now.
func (p Period) Range(now time.Time) (start, end time.Time) {
	end = models.DateOf(now)
	return end.AddDate(0, 0, -p.Days()), end
}

// TrendPoint is one day's reduced value.
type TrendPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Trend is the daily series for one metric type over a period.
type Trend struct {
	Type      models.MetricType `json:"type"`
	Period    Period            `json:"period"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Points    []TrendPoint      `json:"points"`
}

// ReduceTrend groups records of type t within the period ending on now's date
// into one point per day, ordered by date. Days without records are absent.
func ReduceTrend(records []*models.MetricRecord, t models.MetricType, period Period, now time.Time) Trend {
	start, end := period.Range(now)
	trend := Trend{
		Type:      t,
		Period:    period,
		StartDate: models.FormatDate(start),
		EndDate:   models.FormatDate(end),
		Points:    []TrendPoint{},
	}

	for _, dv := range DailyValues(records, t, start, end) {
		trend.Points = append(trend.Points, TrendPoint{
			Date:  models.FormatDate(dv.Date),
			Value: dv.Value,
			Count: dv.Count,
		})
	}
	return trend
}

// DailyValues buckets records of type t dated within [start, end] by day.
func DailyValues(records []*models.MetricRecord, t models.MetricType, start, end time.Time) []models.DailyValue {
	start, end = models.DateOf(start), models.DateOf(end)
	buckets := map[time.Time]*models.DailyValue{}

	for _, r := range records {
		if r.Type != t {
			continue
		}
		day := models.DateOf(r.RecordDate)
		if day.Before(start) || day.After(end) {
			continue
		}
		b, ok := buckets[day]
		if !ok {
			b = &models.DailyValue{Date: day, Type: t}
			buckets[day] = b
		}
		b.Value += r.Value
		b.Count++
	}

	out := make([]models.DailyValue, 0, len(buckets))
	for _, b := range buckets {
		if !t.Cumulative() {
			b.Value = round1(b.Value / float64(b.Count))
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ReduceStatistics summarizes every record of type t. Count is zero and the
// other fields are zero when no record matches.
func ReduceStatistics(records []*models.MetricRecord, t models.MetricType) models.Statistics {
	s := models.Statistics{Type: t}
	for _, r := range records {
		if r.Type != t {
			continue
		}
		if s.Count == 0 {
			s.Min, s.Max = r.Value, r.Value
		}
		s.Count++
		s.Sum += r.Value
		s.Min = math.Min(s.Min, r.Value)
		s.Max = math.Max(s.Max, r.Value)
	}
	if s.Count > 0 {
		s.Average = round1(s.Sum / float64(s.Count))
	}
	return s
}
