// ABOUTME: Today summary: one value per metric type for the current day plus goal progress.
// ABOUTME: Cumulative types are summed; measurements keep the most recently created value.
package analysis

import (
	"time"

	"github.com/harperreed/healthtrack/internal/models"
)

// TodayEntry is the day's value for one type.
type TodayEntry struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Count int     `json:"count"`
}

// GoalProgress is the percentage of each daily goal reached, capped at 100.
type GoalProgress struct {
	Steps float64 `json:"steps"`
	Water float64 `json:"water"`
	Sleep float64 `json:"sleep"`
}

// TodaySummary aggregates a single day's records.
type TodaySummary struct {
	Date     string                           `json:"date"`
	Metrics  map[models.MetricType]TodayEntry `json:"metrics"`
	Goals    models.HealthGoals               `json:"goals"`
	Progress GoalProgress                     `json:"progress"`
}

// SummarizeDay reduces records dated on day into a TodaySummary.
func SummarizeDay(records []*models.MetricRecord, goals models.HealthGoals, day time.Time) TodaySummary {
	day = models.DateOf(day)
	sum := TodaySummary{
		Date:    models.FormatDate(day),
		Metrics: map[models.MetricType]TodayEntry{},
		Goals:   goals,
	}

	latest := map[models.MetricType]time.Time{}
	for _, r := range records {
		if !models.DateOf(r.RecordDate).Equal(day) {
			continue
		}
		e := sum.Metrics[r.Type]
		e.Unit = r.Type.Unit()
		e.Count++
		switch {
		case r.Type.Cumulative():
			e.Value += r.Value
		case e.Count == 1 || r.CreatedAt.After(latest[r.Type]):
			e.Value = r.Value
			latest[r.Type] = r.CreatedAt
		}
		sum.Metrics[r.Type] = e
	}

	sum.Progress = GoalProgress{
		Steps: progress(sum.Metrics[models.MetricSteps].Value, float64(goals.StepsGoal)),
		Water: progress(sum.Metrics[models.MetricWater].Value, float64(goals.WaterGoal)),
		Sleep: progress(sum.Metrics[models.MetricSleep].Value, goals.SleepGoal),
	}
	return sum
}

func progress(value, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return *percentOf(value, goal)
}
