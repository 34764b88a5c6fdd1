// ABOUTME: Recommendation Composer ordering condition notices and metric advice.
// ABOUTME: Falls back to a single low-priority encouragement when nothing applies.
package analysis

import (
	"fmt"

	"github.com/harperreed/healthtrack/internal/models"
)

// Category groups a recommendation for display.
type Category string

const (
	CategoryPregnancy      Category = "pregnancy"
	CategoryRecovery       Category = "recovery"
	CategoryCardiovascular Category = "cardiovascular"
	CategoryBloodSugar     Category = "blood_sugar"
	CategoryJointCare      Category = "joint_care"
	CategoryWeight         Category = "weight"
	CategoryActivity       Category = "activity"
	CategorySleep          Category = "sleep"
	CategoryBloodPressure  Category = "blood_pressure"
	CategoryOverall        Category = "overall"
)

// Recommendation is one line of advice.
type Recommendation struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Advice   string   `json:"advice"`
}

var conditionNotices = []struct {
	set      func(models.Conditions) bool
	category Category
	advice   string
}{
	{
		func(c models.Conditions) bool { return c.Pregnant },
		CategoryPregnancy,
		"You are pregnant: follow your doctor's exercise advice, avoid high-intensity training, prefer walking or swimming, and keep up nutrition and hydration.",
	},
	{
		func(c models.Conditions) bool { return c.Recovering },
		CategoryRecovery,
		"You are in recovery: increase activity gradually, ideally under the guidance of a doctor or physiotherapist.",
	},
	{
		func(c models.Conditions) bool { return c.Cardiovascular },
		CategoryCardiovascular,
		"With a history of cardiovascular issues, have your heart checked regularly, avoid sudden strenuous effort, choose gentle aerobic exercise, and monitor blood pressure and heart rate.",
	},
	{
		func(c models.Conditions) bool { return c.Diabetes },
		CategoryBloodSugar,
		"With diabetes, monitor your blood sugar regularly, aim for 150 minutes of moderate exercise per week, and limit sugar and refined carbohydrates.",
	},
	{
		func(c models.Conditions) bool { return c.JointIssues },
		CategoryJointCare,
		"With joint issues, favor low-impact exercise such as swimming, cycling, or yoga, avoid high-impact activity, and add moderate strength training for support.",
	},
}

// ComposeRecommendations builds the ordered advice list. Condition notices
// come first, then metric advice in the order BMI, steps, sleep, heart rate,
// blood pressure. A nil profile contributes no condition notices.
func ComposeRecommendations(p *models.PersonalizationProfile, a Assessments) []Recommendation {
	var recs []Recommendation

	if p != nil {
		for _, n := range conditionNotices {
			if n.set(p.Conditions) {
				recs = append(recs, Recommendation{Category: n.category, Priority: PriorityHigh, Advice: n.advice})
			}
		}
	}

	if a.BMI != nil {
		switch a.BMI.Status {
		case StatusUnderweight:
			recs = append(recs, Recommendation{
				Category: CategoryWeight,
				Priority: PriorityMedium,
				Advice:   a.BMI.Advice + " Add protein and healthy fats, and pair them with strength training.",
			})
		case StatusOverweight, StatusObese:
			recs = append(recs, Recommendation{
				Category: CategoryWeight,
				Priority: a.BMI.Priority,
				Advice:   fmt.Sprintf("%s Aim for at least %d minutes of exercise per week.", a.BMI.Advice, weeklyExerciseMinutes(p)),
			})
		}
	}

	if a.Steps.Priority == PriorityHigh || a.Steps.Priority == PriorityMedium {
		recs = append(recs, Recommendation{Category: CategoryActivity, Priority: a.Steps.Priority, Advice: a.Steps.Advice})
	}
	if a.Sleep.Priority == PriorityHigh {
		recs = append(recs, Recommendation{Category: CategorySleep, Priority: PriorityHigh, Advice: a.Sleep.Advice})
	}
	if a.HeartRate.Priority == PriorityHigh {
		recs = append(recs, Recommendation{Category: CategoryCardiovascular, Priority: PriorityHigh, Advice: a.HeartRate.Advice})
	}
	if a.BloodPressure.Priority == PriorityHigh {
		recs = append(recs, Recommendation{Category: CategoryBloodPressure, Priority: PriorityHigh, Advice: a.BloodPressure.Advice})
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Category: CategoryOverall,
			Priority: PriorityLow,
			Advice:   "Your health indicators look good! Keep up your healthy lifestyle and get regular checkups.",
		})
	}
	return recs
}

// weeklyExerciseMinutes is the exercise target for weight advice: sedentary
// users and users without a profile start at 150 minutes.
func weeklyExerciseMinutes(p *models.PersonalizationProfile) int {
	if p == nil || p.ActivityLevel == models.ActivitySedentary {
		return 150
	}
	return 200
}
