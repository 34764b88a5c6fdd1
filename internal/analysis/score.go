// ABOUTME: Score Aggregator combining assessments and condition flags into a 0-100 health score.
// ABOUTME: Point tables are data so the generic and personalized models share one function.
package analysis

import "github.com/harperreed/healthtrack/internal/models"

// ConditionPenalties are subtracted once per set flag.
type ConditionPenalties struct {
	Cardiovascular int
	Diabetes       int
	JointIssues    int
	Pregnant       int
	Recovering     int
}

// ScoreWeights assigns points per assessment status. Statuses missing from a
// map earn nothing.
type ScoreWeights struct {
	Base          int
	BMI           map[Status]int
	Steps         map[Status]int
	Sleep         map[Status]int
	HeartRate     map[Status]int
	BloodPressure map[Status]int
	Penalties     ConditionPenalties
}

// GenericScoreWeights is the point table used without a profile. It applies
// no condition penalties.
func GenericScoreWeights() ScoreWeights {
	return ScoreWeights{
		Base:          60,
		BMI:           map[Status]int{StatusNormal: 20, StatusUnderweight: 10, StatusOverweight: 10},
		Steps:         map[Status]int{StatusOptimal: 15, StatusBelowOptimal: 10, StatusBelowMinimum: 5},
		Sleep:         map[Status]int{StatusOptimal: 10, StatusInsufficient: 5, StatusExcessive: 5},
		HeartRate:     map[Status]int{StatusNormal: 5, StatusVeryLow: 2, StatusElevated: 2},
		BloodPressure: map[Status]int{StatusOptimal: 5, StatusElevated: 2},
	}
}

// PersonalizedScoreWeights is the point table used with a profile.
func PersonalizedScoreWeights() ScoreWeights {
	return ScoreWeights{
		Base:          60,
		BMI:           map[Status]int{StatusNormal: 20, StatusUnderweight: 10, StatusOverweight: 10},
		Steps:         map[Status]int{StatusOptimal: 20, StatusBelowOptimal: 10, StatusBelowMinimum: 5},
		Sleep:         map[Status]int{StatusOptimal: 15, StatusInsufficient: 5, StatusExcessive: 5},
		HeartRate:     map[Status]int{StatusNormal: 15, StatusVeryLow: 5, StatusElevated: 5},
		BloodPressure: map[Status]int{StatusOptimal: 15, StatusElevated: 5},
		Penalties: ConditionPenalties{
			Cardiovascular: 10,
			Diabetes:       10,
			JointIssues:    5,
			Pregnant:       5,
			Recovering:     5,
		},
	}
}

// ComputeHealthScore sums the base score, status bonuses, and condition
// penalties, clamped to [0,100].
func ComputeHealthScore(a Assessments, flags models.Conditions, w ScoreWeights) int {
	score := w.Base

	if a.BMI != nil {
		score += w.BMI[a.BMI.Status]
	}
	score += w.Steps[a.Steps.Status]
	score += w.Sleep[a.Sleep.Status]
	score += w.HeartRate[a.HeartRate.Status]
	score += w.BloodPressure[a.BloodPressure.Status]

	penalties := []struct {
		set    bool
		amount int
	}{
		{flags.Cardiovascular, w.Penalties.Cardiovascular},
		{flags.Diabetes, w.Penalties.Diabetes},
		{flags.JointIssues, w.Penalties.JointIssues},
		{flags.Pregnant, w.Penalties.Pregnant},
		{flags.Recovering, w.Penalties.Recovering},
	}
	for _, p := range penalties {
		if p.set {
			score = max(0, score-p.amount)
		}
	}

	return min(100, max(0, score))
}
