// ABOUTME: Tests for the Score Aggregator.
// ABOUTME: Checks the worked example, the [0,100] bound, and that condition flags never raise the score.
package analysis

import (
	"testing"

	"github.com/harperreed/healthtrack/internal/models"
)

func bestAssessments() Assessments {
	return Assessments{
		BMI:           &BMIAssessment{Verdict: Verdict{Status: StatusNormal}},
		Steps:         StepsAssessment{Verdict: Verdict{Status: StatusOptimal}},
		Sleep:         SleepAssessment{Verdict: Verdict{Status: StatusOptimal}},
		HeartRate:     HeartRateAssessment{Verdict: Verdict{Status: StatusNormal}},
		BloodPressure: BloodPressureAssessment{Verdict: Verdict{Status: StatusOptimal}},
	}
}

func TestComputeHealthScoreClampsExample(t *testing.T) {
	got := ComputeHealthScore(bestAssessments(), models.Conditions{}, PersonalizedScoreWeights())
	if got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestComputeHealthScoreGeneric(t *testing.T) {
	a := Assessments{
		BMI:           &BMIAssessment{Verdict: Verdict{Status: StatusOverweight}},
		Steps:         StepsAssessment{Verdict: Verdict{Status: StatusBelowOptimal}},
		Sleep:         SleepAssessment{Verdict: Verdict{Status: StatusInsufficient}},
		HeartRate:     HeartRateAssessment{Verdict: Verdict{Status: StatusElevated}},
		BloodPressure: BloodPressureAssessment{Verdict: Verdict{Status: StatusHigh}},
	}
	// 60 + 10 + 10 + 5 + 2 + 0
	if got := ComputeHealthScore(a, models.Conditions{Diabetes: true}, GenericScoreWeights()); got != 87 {
		t.Errorf("score = %d, want 87", got)
	}
}

func TestComputeHealthScoreUnknownsAndPenalties(t *testing.T) {
	all := models.Conditions{Cardiovascular: true, Diabetes: true, JointIssues: true, Pregnant: true, Recovering: true}
	if got := ComputeHealthScore(Assessments{}, models.Conditions{}, PersonalizedScoreWeights()); got != 60 {
		t.Errorf("empty score = %d, want 60", got)
	}
	if got := ComputeHealthScore(Assessments{}, all, PersonalizedScoreWeights()); got != 25 {
		t.Errorf("penalized score = %d, want 25", got)
	}
}

func TestComputeHealthScoreFloorsAtZero(t *testing.T) {
	w := PersonalizedScoreWeights()
	w.Base = 5
	got := ComputeHealthScore(Assessments{}, models.Conditions{Cardiovascular: true, Diabetes: true}, w)
	if got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func conditionsFromMask(mask int) models.Conditions {
	return models.Conditions{
		Cardiovascular: mask&1 != 0,
		Diabetes:       mask&2 != 0,
		JointIssues:    mask&4 != 0,
		Pregnant:       mask&8 != 0,
		Recovering:     mask&16 != 0,
	}
}

func TestComputeHealthScoreFlagsNeverIncrease(t *testing.T) {
	inputs := []Assessments{{}, bestAssessments()}
	mid := bestAssessments()
	mid.Steps.Status = StatusBelowMinimum
	mid.BMI = nil
	inputs = append(inputs, mid)

	for _, w := range []ScoreWeights{GenericScoreWeights(), PersonalizedScoreWeights()} {
		for _, a := range inputs {
			for mask := 0; mask < 32; mask++ {
				base := ComputeHealthScore(a, conditionsFromMask(mask), w)
				if base < 0 || base > 100 {
					t.Fatalf("score %d out of range", base)
				}
				for bit := 0; bit < 5; bit++ {
					if mask&(1<<bit) != 0 {
						continue
					}
					with := ComputeHealthScore(a, conditionsFromMask(mask|1<<bit), w)
					if with > base {
						t.Errorf("setting flag %d raised score from %d to %d", bit, base, with)
					}
				}
			}
		}
	}
}
