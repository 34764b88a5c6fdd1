// ABOUTME: Tests for the Recommendation Composer.
// ABOUTME: Verifies condition-first ordering, metric filters, and the encouragement fallback.
package analysis

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

func categories(recs []Recommendation) []Category {
	out := make([]Category, len(recs))
	for i, r := range recs {
		out[i] = r.Category
	}
	return out
}

func TestComposeRecommendationsOrder(t *testing.T) {
	p := models.NewPersonalizationProfile(uuid.New(), models.AgeAdult)
	p.ActivityLevel = models.ActivitySedentary
	p.Conditions = models.Conditions{Pregnant: true, Diabetes: true}

	std := GenericStandards()
	a := Assessments{
		BMI:           ClassifyBMI(32, std.BMI),
		Steps:         AssessSteps(fp(1000), std.Steps, nil),
		Sleep:         AssessSleep(fp(5), std.Sleep),
		HeartRate:     AssessHeartRate(fp(70), std.HeartRate),
		BloodPressure: AssessBloodPressure(fp(150), fp(95), std.BloodPressure),
	}

	recs := ComposeRecommendations(p, a)
	want := []Category{CategoryPregnancy, CategoryBloodSugar, CategoryWeight, CategoryActivity, CategorySleep, CategoryBloodPressure}

	got := categories(recs)
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recs[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if recs[0].Priority != PriorityHigh || recs[1].Priority != PriorityHigh {
		t.Error("condition notices should be high priority")
	}
	if recs[2].Priority != PriorityHigh {
		t.Errorf("obese weight advice priority = %s, want high", recs[2].Priority)
	}
	if !strings.Contains(recs[2].Advice, "150 minutes") {
		t.Errorf("sedentary weight advice should target 150 minutes: %q", recs[2].Advice)
	}
}

func TestComposeRecommendationsConditionOrder(t *testing.T) {
	p := models.NewPersonalizationProfile(uuid.New(), models.AgeAdult)
	p.Conditions = models.Conditions{Cardiovascular: true, Diabetes: true, JointIssues: true, Pregnant: true, Recovering: true}

	got := categories(ComposeRecommendations(p, Assessments{}))
	want := []Category{CategoryPregnancy, CategoryRecovery, CategoryCardiovascular, CategoryBloodSugar, CategoryJointCare}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recs[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestComposeRecommendationsActiveWeightTarget(t *testing.T) {
	p := models.NewPersonalizationProfile(uuid.New(), models.AgeAdult)
	a := Assessments{BMI: ClassifyBMI(26, GenericStandards().BMI)}

	recs := ComposeRecommendations(p, a)
	if len(recs) != 1 || recs[0].Category != CategoryWeight || recs[0].Priority != PriorityMedium {
		t.Fatalf("recs = %+v", recs)
	}
	if !strings.Contains(recs[0].Advice, "200 minutes") {
		t.Errorf("advice %q should target 200 minutes", recs[0].Advice)
	}
}

func TestComposeRecommendationsSkipsLowPriorityMetrics(t *testing.T) {
	std := GenericStandards()
	a := Assessments{
		BMI:           ClassifyBMI(22, std.BMI),
		Steps:         AssessSteps(fp(11000), std.Steps, nil),
		Sleep:         AssessSleep(fp(10.5), std.Sleep),
		HeartRate:     AssessHeartRate(fp(50), std.HeartRate),
		BloodPressure: AssessBloodPressure(fp(125), fp(75), std.BloodPressure),
	}

	recs := ComposeRecommendations(nil, a)
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want the fallback only: %+v", len(recs), recs)
	}
	if recs[0].Category != CategoryOverall || recs[0].Priority != PriorityLow {
		t.Errorf("fallback = %+v", recs[0])
	}
}

func TestComposeRecommendationsEmptyInputs(t *testing.T) {
	recs := ComposeRecommendations(nil, Assessments{})
	if len(recs) != 1 || recs[0].Priority != PriorityLow {
		t.Errorf("recs = %+v, want a single low-priority entry", recs)
	}
}
