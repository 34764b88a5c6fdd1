// ABOUTME: Tests for the metric assessors.
// ABOUTME: Covers BMI bands, step bands and percentages, heart rate, sleep, and blood pressure.
package analysis

import (
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		height float64
		want   *float64
	}{
		{"normal", 70, 175, fp(22.9)},
		{"zero weight", 0, 175, nil},
		{"negative height", 70, -1, nil},
		{"zero height", 70, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBMI(tt.weight, tt.height)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("CalculateBMI = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("CalculateBMI = %v, want %v", got, *tt.want)
			}
		})
	}
}

func TestAssessBMIUnavailable(t *testing.T) {
	std := GenericStandards().BMI
	if AssessBMI(nil, fp(175), std) != nil {
		t.Error("expected nil without weight")
	}
	if AssessBMI(fp(70), nil, std) != nil {
		t.Error("expected nil without height")
	}
	if AssessBMI(fp(70), fp(0), std) != nil {
		t.Error("expected nil for zero height")
	}
}

func TestClassifyBMIBands(t *testing.T) {
	std := GenericStandards().BMI
	tests := []struct {
		bmi      float64
		status   Status
		priority Priority
	}{
		{17, StatusUnderweight, PriorityMedium},
		{18.5, StatusNormal, PriorityLow},
		{24, StatusNormal, PriorityLow},
		{24.1, StatusOverweight, PriorityMedium},
		{29, StatusOverweight, PriorityMedium},
		{29.1, StatusObese, PriorityHigh},
	}
	for _, tt := range tests {
		a := ClassifyBMI(tt.bmi, std)
		if a.Status != tt.status || a.Priority != tt.priority {
			t.Errorf("ClassifyBMI(%v) = %s/%s, want %s/%s", tt.bmi, a.Status, a.Priority, tt.status, tt.priority)
		}
	}
}

func TestClassifyBMIMonotonic(t *testing.T) {
	rank := map[Status]int{StatusUnderweight: 0, StatusNormal: 1, StatusOverweight: 2, StatusObese: 3}
	std := GenericStandards().BMI

	prev := -1
	for bmi := 10.0; bmi <= 45; bmi += 0.1 {
		r, ok := rank[ClassifyBMI(bmi, std).Status]
		if !ok {
			t.Fatalf("unexpected status at %v", bmi)
		}
		if r < prev {
			t.Fatalf("status moved to a thinner band at bmi %v", bmi)
		}
		prev = r
	}
}

func TestAssessSteps(t *testing.T) {
	std := RangeStandards{Min: 5000, Optimal: 10000, Max: 15000}
	tests := []struct {
		steps    float64
		status   Status
		priority Priority
		percent  float64
	}{
		{0, StatusBelowMinimum, PriorityHigh, 0},
		{2500, StatusBelowMinimum, PriorityHigh, 50},
		{5000, StatusBelowOptimal, PriorityMedium, 50},
		{9999, StatusBelowOptimal, PriorityMedium, 100},
		{10000, StatusOptimal, PriorityLow, 100},
		{12000, StatusOptimal, PriorityLow, 100},
		{15000, StatusOptimal, PriorityLow, 100},
		{20000, StatusExcessive, PriorityMedium, 100},
	}
	for _, tt := range tests {
		a := AssessSteps(fp(tt.steps), std, fp(8000))
		if a.Status != tt.status || a.Priority != tt.priority {
			t.Errorf("AssessSteps(%v) = %s/%s, want %s/%s", tt.steps, a.Status, a.Priority, tt.status, tt.priority)
		}
		if a.Percentage == nil || *a.Percentage != tt.percent {
			t.Errorf("AssessSteps(%v) percentage = %v, want %v", tt.steps, a.Percentage, tt.percent)
		}
		if *a.Percentage < 0 || *a.Percentage > 100 {
			t.Errorf("percentage %v out of range", *a.Percentage)
		}
		if a.UserGoal == nil || *a.UserGoal != 8000 {
			t.Errorf("UserGoal not carried through")
		}
	}
}

func TestAssessStepsUnknown(t *testing.T) {
	a := AssessSteps(nil, GenericStandards().Steps, nil)
	if a.Status != StatusUnknown {
		t.Errorf("Status = %s, want unknown", a.Status)
	}
	if a.Priority != "" || a.Percentage != nil {
		t.Errorf("unknown assessment should carry no priority or percentage: %+v", a)
	}
	if a.Known() {
		t.Error("Known() = true for unknown status")
	}
}

func TestAssessHeartRate(t *testing.T) {
	std := GenericStandards().HeartRate
	tests := []struct {
		hr       float64
		status   Status
		priority Priority
	}{
		{50, StatusVeryLow, PriorityMedium},
		{60, StatusNormal, PriorityLow},
		{80, StatusNormal, PriorityLow},
		{95, StatusElevated, PriorityHigh},
	}
	for _, tt := range tests {
		a := AssessHeartRate(fp(tt.hr), std)
		if a.Status != tt.status || a.Priority != tt.priority {
			t.Errorf("AssessHeartRate(%v) = %s/%s, want %s/%s", tt.hr, a.Status, a.Priority, tt.status, tt.priority)
		}
	}
	if AssessHeartRate(nil, std).Status != StatusUnknown {
		t.Error("expected unknown without a value")
	}
}

func TestAssessSleep(t *testing.T) {
	std := GenericStandards().Sleep
	tests := []struct {
		hours    float64
		status   Status
		priority Priority
	}{
		{5.5, StatusInsufficient, PriorityHigh},
		{7, StatusOptimal, PriorityLow},
		{9, StatusOptimal, PriorityLow},
		{10.5, StatusExcessive, PriorityMedium},
	}
	for _, tt := range tests {
		a := AssessSleep(fp(tt.hours), std)
		if a.Status != tt.status || a.Priority != tt.priority {
			t.Errorf("AssessSleep(%v) = %s/%s, want %s/%s", tt.hours, a.Status, a.Priority, tt.status, tt.priority)
		}
	}
}

func TestAssessBloodPressure(t *testing.T) {
	std := GenericStandards().BloodPressure
	tests := []struct {
		sys, dia float64
		status   Status
		priority Priority
	}{
		{115, 75, StatusOptimal, PriorityLow},
		{125, 75, StatusElevated, PriorityMedium},
		{115, 85, StatusElevated, PriorityMedium},
		{140, 80, StatusHigh, PriorityHigh},
		{150, 95, StatusHigh, PriorityHigh},
	}
	for _, tt := range tests {
		a := AssessBloodPressure(fp(tt.sys), fp(tt.dia), std)
		if a.Status != tt.status || a.Priority != tt.priority {
			t.Errorf("AssessBloodPressure(%v/%v) = %s/%s, want %s/%s", tt.sys, tt.dia, a.Status, a.Priority, tt.status, tt.priority)
		}
	}
}

func TestAssessBloodPressureAdviceMentionsBothValues(t *testing.T) {
	a := AssessBloodPressure(fp(150), fp(95), GenericStandards().BloodPressure)
	if !strings.Contains(a.Advice, "150") || !strings.Contains(a.Advice, "95") {
		t.Errorf("advice %q should mention 150 and 95", a.Advice)
	}
}

func TestAssessBloodPressureNeedsBoth(t *testing.T) {
	std := GenericStandards().BloodPressure
	if AssessBloodPressure(fp(120), nil, std).Status != StatusUnknown {
		t.Error("expected unknown without diastolic")
	}
	if AssessBloodPressure(nil, fp(80), std).Status != StatusUnknown {
		t.Error("expected unknown without systolic")
	}
}
