// ABOUTME: Metric assessors for BMI, steps, heart rate, sleep, and blood pressure.
// ABOUTME: Pure functions mapping a current value and standards to a status, advice, and priority.
package analysis

import (
	"fmt"
	"math"
)

// Status is the verdict of one assessor.
type Status string

const (
	StatusUnknown Status = "unknown"

	StatusUnderweight Status = "underweight"
	StatusNormal      Status = "normal"
	StatusOverweight  Status = "overweight"
	StatusObese       Status = "obese"

	StatusBelowMinimum Status = "below_minimum"
	StatusBelowOptimal Status = "below_optimal"
	StatusOptimal      Status = "optimal"
	StatusExcessive    Status = "excessive"

	StatusVeryLow  Status = "very_low"
	StatusElevated Status = "elevated"

	StatusInsufficient Status = "insufficient"

	StatusHigh Status = "high"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Verdict is shared by every assessment. Priority and Advice are empty when
// the status is unknown.
type Verdict struct {
	Status   Status   `json:"status"`
	Advice   string   `json:"advice,omitempty"`
	Priority Priority `json:"priority,omitempty"`
}

// Known reports whether the assessor had a value to judge.
func (v Verdict) Known() bool {
	return v.Status != "" && v.Status != StatusUnknown
}

// BMIAssessment classifies a body mass index.
type BMIAssessment struct {
	BMI        float64 `json:"bmi"`
	OptimalMin float64 `json:"min"`
	OptimalMax float64 `json:"max"`
	Verdict
}

// StepsAssessment judges a daily step count. UserGoal is display-only.
type StepsAssessment struct {
	Current    *float64 `json:"current"`
	Min        float64  `json:"min"`
	Optimal    float64  `json:"optimal"`
	Max        float64  `json:"max"`
	UserGoal   *float64 `json:"user_goal,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Verdict
}

// HeartRateAssessment judges a resting heart rate.
type HeartRateAssessment struct {
	Current *float64 `json:"current"`
	Min     float64  `json:"min"`
	Normal  float64  `json:"normal"`
	Max     float64  `json:"max"`
	Verdict
}

// SleepAssessment judges hours slept.
type SleepAssessment struct {
	Current *float64 `json:"current"`
	Min     float64  `json:"min"`
	Optimal float64  `json:"optimal"`
	Max     float64  `json:"max"`
	Verdict
}

// BloodPressureAssessment judges a systolic/diastolic pair.
type BloodPressureAssessment struct {
	Systolic        *float64 `json:"systolic"`
	Diastolic       *float64 `json:"diastolic"`
	NormalSystolic  float64  `json:"normal_systolic"`
	NormalDiastolic float64  `json:"normal_diastolic"`
	Verdict
}

// Assessments groups the per-metric verdicts of one analysis. BMI is nil when
// weight or height is unavailable.
type Assessments struct {
	BMI           *BMIAssessment          `json:"bmi"`
	Steps         StepsAssessment         `json:"steps"`
	HeartRate     HeartRateAssessment     `json:"heart_rate"`
	Sleep         SleepAssessment         `json:"sleep"`
	BloodPressure BloodPressureAssessment `json:"blood_pressure"`
}

// CalculateBMI returns weight / (height in m)^2 rounded to one decimal, or
// nil when either input is not positive.
func CalculateBMI(weight, heightCm float64) *float64 {
	if weight <= 0 || heightCm <= 0 {
		return nil
	}
	m := heightCm / 100
	bmi := round1(weight / (m * m))
	return &bmi
}

// AssessBMI classifies the BMI for weight and height. It returns nil when the
// BMI cannot be computed.
func AssessBMI(weight, heightCm *float64, std BMIStandards) *BMIAssessment {
	if weight == nil || heightCm == nil {
		return nil
	}
	bmi := CalculateBMI(*weight, *heightCm)
	if bmi == nil {
		return nil
	}
	return ClassifyBMI(*bmi, std)
}

// ClassifyBMI maps a BMI value to its band.
func ClassifyBMI(bmi float64, std BMIStandards) *BMIAssessment {
	a := &BMIAssessment{BMI: bmi, OptimalMin: std.OptimalMin, OptimalMax: std.OptimalMax}
	band := fmt.Sprintf("%g-%g", std.OptimalMin, std.OptimalMax)

	switch {
	case bmi < std.OptimalMin:
		a.Verdict = Verdict{
			Status:   StatusUnderweight,
			Priority: PriorityMedium,
			Advice:   fmt.Sprintf("Your BMI is %.1f, below the healthy range of %s. Consider increasing your nutritional intake.", bmi, band),
		}
	case bmi <= std.OptimalMax:
		a.Verdict = Verdict{
			Status:   StatusNormal,
			Priority: PriorityLow,
			Advice:   fmt.Sprintf("Your BMI is %.1f, within the healthy range of %s. Keep it up!", bmi, band),
		}
	case bmi <= std.OptimalMax+std.OverweightMargin:
		a.Verdict = Verdict{
			Status:   StatusOverweight,
			Priority: PriorityMedium,
			Advice:   fmt.Sprintf("Your BMI is %.1f, above the healthy range of %s. Consider more exercise.", bmi, band),
		}
	default:
		a.Verdict = Verdict{
			Status:   StatusObese,
			Priority: PriorityHigh,
			Advice:   fmt.Sprintf("Your BMI is %.1f, well above the healthy range of %s. Medical guidance is recommended.", bmi, band),
		}
	}
	return a
}

// AssessSteps judges a step count. goal is the user's own target and only
// appears in the output.
func AssessSteps(steps *float64, std RangeStandards, goal *float64) StepsAssessment {
	a := StepsAssessment{
		Current:  steps,
		Min:      std.Min,
		Optimal:  std.Optimal,
		Max:      std.Max,
		UserGoal: goal,
	}
	if steps == nil {
		a.Status = StatusUnknown
		return a
	}
	s := *steps

	switch {
	case s < std.Min:
		a.Percentage = percentOf(s, std.Min)
		a.Verdict = Verdict{
			Status:   StatusBelowMinimum,
			Priority: PriorityHigh,
			Advice: fmt.Sprintf("You walked %.0f steps, %.0f short of the recommended minimum of %.0f. Build up your daily activity gradually.",
				s, std.Min-s, std.Min),
		}
	case s < std.Optimal:
		a.Percentage = percentOf(s, std.Optimal)
		a.Verdict = Verdict{
			Status:   StatusBelowOptimal,
			Priority: PriorityMedium,
			Advice: fmt.Sprintf("You walked %.0f steps, %.0f short of the optimal %.0f. Keep going!",
				s, std.Optimal-s, std.Optimal),
		}
	case s <= std.Max:
		a.Percentage = percentOf(1, 1)
		a.Verdict = Verdict{
			Status:   StatusOptimal,
			Priority: PriorityLow,
			Advice:   fmt.Sprintf("You walked %.0f steps, within the optimal range. Keep up the healthy habit.", s),
		}
	default:
		a.Percentage = percentOf(1, 1)
		a.Verdict = Verdict{
			Status:   StatusExcessive,
			Priority: PriorityMedium,
			Advice: fmt.Sprintf("You walked %.0f steps, above the recommended maximum of %.0f. Make sure you rest enough to avoid overtraining.",
				s, std.Max),
		}
	}
	return a
}

// AssessHeartRate judges a resting heart rate.
func AssessHeartRate(hr *float64, std HeartRateStandards) HeartRateAssessment {
	a := HeartRateAssessment{Current: hr, Min: std.Min, Normal: std.Normal, Max: std.Max}
	if hr == nil {
		a.Status = StatusUnknown
		return a
	}
	v := *hr

	switch {
	case v < std.Min:
		a.Verdict = Verdict{
			Status:   StatusVeryLow,
			Priority: PriorityMedium,
			Advice: fmt.Sprintf("Your resting heart rate is %.0f bpm, which is very low. This can reflect athletic conditioning, but consider a medical check.",
				v),
		}
	case v <= std.Normal:
		a.Verdict = Verdict{
			Status:   StatusNormal,
			Priority: PriorityLow,
			Advice:   fmt.Sprintf("Your resting heart rate is %.0f bpm, within the healthy range.", v),
		}
	default:
		a.Verdict = Verdict{
			Status:   StatusElevated,
			Priority: PriorityHigh,
			Advice: fmt.Sprintf("Your resting heart rate is %.0f bpm, %.0f bpm above normal. Add aerobic exercise and cut back on stress and caffeine.",
				v, v-std.Normal),
		}
	}
	return a
}

// AssessSleep judges hours slept.
func AssessSleep(hours *float64, std RangeStandards) SleepAssessment {
	a := SleepAssessment{Current: hours, Min: std.Min, Optimal: std.Optimal, Max: std.Max}
	if hours == nil {
		a.Status = StatusUnknown
		return a
	}
	h := *hours

	switch {
	case h < std.Min:
		a.Verdict = Verdict{
			Status:   StatusInsufficient,
			Priority: PriorityHigh,
			Advice: fmt.Sprintf("You slept %g hours, less than the recommended %g. Lack of sleep affects your health; work on your sleep routine.",
				h, std.Min),
		}
	case h <= std.Max:
		a.Verdict = Verdict{
			Status:   StatusOptimal,
			Priority: PriorityLow,
			Advice:   fmt.Sprintf("You slept %g hours, within the healthy range. Keep a regular schedule.", h),
		}
	default:
		a.Verdict = Verdict{
			Status:   StatusExcessive,
			Priority: PriorityMedium,
			Advice: fmt.Sprintf("You slept %g hours, more than %g. Oversleeping can signal poor sleep quality or illness.",
				h, std.Max),
		}
	}
	return a
}

// AssessBloodPressure judges a reading. Both values are required.
func AssessBloodPressure(sys, dia *float64, std BloodPressureStandards) BloodPressureAssessment {
	a := BloodPressureAssessment{
		Systolic:        sys,
		Diastolic:       dia,
		NormalSystolic:  std.NormalSystolic,
		NormalDiastolic: std.NormalDiastolic,
	}
	if sys == nil || dia == nil {
		a.Status = StatusUnknown
		return a
	}
	s, d := *sys, *dia

	switch {
	case s < std.NormalSystolic && d < std.NormalDiastolic:
		a.Verdict = Verdict{
			Status:   StatusOptimal,
			Priority: PriorityLow,
			Advice:   fmt.Sprintf("Your blood pressure is %.0f/%.0f mmHg, within the normal range.", s, d),
		}
	case s < std.HighSystolic && d < std.HighDiastolic:
		a.Verdict = Verdict{
			Status:   StatusElevated,
			Priority: PriorityMedium,
			Advice:   fmt.Sprintf("Your blood pressure is %.0f/%.0f mmHg, slightly above normal. Reduce salt and exercise more.", s, d),
		}
	default:
		a.Verdict = Verdict{
			Status:   StatusHigh,
			Priority: PriorityHigh,
			Advice:   fmt.Sprintf("Your blood pressure is %.0f/%.0f mmHg, above the normal range. See a doctor and adjust your lifestyle.", s, d),
		}
	}
	return a
}

// percentOf returns part/whole as a percentage clamped to [0,100] with one decimal.
func percentOf(part, whole float64) *float64 {
	p := 100.0
	if whole > 0 {
		p = round1(part / whole * 100)
	}
	p = math.Max(0, math.Min(100, p))
	return &p
}
