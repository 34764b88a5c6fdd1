// ABOUTME: Baseline and standards tables for the analysis engine.
// ABOUTME: Tables are plain values built by constructors so tests can inject their own.
package analysis

import (
	"math"

	"github.com/harperreed/healthtrack/internal/models"
)

// Baseline is the set of personal physiological targets derived from a profile.
type Baseline struct {
	Steps            int     `json:"steps"`
	HeartRateMin     int     `json:"heart_rate_min"`
	HeartRateMax     int     `json:"heart_rate_max"`
	Sleep            float64 `json:"sleep"`
	Water            int     `json:"water"`
	Weight           float64 `json:"weight"`
	BloodPressureSys int     `json:"blood_pressure_sys"`
	BloodPressureDia int     `json:"blood_pressure_dia"`
}

// AgeOverride lists the baseline fields an age group overwrites. Nil fields
// keep the base value.
type AgeOverride struct {
	Steps            *int
	HeartRateMin     *int
	HeartRateMax     *int
	Sleep            *float64
	Water            *int
	BloodPressureSys *int
	BloodPressureDia *int
}

// ActivityFactor scales steps and water for an activity level.
type ActivityFactor struct {
	Steps float64
	Water float64
}

// ConditionAdjustment is applied when a medical flag is set. Factors of zero
// mean "unchanged"; deltas are added to the heart rate bounds.
type ConditionAdjustment struct {
	Name              string
	Applies           func(models.Conditions) bool
	StepsFactor       float64
	WaterFactor       float64
	SleepFactor       float64
	HeartRateMinDelta int
	HeartRateMaxDelta int
}

// Tables hold everything the Baseline Resolver reads.
type Tables struct {
	Base       Baseline
	AgeGroups  map[models.AgeGroup]AgeOverride
	Activity   map[models.ActivityLevel]ActivityFactor
	Conditions []ConditionAdjustment
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

// DefaultTables returns the built-in baseline tables.
func DefaultTables() Tables {
	return Tables{
		Base: Baseline{
			Steps:            10000,
			HeartRateMin:     60,
			HeartRateMax:     80,
			Sleep:            8,
			Water:            2500,
			Weight:           70,
			BloodPressureSys: 120,
			BloodPressureDia: 80,
		},
		AgeGroups: map[models.AgeGroup]AgeOverride{
			models.AgeChild: {
				Steps: intp(8000), HeartRateMin: intp(70), HeartRateMax: intp(100),
				Sleep: floatp(9.5), Water: intp(1500),
			},
			models.AgeTeen: {
				Steps: intp(9000), HeartRateMin: intp(60), HeartRateMax: intp(100),
				Sleep: floatp(9), Water: intp(2000),
			},
			models.AgeAdult: {
				Steps: intp(10000), HeartRateMin: intp(60), HeartRateMax: intp(85),
				Sleep: floatp(8), Water: intp(2500),
			},
			models.AgeMiddleAge: {
				Steps: intp(8000), HeartRateMin: intp(55), HeartRateMax: intp(80),
				Sleep: floatp(7.5), Water: intp(2200),
				BloodPressureSys: intp(130), BloodPressureDia: intp(85),
			},
			models.AgeSenior: {
				Steps: intp(6000), HeartRateMin: intp(50), HeartRateMax: intp(75),
				Sleep: floatp(7), Water: intp(2000),
				BloodPressureSys: intp(140), BloodPressureDia: intp(90),
			},
		},
		Activity: map[models.ActivityLevel]ActivityFactor{
			models.ActivitySedentary:        {Steps: 0.5, Water: 0.9},
			models.ActivityLightlyActive:    {Steps: 0.7, Water: 0.95},
			models.ActivityModeratelyActive: {Steps: 1.0, Water: 1.0},
			models.ActivityVeryActive:       {Steps: 1.3, Water: 1.1},
			models.ActivityExtremelyActive:  {Steps: 1.6, Water: 1.3},
		},
		Conditions: []ConditionAdjustment{
			{
				Name:              "cardiovascular",
				Applies:           func(c models.Conditions) bool { return c.Cardiovascular },
				StepsFactor:       0.8,
				WaterFactor:       0.9,
				HeartRateMinDelta: 5,
			},
			{
				Name:        "diabetes",
				Applies:     func(c models.Conditions) bool { return c.Diabetes },
				StepsFactor: 1.1,
				WaterFactor: 0.85,
			},
			{
				Name:              "joint_issues",
				Applies:           func(c models.Conditions) bool { return c.JointIssues },
				StepsFactor:       0.6,
				HeartRateMaxDelta: -5,
			},
			{
				Name:        "pregnant",
				Applies:     func(c models.Conditions) bool { return c.Pregnant },
				StepsFactor: 0.6,
				SleepFactor: 1.1,
				WaterFactor: 1.2,
			},
			{
				Name:        "recovering",
				Applies:     func(c models.Conditions) bool { return c.Recovering },
				StepsFactor: 0.5,
				SleepFactor: 1.2,
			},
		},
	}
}

// BMIStandards classify a BMI value. Values up to OptimalMax+OverweightMargin
// are overweight, anything above is obese.
type BMIStandards struct {
	OptimalMin       float64 `json:"optimal_min"`
	OptimalMax       float64 `json:"optimal_max"`
	OverweightMargin float64 `json:"overweight_margin"`
}

// RangeStandards are [min, optimal, max] thresholds for steps and sleep.
type RangeStandards struct {
	Min     float64 `json:"min"`
	Optimal float64 `json:"optimal"`
	Max     float64 `json:"max"`
}

// HeartRateStandards classify a resting heart rate. Max is informational.
type HeartRateStandards struct {
	Min    float64 `json:"min"`
	Normal float64 `json:"normal"`
	Max    float64 `json:"max"`
}

// BloodPressureStandards classify a systolic/diastolic pair. Readings below
// Normal* are optimal, below High* elevated, otherwise high.
type BloodPressureStandards struct {
	NormalSystolic  float64 `json:"normal_systolic"`
	NormalDiastolic float64 `json:"normal_diastolic"`
	HighSystolic    float64 `json:"high_systolic"`
	HighDiastolic   float64 `json:"high_diastolic"`
}

// Standards are all thresholds the assessors compare against.
type Standards struct {
	BMI           BMIStandards           `json:"bmi"`
	Steps         RangeStandards         `json:"steps"`
	HeartRate     HeartRateStandards     `json:"heart_rate"`
	Sleep         RangeStandards         `json:"sleep"`
	BloodPressure BloodPressureStandards `json:"blood_pressure"`
	Water         int                    `json:"water"`
}

// GenericStandards are the population defaults used without a profile.
func GenericStandards() Standards {
	return Standards{
		BMI:           BMIStandards{OptimalMin: 18.5, OptimalMax: 24, OverweightMargin: 5},
		Steps:         RangeStandards{Min: 5000, Optimal: 10000, Max: 15000},
		HeartRate:     HeartRateStandards{Min: 60, Normal: 80, Max: 190},
		Sleep:         RangeStandards{Min: 7, Optimal: 8, Max: 9},
		BloodPressure: BloodPressureStandards{NormalSystolic: 120, NormalDiastolic: 80, HighSystolic: 140, HighDiastolic: 90},
		Water:         2500,
	}
}

// representativeAge is used for the age-predicted maximum heart rate.
var representativeAge = map[models.AgeGroup]int{
	models.AgeChild:     10,
	models.AgeTeen:      16,
	models.AgeAdult:     30,
	models.AgeMiddleAge: 50,
	models.AgeSenior:    70,
}

// DeriveStandards turns a resolved baseline into assessor thresholds. Profile
// overrides replace the matching baseline value first. A nil profile yields
// thresholds around the baseline with adult assumptions.
func DeriveStandards(b Baseline, p *models.PersonalizationProfile) Standards {
	ageGroup := models.AgeAdult
	if p != nil {
		ageGroup = p.AgeGroup
		if p.StepsGoal != nil {
			b.Steps = *p.StepsGoal
		}
		if p.HeartRateMin != nil {
			b.HeartRateMin = *p.HeartRateMin
		}
		if p.HeartRateMax != nil {
			b.HeartRateMax = *p.HeartRateMax
		}
		if p.SleepGoal != nil {
			b.Sleep = *p.SleepGoal
		}
		if p.WaterGoal != nil {
			b.Water = *p.WaterGoal
		}
	}

	age, ok := representativeAge[ageGroup]
	if !ok {
		age = representativeAge[models.AgeAdult]
	}

	bmi := BMIStandards{OptimalMin: 18.5, OptimalMax: 24, OverweightMargin: 5}
	if ageGroup == models.AgeSenior {
		bmi.OptimalMin, bmi.OptimalMax = 22, 27
	}

	return Standards{
		BMI: bmi,
		Steps: RangeStandards{
			Min:     math.Floor(float64(b.Steps) * 0.5),
			Optimal: float64(b.Steps),
			Max:     math.Floor(float64(b.Steps) * 1.5),
		},
		HeartRate: HeartRateStandards{
			Min:    float64(b.HeartRateMin),
			Normal: float64(b.HeartRateMax),
			Max:    float64(220 - age),
		},
		Sleep: RangeStandards{
			Min:     round1(b.Sleep - 1),
			Optimal: b.Sleep,
			Max:     round1(b.Sleep + 1),
		},
		BloodPressure: BloodPressureStandards{
			NormalSystolic:  float64(b.BloodPressureSys),
			NormalDiastolic: float64(b.BloodPressureDia),
			HighSystolic:    140,
			HighDiastolic:   90,
		},
		Water: b.Water,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
