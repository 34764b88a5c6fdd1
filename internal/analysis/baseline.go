// ABOUTME: Baseline Resolver: folds an ordered list of adjustment rules over the base table.
// ABOUTME: Order is age group, then activity level, then each medical condition.
package analysis

import (
	"math"

	"github.com/harperreed/healthtrack/internal/models"
)

// AdjustmentRule transforms a baseline for a profile. Rules that do not
// apply to the profile return the baseline unchanged.
type AdjustmentRule struct {
	Name  string
	Apply func(p models.PersonalizationProfile, b Baseline) Baseline
}

// DefaultProfile is used when a user has no personalization profile.
func DefaultProfile() models.PersonalizationProfile {
	return models.PersonalizationProfile{
		AgeGroup:        models.AgeAdult,
		ActivityLevel:   models.ActivityModeratelyActive,
		HealthCondition: models.ConditionGood,
	}
}

// Rules returns the adjustment rules derived from t, in application order.
func (t Tables) Rules() []AdjustmentRule {
	rules := []AdjustmentRule{
		{
			Name: "age_group",
			Apply: func(p models.PersonalizationProfile, b Baseline) Baseline {
				if o, ok := t.AgeGroups[p.AgeGroup]; ok {
					return o.apply(b)
				}
				return b
			},
		},
		{
			Name: "activity_level",
			Apply: func(p models.PersonalizationProfile, b Baseline) Baseline {
				return t.activityFactor(p.ActivityLevel).apply(b)
			},
		},
	}
	for _, adj := range t.Conditions {
		rules = append(rules, AdjustmentRule{
			Name: adj.Name,
			Apply: func(p models.PersonalizationProfile, b Baseline) Baseline {
				if adj.Applies(p.Conditions) {
					return adj.apply(b)
				}
				return b
			},
		})
	}
	return rules
}

// Resolve folds the rules over the base table for p.
func (t Tables) Resolve(p models.PersonalizationProfile) Baseline {
	b := t.Base
	for _, rule := range t.Rules() {
		b = rule.Apply(p, b)
	}
	return b
}

// ResolveBaseline computes the personal baseline for a profile, falling back
// to the default profile when p is nil.
func ResolveBaseline(p *models.PersonalizationProfile, t Tables) Baseline {
	profile := DefaultProfile()
	if p != nil {
		profile = *p
	}
	return t.Resolve(profile)
}

func (t Tables) activityFactor(level models.ActivityLevel) ActivityFactor {
	if f, ok := t.Activity[level]; ok {
		return f
	}
	if f, ok := t.Activity[models.ActivityModeratelyActive]; ok {
		return f
	}
	return ActivityFactor{Steps: 1, Water: 1}
}

func (o AgeOverride) apply(b Baseline) Baseline {
	if o.Steps != nil {
		b.Steps = *o.Steps
	}
	if o.HeartRateMin != nil {
		b.HeartRateMin = *o.HeartRateMin
	}
	if o.HeartRateMax != nil {
		b.HeartRateMax = *o.HeartRateMax
	}
	if o.Sleep != nil {
		b.Sleep = *o.Sleep
	}
	if o.Water != nil {
		b.Water = *o.Water
	}
	if o.BloodPressureSys != nil {
		b.BloodPressureSys = *o.BloodPressureSys
	}
	if o.BloodPressureDia != nil {
		b.BloodPressureDia = *o.BloodPressureDia
	}
	return b
}

func (f ActivityFactor) apply(b Baseline) Baseline {
	b.Steps = scaleFloor(b.Steps, f.Steps)
	b.Water = scaleFloor(b.Water, f.Water)
	return b
}

func (c ConditionAdjustment) apply(b Baseline) Baseline {
	if c.StepsFactor != 0 {
		b.Steps = scaleFloor(b.Steps, c.StepsFactor)
	}
	if c.WaterFactor != 0 {
		b.Water = scaleFloor(b.Water, c.WaterFactor)
	}
	if c.SleepFactor != 0 {
		b.Sleep = round1(b.Sleep * c.SleepFactor)
	}
	b.HeartRateMin += c.HeartRateMinDelta
	b.HeartRateMax += c.HeartRateMaxDelta
	return b
}

// scaleFloor multiplies and floors. The epsilon absorbs float error such as
// 4200*0.8 evaluating to 3359.9999.
func scaleFloor(v int, factor float64) int {
	return int(math.Floor(float64(v)*factor + 1e-9))
}
