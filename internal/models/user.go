// ABOUTME: User account, health goals, and personalization profile models.
// ABOUTME: Includes goal defaults and age-group derivation from a birthday.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender of a user as declared at registration.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User is an account plus the body attributes the analysis needs.
type User struct {
	ID           uuid.UUID  `json:"id" yaml:"id"`
	Username     string     `json:"username" yaml:"username"`
	Email        string     `json:"email" yaml:"email"`
	PasswordHash string     `json:"-" yaml:"-"`
	Nickname     *string    `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Height       *float64   `json:"height,omitempty" yaml:"height,omitempty"`
	Gender       *Gender    `json:"gender,omitempty" yaml:"gender,omitempty"`
	Birthday     *time.Time `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	CreatedAt    time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" yaml:"updated_at"`
}

// NewUser creates a user with a generated UUID.
func NewUser(username, email string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Default goal values applied when a user has not set their own.
const (
	DefaultStepsGoal    = 8000
	DefaultWaterGoal    = 2000
	DefaultSleepGoal    = 8.0
	DefaultCaloriesGoal = 2000
)

// HealthGoals are the user's self-declared daily targets.
type HealthGoals struct {
	UserID       uuid.UUID `json:"user_id" yaml:"user_id"`
	StepsGoal    int       `json:"steps_goal" yaml:"steps_goal"`
	WaterGoal    int       `json:"water_goal" yaml:"water_goal"`
	SleepGoal    float64   `json:"sleep_goal" yaml:"sleep_goal"`
	CaloriesGoal int       `json:"calories_goal" yaml:"calories_goal"`
	WeightGoal   *float64  `json:"weight_goal,omitempty" yaml:"weight_goal,omitempty"`
}

// DefaultGoals returns the goals used when a user has none stored.
func DefaultGoals(userID uuid.UUID) *HealthGoals {
	return &HealthGoals{
		UserID:       userID,
		StepsGoal:    DefaultStepsGoal,
		WaterGoal:    DefaultWaterGoal,
		SleepGoal:    DefaultSleepGoal,
		CaloriesGoal: DefaultCaloriesGoal,
	}
}

// Validate checks every goal against its accepted range.
func (g *HealthGoals) Validate() error {
	switch {
	case g.StepsGoal < 1000 || g.StepsGoal > 100000:
		return invalidf("steps goal must be between 1000 and 100000, got %d", g.StepsGoal)
	case g.WaterGoal < 500 || g.WaterGoal > 10000:
		return invalidf("water goal must be between 500 and 10000 ml, got %d", g.WaterGoal)
	case g.SleepGoal < 1 || g.SleepGoal > 24:
		return invalidf("sleep goal must be between 1 and 24 hours, got %v", g.SleepGoal)
	case g.CaloriesGoal < 500 || g.CaloriesGoal > 10000:
		return invalidf("calories goal must be between 500 and 10000, got %d", g.CaloriesGoal)
	case g.WeightGoal != nil && (*g.WeightGoal < 20 || *g.WeightGoal > 300):
		return invalidf("weight goal must be between 20 and 300 kg, got %v", *g.WeightGoal)
	}
	return nil
}

// AgeGroup buckets a user's age for baseline selection.
type AgeGroup string

const (
	AgeChild     AgeGroup = "child"
	AgeTeen      AgeGroup = "teen"
	AgeAdult     AgeGroup = "adult"
	AgeMiddleAge AgeGroup = "middle_age"
	AgeSenior    AgeGroup = "senior"
)

// AllAgeGroups lists the valid age groups.
var AllAgeGroups = []AgeGroup{AgeChild, AgeTeen, AgeAdult, AgeMiddleAge, AgeSenior}

// ActivityLevel is the user's habitual activity.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

// AllActivityLevels lists the valid activity levels.
var AllActivityLevels = []ActivityLevel{
	ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive,
	ActivityVeryActive, ActivityExtremelyActive,
}

// HealthCondition is the user's self-assessed overall condition.
type HealthCondition string

const (
	ConditionExcellent HealthCondition = "excellent"
	ConditionGood      HealthCondition = "good"
	ConditionFair      HealthCondition = "fair"
	ConditionPoor      HealthCondition = "poor"
)

// AllHealthConditions lists the valid overall conditions.
var AllHealthConditions = []HealthCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor}

// Conditions are the medical flags that adjust baselines and scoring.
type Conditions struct {
	Cardiovascular bool `json:"has_cardiovascular_issues" yaml:"has_cardiovascular_issues"`
	Diabetes       bool `json:"has_diabetes" yaml:"has_diabetes"`
	JointIssues    bool `json:"has_joint_issues" yaml:"has_joint_issues"`
	Pregnant       bool `json:"is_pregnant" yaml:"is_pregnant"`
	Recovering     bool `json:"is_recovering" yaml:"is_recovering"`
}

// Any reports whether at least one flag is set.
func (c Conditions) Any() bool {
	return c.Cardiovascular || c.Diabetes || c.JointIssues || c.Pregnant || c.Recovering
}

// PersonalizationProfile parameterizes baselines and standards for one user.
type PersonalizationProfile struct {
	ID              uuid.UUID       `json:"id" yaml:"id"`
	UserID          uuid.UUID       `json:"user_id" yaml:"user_id"`
	AgeGroup        AgeGroup        `json:"age_group" yaml:"age_group"`
	ActivityLevel   ActivityLevel   `json:"activity_level" yaml:"activity_level"`
	HealthCondition HealthCondition `json:"health_condition" yaml:"health_condition"`
	Conditions      `yaml:",inline"`

	StepsGoal    *int     `json:"personalized_steps_goal,omitempty" yaml:"personalized_steps_goal,omitempty"`
	HeartRateMin *int     `json:"personalized_heart_rate_min,omitempty" yaml:"personalized_heart_rate_min,omitempty"`
	HeartRateMax *int     `json:"personalized_heart_rate_max,omitempty" yaml:"personalized_heart_rate_max,omitempty"`
	SleepGoal    *float64 `json:"personalized_sleep_goal,omitempty" yaml:"personalized_sleep_goal,omitempty"`
	WaterGoal    *int     `json:"personalized_water_goal,omitempty" yaml:"personalized_water_goal,omitempty"`
	DoctorNotes  *string  `json:"doctor_notes,omitempty" yaml:"doctor_notes,omitempty"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewPersonalizationProfile creates a profile with the default activity level
// and condition for the given age group.
func NewPersonalizationProfile(userID uuid.UUID, ageGroup AgeGroup) *PersonalizationProfile {
	now := time.Now()
	return &PersonalizationProfile{
		ID:              uuid.New(),
		UserID:          userID,
		AgeGroup:        ageGroup,
		ActivityLevel:   ActivityModeratelyActive,
		HealthCondition: ConditionGood,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate checks the enum fields and override ranges.
func (p *PersonalizationProfile) Validate() error {
	if !oneOf(p.AgeGroup, AllAgeGroups) {
		return invalidf("invalid age group: %q", p.AgeGroup)
	}
	if !oneOf(p.ActivityLevel, AllActivityLevels) {
		return invalidf("invalid activity level: %q", p.ActivityLevel)
	}
	if !oneOf(p.HealthCondition, AllHealthConditions) {
		return invalidf("invalid health condition: %q", p.HealthCondition)
	}
	if p.StepsGoal != nil && (*p.StepsGoal < 0 || *p.StepsGoal > 50000) {
		return invalidf("personalized steps goal out of range: %d", *p.StepsGoal)
	}
	if p.HeartRateMin != nil && (*p.HeartRateMin < 0 || *p.HeartRateMin > 200) {
		return invalidf("personalized heart rate min out of range: %d", *p.HeartRateMin)
	}
	if p.HeartRateMax != nil && (*p.HeartRateMax < 0 || *p.HeartRateMax > 220) {
		return invalidf("personalized heart rate max out of range: %d", *p.HeartRateMax)
	}
	if p.SleepGoal != nil && (*p.SleepGoal < 0 || *p.SleepGoal > 15) {
		return invalidf("personalized sleep goal out of range: %v", *p.SleepGoal)
	}
	if p.WaterGoal != nil && (*p.WaterGoal < 0 || *p.WaterGoal > 10000) {
		return invalidf("personalized water goal out of range: %d", *p.WaterGoal)
	}
	return nil
}

func oneOf[T comparable](v T, all []T) bool {
	for _, a := range all {
		if a == v {
			return true
		}
	}
	return false
}

// AgeOn returns the age in whole years on the given day.
func AgeOn(birthday, day time.Time) int {
	age := day.Year() - birthday.Year()
	if day.Month() < birthday.Month() || (day.Month() == birthday.Month() && day.Day() < birthday.Day()) {
		age--
	}
	return age
}

// AgeGroupFor derives the age group from a birthday. A missing birthday
// falls back to adult.
func AgeGroupFor(birthday *time.Time, today time.Time) AgeGroup {
	if birthday == nil {
		return AgeAdult
	}
	age := AgeOn(*birthday, today)
	switch {
	case age <= 12:
		return AgeChild
	case age <= 18:
		return AgeTeen
	case age <= 40:
		return AgeAdult
	case age <= 65:
		return AgeMiddleAge
	default:
		return AgeSenior
	}
}
