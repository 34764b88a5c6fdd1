// ABOUTME: Analyzer service assembling health reports, trends, statistics, and today summaries.
// ABOUTME: Reads through small store interfaces so any backing store (or a fake) can serve it.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

// ErrUserNotFound is returned when the analyzed user does not exist.
var ErrUserNotFound = errors.New("user not found")

// RecordStore reads metric records.
type RecordStore interface {
	FindLatestByTypes(ctx context.Context, userID uuid.UUID, types []models.MetricType) (map[models.MetricType]*models.MetricRecord, error)
	FindByDateRange(ctx context.Context, userID uuid.UUID, types []models.MetricType, start, end time.Time) ([]*models.MetricRecord, error)
	AggregateByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Statistics, error)
}

// UserStore looks users up by ID.
type UserStore interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ProfileStore reads and lazily creates personalization profiles.
type ProfileStore interface {
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.PersonalizationProfile, error)
	CreateProfile(ctx context.Context, p *models.PersonalizationProfile) error
}

// GoalStore reads goals, substituting defaults for unset ones.
type GoalStore interface {
	FindGoalsWithDefaults(ctx context.Context, userID uuid.UUID) (*models.HealthGoals, error)
}

// Store is everything the Analyzer reads.
type Store interface {
	RecordStore
	UserStore
	ProfileStore
	GoalStore
}

// Source selects which standards and point table an analysis uses.
type Source string

const (
	SourceGeneric      Source = "generic"
	SourcePersonalized Source = "personalized"
)

// assessedTypes are the metric types a report reads the latest value of.
var assessedTypes = []models.MetricType{
	models.MetricWeight, models.MetricSteps, models.MetricHeartRate,
	models.MetricSleep, models.MetricBPSys, models.MetricBPDia,
}

// PeriodSummary is the generic report's rollup over one period.
type PeriodSummary struct {
	AvgSteps     float64  `json:"avg_steps"`
	TotalSteps   float64  `json:"total_steps"`
	AvgWeight    *float64 `json:"avg_weight,omitempty"`
	WeightChange *float64 `json:"weight_change,omitempty"`
}

// HealthReport is the output of one analysis.
type HealthReport struct {
	UserID          uuid.UUID                      `json:"user_id"`
	Source          Source                         `json:"source"`
	GeneratedAt     time.Time                      `json:"generated_at"`
	Score           int                            `json:"health_score"`
	Latest          map[models.MetricType]float64  `json:"latest"`
	Assessments     Assessments                    `json:"assessments"`
	Recommendations []Recommendation               `json:"recommendations"`
	Standards       Standards                      `json:"standards"`
	Goals           *models.HealthGoals            `json:"goals"`
	Profile         *models.PersonalizationProfile `json:"profile,omitempty"`
	Baseline        *Baseline                      `json:"baseline,omitempty"`
	Weekly          *PeriodSummary                 `json:"weekly,omitempty"`
	Monthly         *PeriodSummary                 `json:"monthly,omitempty"`
}

// StandardsView is a user's resolved baseline and the standards derived from it.
type StandardsView struct {
	Profile   *models.PersonalizationProfile `json:"profile"`
	Baseline  Baseline                       `json:"baseline"`
	Standards Standards                      `json:"standards"`
}

// Analyzer runs analyses against a Store.
type Analyzer struct {
	store  Store
	tables Tables
	now    func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithTables replaces the default baseline tables.
func WithTables(t Tables) Option {
	return func(a *Analyzer) { a.tables = t }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// NewAnalyzer creates an Analyzer over store.
func NewAnalyzer(store Store, opts ...Option) *Analyzer {
	a := &Analyzer{store: store, tables: DefaultTables(), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds a health report for userID using the given source.
func (a *Analyzer) Analyze(ctx context.Context, userID uuid.UUID, source Source) (*HealthReport, error) {
	user, err := a.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := &HealthReport{
		UserID:      userID,
		Source:      source,
		GeneratedAt: a.now(),
		Latest:      map[models.MetricType]float64{},
	}

	weights := GenericScoreWeights()
	var flags models.Conditions
	var profile *models.PersonalizationProfile
	if source == SourcePersonalized {
		profile, err = a.ensureProfile(ctx, user)
		if err != nil {
			return nil, err
		}
		b := a.tables.Resolve(*profile)
		report.Profile = profile
		report.Baseline = &b
		report.Standards = DeriveStandards(b, profile)
		weights = PersonalizedScoreWeights()
		flags = profile.Conditions
	} else {
		report.Source = SourceGeneric
		report.Standards = GenericStandards()
	}

	latest, err := a.store.FindLatestByTypes(ctx, userID, assessedTypes)
	if err != nil {
		return nil, fmt.Errorf("find latest records: %w", err)
	}
	for t, r := range latest {
		report.Latest[t] = r.Value
	}

	goals, err := a.store.FindGoalsWithDefaults(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find goals: %w", err)
	}
	report.Goals = goals

	report.Assessments = Assess(latest, user.Height, goals, report.Standards)
	report.Score = ComputeHealthScore(report.Assessments, flags, weights)
	report.Recommendations = ComposeRecommendations(profile, report.Assessments)

	if report.Source == SourceGeneric {
		if report.Weekly, err = a.periodSummary(ctx, userID, PeriodWeek); err != nil {
			return nil, err
		}
		if report.Monthly, err = a.periodSummary(ctx, userID, PeriodMonth); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// Assess runs every assessor over the latest records.
func Assess(latest map[models.MetricType]*models.MetricRecord, height *float64, goals *models.HealthGoals, std Standards) Assessments {
	value := func(t models.MetricType) *float64 {
		if r, ok := latest[t]; ok && r != nil {
			v := r.Value
			return &v
		}
		return nil
	}

	var stepsGoal *float64
	if goals != nil {
		g := float64(goals.StepsGoal)
		stepsGoal = &g
	}

	return Assessments{
		BMI:           AssessBMI(value(models.MetricWeight), height, std.BMI),
		Steps:         AssessSteps(value(models.MetricSteps), std.Steps, stepsGoal),
		HeartRate:     AssessHeartRate(value(models.MetricHeartRate), std.HeartRate),
		Sleep:         AssessSleep(value(models.MetricSleep), std.Sleep),
		BloodPressure: AssessBloodPressure(value(models.MetricBPSys), value(models.MetricBPDia), std.BloodPressure),
	}
}

// Standards returns the user's resolved baseline and derived standards,
// creating their profile if needed.
func (a *Analyzer) Standards(ctx context.Context, userID uuid.UUID) (*StandardsView, error) {
	user, err := a.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := a.ensureProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	b := a.tables.Resolve(*profile)
	return &StandardsView{Profile: profile, Baseline: b, Standards: DeriveStandards(b, profile)}, nil
}

// Profile returns the user's personalization profile, creating a default one
// from their birthday when none exists.
func (a *Analyzer) Profile(ctx context.Context, userID uuid.UUID) (*models.PersonalizationProfile, error) {
	user, err := a.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.ensureProfile(ctx, user)
}

// Trend reduces the user's records of type t over period.
func (a *Analyzer) Trend(ctx context.Context, userID uuid.UUID, t models.MetricType, period Period) (Trend, error) {
	now := a.now()
	start, end := period.Range(now)
	records, err := a.store.FindByDateRange(ctx, userID, []models.MetricType{t}, start, end)
	if err != nil {
		return Trend{}, fmt.Errorf("find records: %w", err)
	}
	return ReduceTrend(records, t, period, now), nil
}

// Statistics summarizes the user's records of type t over period.
func (a *Analyzer) Statistics(ctx context.Context, userID uuid.UUID, t models.MetricType, period Period) (models.Statistics, error) {
	start, end := period.Range(a.now())
	stats, err := a.store.AggregateByDateRange(ctx, userID, start, end)
	if err != nil {
		return models.Statistics{}, fmt.Errorf("aggregate records: %w", err)
	}
	for _, s := range stats {
		if s.Type == t {
			return s, nil
		}
	}
	return models.Statistics{Type: t}, nil
}

// Today summarizes the current day's records against the user's goals.
func (a *Analyzer) Today(ctx context.Context, userID uuid.UUID) (TodaySummary, error) {
	today := models.DateOf(a.now())
	records, err := a.store.FindByDateRange(ctx, userID, nil, today, today)
	if err != nil {
		return TodaySummary{}, fmt.Errorf("find today's records: %w", err)
	}
	goals, err := a.store.FindGoalsWithDefaults(ctx, userID)
	if err != nil {
		return TodaySummary{}, fmt.Errorf("find goals: %w", err)
	}
	return SummarizeDay(records, *goals, today), nil
}

func (a *Analyzer) user(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := a.store.FindUserByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ensureProfile returns the user's profile, creating one with the age group
// derived from their birthday when none exists.
func (a *Analyzer) ensureProfile(ctx context.Context, user *models.User) (*models.PersonalizationProfile, error) {
	p, err := a.store.FindProfileByUserID(ctx, user.ID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	p = models.NewPersonalizationProfile(user.ID, models.AgeGroupFor(user.Birthday, a.now()))
	err = a.store.CreateProfile(ctx, p)
	if errors.Is(err, models.ErrDuplicate) {
		// A concurrent request created it first; use the stored row.
		stored, err := a.store.FindProfileByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		return stored, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (a *Analyzer) periodSummary(ctx context.Context, userID uuid.UUID, period Period) (*PeriodSummary, error) {
	start, end := period.Range(a.now())
	stats, err := a.store.AggregateByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", period, err)
	}

	sum := &PeriodSummary{}
	for _, s := range stats {
		switch s.Type {
		case models.MetricSteps:
			sum.AvgSteps = s.Average
			sum.TotalSteps = s.Sum
		case models.MetricWeight:
			if s.Count == 0 {
				continue
			}
			avg := s.Average
			change := round1(s.Max - s.Min)
			sum.AvgWeight = &avg
			sum.WeightChange = &change
		}
	}
	return sum, nil
}
