// ABOUTME: Personalization profile and health goal persistence for SQLite storage.
// ABOUTME: Goals fall back to defaults per field; profiles are one per user.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

const profileColumns = `id, user_id, age_group, activity_level, health_condition,
	has_cardiovascular_issues, has_diabetes, has_joint_issues, is_pregnant, is_recovering,
	personalized_steps_goal, personalized_heart_rate_min, personalized_heart_rate_max,
	personalized_sleep_goal, personalized_water_goal, doctor_notes, created_at, updated_at`

// FindProfileByUserID retrieves the user's personalization profile.
func (d *DB) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.PersonalizationProfile, error) {
	p, err := scanProfile(d.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM user_health_profiles WHERE user_id = ?`, userID.String()))
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

// CreateProfile stores a new profile.
func (d *DB) CreateProfile(ctx context.Context, p *models.PersonalizationProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO user_health_profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profileArgs(p)...)
	if isUniqueViolation(err) {
		return fmt.Errorf("create profile: %w", ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// UpsertProfile creates the user's profile or replaces every field of the
// existing one. The stored ID and creation time are kept on update.
func (d *DB) UpsertProfile(ctx context.Context, p *models.PersonalizationProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO user_health_profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			age_group = excluded.age_group,
			activity_level = excluded.activity_level,
			health_condition = excluded.health_condition,
			has_cardiovascular_issues = excluded.has_cardiovascular_issues,
			has_diabetes = excluded.has_diabetes,
			has_joint_issues = excluded.has_joint_issues,
			is_pregnant = excluded.is_pregnant,
			is_recovering = excluded.is_recovering,
			personalized_steps_goal = excluded.personalized_steps_goal,
			personalized_heart_rate_min = excluded.personalized_heart_rate_min,
			personalized_heart_rate_max = excluded.personalized_heart_rate_max,
			personalized_sleep_goal = excluded.personalized_sleep_goal,
			personalized_water_goal = excluded.personalized_water_goal,
			doctor_notes = excluded.doctor_notes,
			updated_at = excluded.updated_at`,
		profileArgs(p)...)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// UpdateDoctorNotes replaces the doctor notes on the user's profile.
func (d *DB) UpdateDoctorNotes(ctx context.Context, userID uuid.UUID, notes string) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE user_health_profiles SET doctor_notes = ?, updated_at = ? WHERE user_id = ?`,
		notes, formatTimestamp(time.Now()), userID.String())
	if err != nil {
		return fmt.Errorf("update doctor notes: %w", err)
	}
	return expectOneRow(res, "update doctor notes")
}

// DeleteProfile removes the user's profile. Analysis recreates a default one
// on next use.
func (d *DB) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM user_health_profiles WHERE user_id = ?`, userID.String())
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return expectOneRow(res, "delete profile")
}

// FindGoalsWithDefaults returns the user's goals with defaults substituted
// for any goal never set.
func (d *DB) FindGoalsWithDefaults(ctx context.Context, userID uuid.UUID) (*models.HealthGoals, error) {
	goals := models.DefaultGoals(userID)

	var steps, water, calories sql.NullInt64
	var sleep, weight sql.NullFloat64
	err := d.db.QueryRowContext(ctx, `
		SELECT steps_goal, water_goal, sleep_goal, calories_goal, weight_goal
		FROM user_goals WHERE user_id = ?`, userID.String()).
		Scan(&steps, &water, &sleep, &calories, &weight)
	if errors.Is(err, sql.ErrNoRows) {
		return goals, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find goals: %w", err)
	}

	if steps.Valid {
		goals.StepsGoal = int(steps.Int64)
	}
	if water.Valid {
		goals.WaterGoal = int(water.Int64)
	}
	if sleep.Valid {
		goals.SleepGoal = sleep.Float64
	}
	if calories.Valid {
		goals.CaloriesGoal = int(calories.Int64)
	}
	goals.WeightGoal = floatPtr(weight)
	return goals, nil
}

// UpsertGoals stores the user's goals.
func (d *DB) UpsertGoals(ctx context.Context, g *models.HealthGoals) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO user_goals (user_id, steps_goal, water_goal, sleep_goal, calories_goal, weight_goal, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			steps_goal = excluded.steps_goal,
			water_goal = excluded.water_goal,
			sleep_goal = excluded.sleep_goal,
			calories_goal = excluded.calories_goal,
			weight_goal = excluded.weight_goal,
			updated_at = excluded.updated_at`,
		g.UserID.String(), g.StepsGoal, g.WaterGoal, g.SleepGoal, g.CaloriesGoal,
		nullFloat(g.WeightGoal), formatTimestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("upsert goals: %w", err)
	}
	return nil
}

func profileArgs(p *models.PersonalizationProfile) []any {
	return []any{
		p.ID.String(), p.UserID.String(),
		string(p.AgeGroup), string(p.ActivityLevel), string(p.HealthCondition),
		boolInt(p.Cardiovascular), boolInt(p.Diabetes), boolInt(p.JointIssues),
		boolInt(p.Pregnant), boolInt(p.Recovering),
		nullInt(p.StepsGoal), nullInt(p.HeartRateMin), nullInt(p.HeartRateMax),
		nullFloat(p.SleepGoal), nullInt(p.WaterGoal), nullString(p.DoctorNotes),
		formatTimestamp(p.CreatedAt), formatTimestamp(p.UpdatedAt),
	}
}

func scanProfile(row rowScanner) (*models.PersonalizationProfile, error) {
	var p models.PersonalizationProfile
	var id, userID, ageGroup, activity, condition, createdAt, updatedAt string
	var cardio, diabetes, joint, pregnant, recovering int
	var steps, hrMin, hrMax, water sql.NullInt64
	var sleep sql.NullFloat64
	var notes sql.NullString

	err := row.Scan(&id, &userID, &ageGroup, &activity, &condition,
		&cardio, &diabetes, &joint, &pregnant, &recovering,
		&steps, &hrMin, &hrMax, &sleep, &water, &notes, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.ID, _ = uuid.Parse(id)
	p.UserID, _ = uuid.Parse(userID)
	p.AgeGroup = models.AgeGroup(ageGroup)
	p.ActivityLevel = models.ActivityLevel(activity)
	p.HealthCondition = models.HealthCondition(condition)
	p.Conditions = models.Conditions{
		Cardiovascular: cardio != 0,
		Diabetes:       diabetes != 0,
		JointIssues:    joint != 0,
		Pregnant:       pregnant != 0,
		Recovering:     recovering != 0,
	}
	p.StepsGoal = intPtr(steps)
	p.HeartRateMin = intPtr(hrMin)
	p.HeartRateMax = intPtr(hrMax)
	p.SleepGoal = floatPtr(sleep)
	p.WaterGoal = intPtr(water)
	p.DoctorNotes = stringPtr(notes)
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}
