// ABOUTME: Health tip and exercise advice catalog queries for SQLite storage.
// ABOUTME: An empty catalog is seeded with built-in entries when the database opens.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

// MatchAll is the weather or time slot value that matches any condition.
const MatchAll = "all"

const (
	tipColumns      = `id, title, content, category, image_url, sort_order, created_at`
	exerciseColumns = `id, name, description, weather, time_slot, intensity, duration, calories_burned, sort_order, created_at`
)

// TipFilter narrows ListTips. An empty category matches all.
type TipFilter struct {
	Category string
	Limit    int
	Offset   int
}

// ListTips returns tips ordered by sort order.
func (d *DB) ListTips(ctx context.Context, f TipFilter) ([]*models.HealthTip, error) {
	query := `SELECT ` + tipColumns + ` FROM health_tips`
	var args []any
	if f.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY sort_order ASC, title ASC LIMIT ? OFFSET ?`
	args = append(args, limitOrDefault(f.Limit, 20), max(0, f.Offset))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	defer rows.Close()

	tips := []*models.HealthTip{}
	for rows.Next() {
		t, err := scanTip(rows)
		if err != nil {
			return nil, err
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}

// GetTip retrieves a tip by ID.
func (d *DB) GetTip(ctx context.Context, id uuid.UUID) (*models.HealthTip, error) {
	t, err := scanTip(d.db.QueryRowContext(ctx, `SELECT `+tipColumns+` FROM health_tips WHERE id = ?`, id.String()))
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}
	return t, nil
}

// TipCategories lists the distinct tip categories.
func (d *DB) TipCategories(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT DISTINCT category FROM health_tips ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list tip categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan tip category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListExercises returns exercise advice matching f. Weather and time slot
// filters also match entries marked "all".
func (d *DB) ListExercises(ctx context.Context, f models.ExerciseFilter) ([]*models.ExerciseAdvice, error) {
	var where []string
	var args []any
	if f.Weather != "" {
		where = append(where, "(weather = ? OR weather = ?)")
		args = append(args, f.Weather, MatchAll)
	}
	if f.TimeSlot != "" {
		where = append(where, "(time_slot = ? OR time_slot = ?)")
		args = append(args, f.TimeSlot, MatchAll)
	}
	if f.Intensity != "" {
		where = append(where, "intensity = ?")
		args = append(args, f.Intensity)
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercise_advice`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY sort_order ASC, name ASC LIMIT ? OFFSET ?`
	args = append(args, limitOrDefault(f.Limit, 20), max(0, f.Offset))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []*models.ExerciseAdvice{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// WeatherTypes lists the distinct weather conditions in the exercise catalog.
func (d *DB) WeatherTypes(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT DISTINCT weather FROM exercise_advice ORDER BY weather`)
	if err != nil {
		return nil, fmt.Errorf("list weather types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan weather type: %w", err)
		}
		types = append(types, w)
	}
	return types, rows.Err()
}

// RecommendExercises suggests up to limit exercises for the weather and time
// slot, defaulting to a sunny morning.
func (d *DB) RecommendExercises(ctx context.Context, weather, timeSlot string, limit int) ([]*models.ExerciseAdvice, error) {
	if weather == "" {
		weather = "sunny"
	}
	if timeSlot == "" {
		timeSlot = "morning"
	}
	return d.ListExercises(ctx, models.ExerciseFilter{Weather: weather, TimeSlot: timeSlot, Limit: limitOrDefault(limit, 5)})
}

// SeedCatalog inserts the built-in tips and exercises into empty tables.
func (d *DB) SeedCatalog(ctx context.Context) error {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_tips`).Scan(&n); err != nil {
		return fmt.Errorf("count tips: %w", err)
	}
	now := formatTimestamp(time.Now())
	if n == 0 {
		for i, t := range seedTips {
			if _, err := d.db.ExecContext(ctx,
				`INSERT INTO health_tips (`+tipColumns+`) VALUES (?, ?, ?, ?, NULL, ?, ?)`,
				uuid.NewString(), t.Title, t.Content, t.Category, i, now); err != nil {
				return fmt.Errorf("seed tip: %w", err)
			}
		}
	}

	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercise_advice`).Scan(&n); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if n == 0 {
		for i, e := range seedExercises {
			if _, err := d.db.ExecContext(ctx,
				`INSERT INTO exercise_advice (`+exerciseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				uuid.NewString(), e.Name, e.Description, e.Weather, e.TimeSlot, string(e.Intensity),
				e.Duration, e.CaloriesBurned, i, now); err != nil {
				return fmt.Errorf("seed exercise: %w", err)
			}
		}
	}
	return nil
}

func scanTip(row rowScanner) (*models.HealthTip, error) {
	var t models.HealthTip
	var id, createdAt string
	var imageURL sql.NullString

	err := row.Scan(&id, &t.Title, &t.Content, &t.Category, &imageURL, &t.SortOrder, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tip: %w", err)
	}
	t.ID, _ = uuid.Parse(id)
	t.ImageURL = stringPtr(imageURL)
	t.CreatedAt = parseTimestamp(createdAt)
	return &t, nil
}

func scanExercise(row rowScanner) (*models.ExerciseAdvice, error) {
	var e models.ExerciseAdvice
	var id, intensity, createdAt string

	err := row.Scan(&id, &e.Name, &e.Description, &e.Weather, &e.TimeSlot, &intensity,
		&e.Duration, &e.CaloriesBurned, &e.SortOrder, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	e.ID, _ = uuid.Parse(id)
	e.Intensity = models.Intensity(intensity)
	e.CreatedAt = parseTimestamp(createdAt)
	return &e, nil
}

func limitOrDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

var seedTips = []models.HealthTip{
	{Title: "Drink water before you feel thirsty", Category: "nutrition",
		Content: "Thirst lags behind dehydration. Keep a bottle nearby and sip through the day; most adults need around 2 liters."},
	{Title: "Fill half your plate with vegetables", Category: "nutrition",
		Content: "Vegetables add fiber and micronutrients for few calories, which makes portion control easier."},
	{Title: "Keep a regular sleep schedule", Category: "sleep",
		Content: "Going to bed and waking at the same time every day, weekends included, stabilizes your body clock."},
	{Title: "Dim screens an hour before bed", Category: "sleep",
		Content: "Bright light in the evening delays melatonin release. Switch to night mode or put the phone away."},
	{Title: "Break up long sitting periods", Category: "exercise",
		Content: "Stand up and move for a few minutes every half hour. Short walks add up to thousands of steps."},
	{Title: "Warm up before exercise", Category: "exercise",
		Content: "Five to ten minutes of light movement raises muscle temperature and lowers the risk of injury."},
	{Title: "Measure blood pressure at the same time of day", Category: "monitoring",
		Content: "Sit quietly for five minutes first and take two readings a minute apart for a reliable value."},
	{Title: "Practice slow breathing", Category: "mental_health",
		Content: "A few minutes of breathing at six breaths per minute lowers heart rate and helps manage stress."},
}

var seedExercises = []models.ExerciseAdvice{
	{Name: "Brisk walk", Description: "Walk at a pace that makes talking slightly harder.",
		Weather: "sunny", TimeSlot: "morning", Intensity: models.IntensityLow, Duration: 30, CaloriesBurned: 150},
	{Name: "Jogging", Description: "Steady outdoor run at a conversational pace.",
		Weather: "sunny", TimeSlot: "evening", Intensity: models.IntensityMedium, Duration: 30, CaloriesBurned: 300},
	{Name: "Cycling", Description: "Ride on flat roads or a park loop.",
		Weather: "cloudy", TimeSlot: MatchAll, Intensity: models.IntensityMedium, Duration: 45, CaloriesBurned: 350},
	{Name: "Yoga", Description: "Gentle flow focusing on mobility and breathing.",
		Weather: MatchAll, TimeSlot: "morning", Intensity: models.IntensityLow, Duration: 30, CaloriesBurned: 120},
	{Name: "Bodyweight circuit", Description: "Squats, push-ups, lunges, and planks indoors.",
		Weather: "rainy", TimeSlot: MatchAll, Intensity: models.IntensityHigh, Duration: 20, CaloriesBurned: 250},
	{Name: "Swimming", Description: "Easy laps in an indoor pool, kind to the joints.",
		Weather: MatchAll, TimeSlot: "afternoon", Intensity: models.IntensityMedium, Duration: 40, CaloriesBurned: 400},
	{Name: "Stretching", Description: "Full-body stretch to wind down.",
		Weather: MatchAll, TimeSlot: "evening", Intensity: models.IntensityLow, Duration: 15, CaloriesBurned: 50},
	{Name: "Stair climbing", Description: "Climb stairs at a steady rhythm.",
		Weather: "rainy", TimeSlot: MatchAll, Intensity: models.IntensityHigh, Duration: 15, CaloriesBurned: 200},
}
