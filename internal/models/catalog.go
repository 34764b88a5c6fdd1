// ABOUTME: Static content catalog models: health tips and exercise advice.
// ABOUTME: Read-mostly reference data filtered by category, weather, and time slot.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthTip is an article in the health encyclopedia.
type HealthTip struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Intensity of an exercise.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// ExerciseAdvice suggests an activity for given weather and time of day.
// Weather and TimeSlot use "all" to match any condition.
type ExerciseAdvice struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Weather        string    `json:"weather"`
	TimeSlot       string    `json:"time_slot"`
	Intensity      Intensity `json:"intensity"`
	Duration       int       `json:"duration"`
	CaloriesBurned int       `json:"calories_burned"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExerciseFilter narrows an exercise advice listing. Empty fields match all.
type ExerciseFilter struct {
	Weather   string
	TimeSlot  string
	Intensity string
	Limit     int
	Offset    int
}
