// ABOUTME: MetricRecord model and MetricType enum for daily health observations.
// ABOUTME: Defines the 8 tracked metric types, their units, and calendar-date helpers.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of a calendar date.
const DateLayout = "2006-01-02"

// MaxNoteLength bounds the free-text note attached to a record.
const MaxNoteLength = 500

var (
	// ErrInvalidMetricType is returned when a string does not name a known metric type.
	ErrInvalidMetricType error = &validationError{msg: "invalid metric type"}
	// ErrNotFound is returned by stores when an entity does not exist or is
	// not owned by the requesting user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by stores when a unique key is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalid matches every domain validation failure.
	ErrInvalid = errors.New("invalid input")
)

// validationError keeps its own message while matching ErrInvalid.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalid }

func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}

// MetricType represents the type of health metric being recorded.
type MetricType string

const (
	MetricWeight    MetricType = "weight"
	MetricSteps     MetricType = "steps"
	MetricBPSys     MetricType = "blood_pressure_sys"
	MetricBPDia     MetricType = "blood_pressure_dia"
	MetricHeartRate MetricType = "heart_rate"
	MetricSleep     MetricType = "sleep"
	MetricWater     MetricType = "water"
	MetricCalories  MetricType = "calories"
)

// MetricUnits maps metric types to their display units.
var MetricUnits = map[MetricType]string{
	MetricWeight:    "kg",
	MetricSteps:     "steps",
	MetricBPSys:     "mmHg",
	MetricBPDia:     "mmHg",
	MetricHeartRate: "bpm",
	MetricSleep:     "hours",
	MetricWater:     "ml",
	MetricCalories:  "kcal",
}

// AllMetricTypes lists every valid metric type in display order.
var AllMetricTypes = []MetricType{
	MetricWeight, MetricSteps, MetricBPSys, MetricBPDia,
	MetricHeartRate, MetricSleep, MetricWater, MetricCalories,
}

// IsValidMetricType checks if a string is a valid metric type.
func IsValidMetricType(s string) bool {
	for _, mt := range AllMetricTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// ParseMetricType converts s into a MetricType.
func ParseMetricType(s string) (MetricType, error) {
	if !IsValidMetricType(s) {
		return "", fmt.Errorf("%w: %s", ErrInvalidMetricType, s)
	}
	return MetricType(s), nil
}

// Unit returns the display unit of the metric type.
func (t MetricType) Unit() string {
	return MetricUnits[t]
}

// Cumulative reports whether several observations on the same day add up
// (steps walked, water drunk, calories eaten) rather than repeat a measurement.
func (t MetricType) Cumulative() bool {
	switch t {
	case MetricSteps, MetricWater, MetricCalories:
		return true
	}
	return false
}

// MetricRecord is a single dated observation owned by one user.
type MetricRecord struct {
	ID         uuid.UUID  `json:"id" yaml:"id"`
	UserID     uuid.UUID  `json:"user_id" yaml:"user_id"`
	Type       MetricType `json:"type" yaml:"type"`
	Value      float64    `json:"value" yaml:"value"`
	Note       *string    `json:"note,omitempty" yaml:"note,omitempty"`
	RecordDate time.Time  `json:"record_date" yaml:"record_date"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// NewMetricRecord creates a record dated today with a generated UUID.
func NewMetricRecord(userID uuid.UUID, metricType MetricType, value float64) *MetricRecord {
	now := time.Now()
	return &MetricRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       metricType,
		Value:      value,
		RecordDate: DateOf(now),
		CreatedAt:  now,
	}
}

// WithRecordDate sets the calendar date of the observation.
func (r *MetricRecord) WithRecordDate(t time.Time) *MetricRecord {
	r.RecordDate = DateOf(t)
	return r
}

// WithNote sets the note on the record.
func (r *MetricRecord) WithNote(note string) *MetricRecord {
	r.Note = &note
	return r
}

// Validate checks the record's domain constraints.
func (r *MetricRecord) Validate() error {
	if !IsValidMetricType(string(r.Type)) {
		return fmt.Errorf("%w: %s", ErrInvalidMetricType, r.Type)
	}
	if r.Value < 0 {
		return invalidf("value must be non-negative, got %v", r.Value)
	}
	if r.Note != nil && len([]rune(*r.Note)) > MaxNoteLength {
		return invalidf("note exceeds %d characters", MaxNoteLength)
	}
	return nil
}

// DateOf truncates t to its calendar date (midnight UTC of the local date).
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalidf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
