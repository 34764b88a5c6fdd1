// ABOUTME: Synthetic History Generator producing realistic or demo-trend metric records.
// ABOUTME: Values derive from a resolved baseline and are persisted in a single batch insert.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/models"
)

const (
	// DefaultDays is the history length used when none is requested.
	DefaultDays = 30
	// MaxDays bounds a single generation request.
	MaxDays = 365

	demoStartWeight = 75.0
)

// ErrInvalidDays is returned for a day count outside [1, MaxDays].
var ErrInvalidDays = errors.New("days must be between 1 and 365")

// Mode selects how values evolve over the window.
type Mode string

const (
	// ModeRealistic adds noise around the baseline with a weekly rhythm.
	ModeRealistic Mode = "realistic"
	// ModeDemo draws a steady improvement trend across the window.
	ModeDemo Mode = "demo"
)

// BasicTypes is the minimal weight-and-steps set for a quick sample history.
var BasicTypes = []models.MetricType{models.MetricWeight, models.MetricSteps}

// RecordWriter persists a batch of records.
type RecordWriter interface {
	CreateRecords(ctx context.Context, records []*models.MetricRecord) (int, error)
}

// Request describes one generation run. A nil Profile uses the flat default
// baseline. Empty Types means every metric type.
type Request struct {
	UserID  uuid.UUID
	Days    int
	Mode    Mode
	Profile *models.PersonalizationProfile
	Types   []models.MetricType
}

// Result reports what was written.
type Result struct {
	InsertedCount int                          `json:"inserted_count"`
	Days          int                          `json:"days"`
	Mode          Mode                         `json:"mode"`
	Baseline      analysis.Baseline            `json:"baseline"`
	Description   map[models.MetricType]string `json:"description,omitempty"`
}

// Generator builds and stores synthetic history.
type Generator struct {
	store  RecordWriter
	tables analysis.Tables
	rng    *rand.Rand
	now    func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithTables replaces the baseline tables.
func WithTables(t analysis.Tables) Option {
	return func(g *Generator) { g.tables = t }
}

// New creates a Generator writing to store.
func New(store RecordWriter, opts ...Option) *Generator {
	g := &Generator{
		store:  store,
		tables: analysis.DefaultTables(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the history for req and inserts it in one batch.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	records, res, err := g.Build(req)
	if err != nil {
		return nil, err
	}
	n, err := g.store.CreateRecords(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("insert generated records: %w", err)
	}
	res.InsertedCount = n
	return res, nil
}

// Build produces the records for req without storing them. Dates run from
// today-days to yesterday, oldest first.
func (g *Generator) Build(req Request) ([]*models.MetricRecord, *Result, error) {
	if req.Days == 0 {
		req.Days = DefaultDays
	}
	if req.Days < 1 || req.Days > MaxDays {
		return nil, nil, ErrInvalidDays
	}
	if req.Mode == "" {
		req.Mode = ModeRealistic
	}
	types := req.Types
	if len(types) == 0 {
		types = models.AllMetricTypes
	}

	var b analysis.Baseline
	if req.Profile != nil {
		b = analysis.ResolveBaseline(req.Profile, g.tables)
	} else {
		b = g.tables.Base
	}

	res := &Result{Days: req.Days, Mode: req.Mode, Baseline: b}
	if req.Mode == ModeDemo {
		res.Description = demoDescription
	}

	now := g.now()
	today := models.DateOf(now)
	records := make([]*models.MetricRecord, 0, req.Days*len(types))

	for i := req.Days; i >= 1; i-- {
		date := today.AddDate(0, 0, -i)
		elapsed := req.Days - i
		for _, t := range types {
			var v float64
			if req.Mode == ModeDemo {
				v = g.demoValue(t, b, float64(elapsed)/float64(req.Days), elapsed)
			} else {
				v = g.realisticValue(t, b, date, elapsed)
			}
			records = append(records, &models.MetricRecord{
				ID:         uuid.New(),
				UserID:     req.UserID,
				Type:       t,
				Value:      math.Max(0, v),
				RecordDate: date,
				CreatedAt:  now,
			})
		}
	}
	return records, res, nil
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func (g *Generator) realisticValue(t models.MetricType, b analysis.Baseline, date time.Time, elapsed int) float64 {
	weekend := isWeekend(date)

	switch t {
	case models.MetricWeight:
		return round1(b.Weight - float64(elapsed)*0.01 + g.between(-0.5, 0.5))
	case models.MetricSteps:
		steps := float64(b.Steps + g.intBetween(-1000, 2000))
		if weekend {
			steps *= 0.7
		}
		return math.Floor(steps)
	case models.MetricHeartRate:
		return float64(g.intBetween(b.HeartRateMin, b.HeartRateMax))
	case models.MetricBPSys:
		spread := 10
		if b.BloodPressureSys > 130 {
			spread = 15
		}
		return float64(g.intBetween(b.BloodPressureSys-5, b.BloodPressureSys+spread))
	case models.MetricBPDia:
		spread := 8
		if b.BloodPressureDia > 85 {
			spread = 10
		}
		return float64(g.intBetween(b.BloodPressureDia-3, b.BloodPressureDia+spread))
	case models.MetricSleep:
		sleep := b.Sleep + g.between(-0.5, 0.5)
		if weekend {
			sleep *= 1.1
		}
		return round1(sleep)
	case models.MetricWater:
		w := float64(b.Water)
		return float64(g.intBetween(int(w*0.85), int(w*1.15)))
	case models.MetricCalories:
		return float64(g.intBetween(1500, 2500))
	}
	return 0
}

var demoDescription = map[models.MetricType]string{
	models.MetricWeight:    "weight falls steadily by about 0.05 kg per day",
	models.MetricSteps:     "daily steps rise from 70% to 120% of the baseline",
	models.MetricHeartRate: "resting heart rate falls from the baseline maximum toward the minimum",
	models.MetricSleep:     "sleep climbs from 80% of the baseline to the full baseline",
	models.MetricBPSys:     "systolic pressure improves gradually",
	models.MetricBPDia:     "diastolic pressure improves gradually",
	models.MetricWater:     "water intake climbs from 80% of the baseline to the full baseline",
	models.MetricCalories:  "calories vary randomly between 1500 and 2500",
}

func (g *Generator) demoValue(t models.MetricType, b analysis.Baseline, p float64, elapsed int) float64 {
	switch t {
	case models.MetricWeight:
		return round1(demoStartWeight - float64(elapsed)*0.05 + g.between(-0.2, 0.2))
	case models.MetricSteps:
		s := float64(b.Steps)
		return math.Floor(s*0.7 + s*0.5*p + float64(g.intBetween(-300, 500)))
	case models.MetricHeartRate:
		hi, lo := float64(b.HeartRateMax), float64(b.HeartRateMin)
		return math.Floor(hi - (hi-lo)*p + float64(g.intBetween(-2, 2)))
	case models.MetricSleep:
		return round1(b.Sleep*0.8 + b.Sleep*0.2*p + g.between(-0.3, 0.3))
	case models.MetricBPSys:
		improvement := 5.0
		if b.BloodPressureSys > 130 {
			improvement = 10
		}
		return math.Floor(float64(b.BloodPressureSys) - improvement*p + float64(g.intBetween(-2, 2)))
	case models.MetricBPDia:
		improvement := 3.0
		if b.BloodPressureDia > 85 {
			improvement = 5
		}
		return math.Floor(float64(b.BloodPressureDia) - improvement*p + float64(g.intBetween(-1, 1)))
	case models.MetricWater:
		w := float64(b.Water)
		return math.Floor(w*0.8 + w*0.2*p + float64(g.intBetween(-100, 100)))
	case models.MetricCalories:
		return float64(g.intBetween(1500, 2500))
	}
	return 0
}

// between returns a uniform value in [lo, hi).
func (g *Generator) between(lo, hi float64) float64 {
	return g.rng.Float64()*(hi-lo) + lo
}

// intBetween returns floor of a uniform value in [lo, hi).
func (g *Generator) intBetween(lo, hi int) int {
	return int(math.Floor(g.between(float64(lo), float64(hi))))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
