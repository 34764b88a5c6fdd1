// ABOUTME: Export and import of one user's health data.
// ABOUTME: Supports JSON and YAML round trips plus a read-only Markdown report.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion identifies the export document layout.
const ExportVersion = "1.0"

// ExportData represents the full export format for one user's data.
type ExportData struct {
	Version    string                         `json:"version" yaml:"version"`
	ExportedAt time.Time                      `json:"exported_at" yaml:"exported_at"`
	Tool       string                         `json:"tool" yaml:"tool"`
	Username   string                         `json:"username" yaml:"username"`
	Goals      *models.HealthGoals            `json:"goals,omitempty" yaml:"goals,omitempty"`
	Profile    *models.PersonalizationProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Records    []*models.MetricRecord         `json:"records" yaml:"records"`
}

// ImportSummary counts what an import wrote.
type ImportSummary struct {
	Records int  `json:"records"`
	Skipped int  `json:"skipped"`
	Goals   bool `json:"goals"`
	Profile bool `json:"profile"`
}

// GetAllData retrieves everything stored for a user.
func (d *DB) GetAllData(ctx context.Context, userID uuid.UUID) (*ExportData, error) {
	user, err := d.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	records, _, err := d.ListRecords(ctx, userID, RecordFilter{})
	if err != nil {
		return nil, err
	}

	goals, err := d.FindGoalsWithDefaults(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "healthtrack",
		Username:   user.Username,
		Goals:      goals,
		Records:    records,
	}

	profile, err := d.FindProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		data.Profile = profile
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	return data, nil
}

// ImportData writes an export into userID's account. Records keep their IDs;
// records whose ID already exists are skipped. Goals and profile replace the
// user's current ones.
func (d *DB) ImportData(ctx context.Context, userID uuid.UUID, data *ExportData) (*ImportSummary, error) {
	sum := &ImportSummary{}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range data.Records {
		r.UserID = userID
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now()
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("import record %s: %w", r.ID, err)
		}
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO health_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			recordArgs(r)...)
		if err != nil {
			return nil, fmt.Errorf("import record: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			sum.Skipped++
		} else {
			sum.Records++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	if data.Goals != nil {
		data.Goals.UserID = userID
		if err := d.UpsertGoals(ctx, data.Goals); err != nil {
			return nil, fmt.Errorf("import goals: %w", err)
		}
		sum.Goals = true
	}

	if data.Profile != nil {
		data.Profile.UserID = userID
		if existing, err := d.FindProfileByUserID(ctx, userID); err == nil {
			data.Profile.ID = existing.ID
		} else if data.Profile.ID == uuid.Nil {
			data.Profile.ID = uuid.New()
		}
		if err := d.UpsertProfile(ctx, data.Profile); err != nil {
			return nil, fmt.Errorf("import profile: %w", err)
		}
		sum.Profile = true
	}

	return sum, nil
}

// ExportJSON exports all of a user's data as JSON.
func (d *DB) ExportJSON(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := d.GetAllData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all of a user's data as YAML.
func (d *DB) ExportYAML(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := d.GetAllData(ctx, userID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, userID uuid.UUID, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, userID, &data)
}

// ImportYAML imports data from YAML bytes.
func (d *DB) ImportYAML(ctx context.Context, userID uuid.UUID, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	return d.ImportData(ctx, userID, &data)
}

// ExportMarkdown renders a user's records as Markdown tables, one per type.
// metricType and since narrow the report when set.
func (d *DB) ExportMarkdown(ctx context.Context, userID uuid.UUID, metricType *models.MetricType, since *time.Time) (string, error) {
	records, _, err := d.ListRecords(ctx, userID, RecordFilter{Type: metricType, Start: since})
	if err != nil {
		return "", err
	}

	grouped := make(map[models.MetricType][]*models.MetricRecord)
	for _, r := range records {
		grouped[r.Type] = append(grouped[r.Type], r)
	}
	types := make([]models.MetricType, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var sb strings.Builder
	now := time.Now()
	fmt.Fprintf(&sb, "# Health Export - %s\n\n", now.Format(models.DateLayout))
	fmt.Fprintf(&sb, "Generated: %s\n\n", now.Format(time.RFC3339))

	for _, t := range types {
		fmt.Fprintf(&sb, "## %s\n\n", t)
		sb.WriteString("| Date | Value | Note |\n")
		sb.WriteString("|------|-------|------|\n")
		for _, r := range grouped[t] {
			note := ""
			if r.Note != nil {
				note = *r.Note
			}
			fmt.Fprintf(&sb, "| %s | %g %s | %s |\n", models.FormatDate(r.RecordDate), r.Value, t.Unit(), note)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
