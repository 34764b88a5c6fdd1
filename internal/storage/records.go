// ABOUTME: Health record CRUD, range reads, and aggregates for SQLite storage.
// ABOUTME: Every query is scoped to the owning user; IDs resolve from full UUIDs or prefixes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/models"
)

// MaxBatchSize bounds a single client batch create.
const MaxBatchSize = 100

// insertChunk is the number of rows per multi-row INSERT statement.
const insertChunk = 100

const recordColumns = `id, user_id, record_type, value, note, record_date, created_at`

// RecordFilter narrows ListRecords. Nil fields match everything.
type RecordFilter struct {
	Type   *models.MetricType
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}

// CreateRecord stores a new record.
func (d *DB) CreateRecord(ctx context.Context, r *models.MetricRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO health_records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := d.db.ExecContext(ctx, query, recordArgs(r)...); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// CreateRecords inserts records in one transaction using multi-row INSERTs
// and returns the number inserted.
func (d *DB) CreateRecords(ctx context.Context, records []*models.MetricRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for start := 0; start < len(records); start += insertChunk {
		chunk := records[start:min(start+insertChunk, len(records))]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*7)
		for i, r := range chunk {
			placeholders[i] = "(?, ?, ?, ?, ?, ?, ?)"
			args = append(args, recordArgs(r)...)
		}
		query := `INSERT INTO health_records (` + recordColumns + `) VALUES ` + strings.Join(placeholders, ", ")

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("batch insert records: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("batch insert records: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return inserted, nil
}

// GetRecord retrieves one of the user's records by ID or ID prefix.
func (d *DB) GetRecord(ctx context.Context, userID uuid.UUID, idOrPrefix string) (*models.MetricRecord, error) {
	id, err := d.resolveRecordID(ctx, userID, idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + recordColumns + ` FROM health_records WHERE id = ? AND user_id = ?`
	r, err := scanRecord(d.db.QueryRowContext(ctx, query, id, userID.String()))
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// ListRecords returns the user's records matching f, newest first, along
// with the total number of matches ignoring limit and offset.
func (d *DB) ListRecords(ctx context.Context, userID uuid.UUID, f RecordFilter) ([]*models.MetricRecord, int, error) {
	where := []string{"user_id = ?"}
	args := []any{userID.String()}

	if f.Type != nil {
		where = append(where, "record_type = ?")
		args = append(args, string(*f.Type))
	}
	if f.Start != nil {
		where = append(where, "record_date >= ?")
		args = append(args, models.FormatDate(*f.Start))
	}
	if f.End != nil {
		where = append(where, "record_date <= ?")
		args = append(args, models.FormatDate(*f.End))
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM health_records WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	query := `SELECT ` + recordColumns + ` FROM health_records WHERE ` + clause +
		` ORDER BY record_date DESC, created_at DESC`
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, max(0, f.Offset))
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// UpdateRecord saves value, note, and date of one of the user's records.
func (d *DB) UpdateRecord(ctx context.Context, r *models.MetricRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	res, err := d.db.ExecContext(ctx, `
		UPDATE health_records SET value = ?, note = ?, record_date = ?
		WHERE id = ? AND user_id = ?`,
		r.Value, nullString(r.Note), models.FormatDate(r.RecordDate),
		r.ID.String(), r.UserID.String())
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return expectOneRow(res, "update record")
}

// DeleteRecord removes one of the user's records by ID or prefix.
func (d *DB) DeleteRecord(ctx context.Context, userID uuid.UUID, idOrPrefix string) error {
	id, err := d.resolveRecordID(ctx, userID, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	res, err := d.db.ExecContext(ctx, "DELETE FROM health_records WHERE id = ? AND user_id = ?", id, userID.String())
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return expectOneRow(res, "delete record")
}

// FindLatestByTypes returns the most recent record of each requested type.
// Types without records are absent from the map.
func (d *DB) FindLatestByTypes(ctx context.Context, userID uuid.UUID, types []models.MetricType) (map[models.MetricType]*models.MetricRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM health_records
		WHERE user_id = ? AND record_type = ?
		ORDER BY record_date DESC, created_at DESC
		LIMIT 1`

	latest := make(map[models.MetricType]*models.MetricRecord, len(types))
	for _, t := range types {
		r, err := scanRecord(d.db.QueryRowContext(ctx, query, userID.String(), string(t)))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("latest %s: %w", t, err)
		}
		latest[t] = r
	}
	return latest, nil
}

// FindByDateRange returns the user's records dated within [start, end],
// oldest first. Empty types matches every type.
func (d *DB) FindByDateRange(ctx context.Context, userID uuid.UUID, types []models.MetricType, start, end time.Time) ([]*models.MetricRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM health_records
		WHERE user_id = ? AND record_date >= ? AND record_date <= ?`
	args := []any{userID.String(), models.FormatDate(start), models.FormatDate(end)}

	if len(types) > 0 {
		query += " AND record_type IN (?" + strings.Repeat(", ?", len(types)-1) + ")"
		for _, t := range types {
			args = append(args, string(t))
		}
	}
	query += " ORDER BY record_date ASC, created_at ASC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find records by date range: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// AggregateByDateRange summarizes the user's records per type within [start, end].
func (d *DB) AggregateByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.Statistics, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT record_type, COUNT(*), AVG(value), MIN(value), MAX(value), SUM(value)
		FROM health_records
		WHERE user_id = ? AND record_date >= ? AND record_date <= ?
		GROUP BY record_type
		ORDER BY record_type`,
		userID.String(), models.FormatDate(start), models.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("aggregate records: %w", err)
	}
	defer rows.Close()

	var stats []models.Statistics
	for rows.Next() {
		var s models.Statistics
		var t string
		if err := rows.Scan(&t, &s.Count, &s.Average, &s.Min, &s.Max, &s.Sum); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		s.Type = models.MetricType(t)
		s.Average = math.Round(s.Average*10) / 10
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// resolveRecordID finds the full ID of one of the user's records from a prefix.
func (d *DB) resolveRecordID(ctx context.Context, userID uuid.UUID, idOrPrefix string) (string, error) {
	if _, err := uuid.Parse(idOrPrefix); err == nil {
		return idOrPrefix, nil
	}

	rows, err := d.db.QueryContext(ctx,
		`SELECT id FROM health_records WHERE user_id = ? AND id LIKE ? || '%'`,
		userID.String(), idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve record ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan record ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve record ID: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("record %s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple records", idOrPrefix)
	}
	return matches[0], nil
}

func recordArgs(r *models.MetricRecord) []any {
	return []any{
		r.ID.String(),
		r.UserID.String(),
		string(r.Type),
		r.Value,
		nullString(r.Note),
		models.FormatDate(r.RecordDate),
		formatTimestamp(r.CreatedAt),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a MetricRecord.
func scanRecord(row rowScanner) (*models.MetricRecord, error) {
	var r models.MetricRecord
	var id, userID, recordType, recordDate, createdAt string
	var note sql.NullString

	err := row.Scan(&id, &userID, &recordType, &r.Value, &note, &recordDate, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan record: %w", err)
	}

	r.ID, _ = uuid.Parse(id)
	r.UserID, _ = uuid.Parse(userID)
	r.Type = models.MetricType(recordType)
	r.Note = stringPtr(note)
	r.RecordDate = parseDate(recordDate)
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}

// scanRecords scans multiple rows into a slice of records.
func scanRecords(rows *sql.Rows) ([]*models.MetricRecord, error) {
	records := []*models.MetricRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func expectOneRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
