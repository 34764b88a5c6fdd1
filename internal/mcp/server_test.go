// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers against a temp SQLite store.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer opens a temp database, creates a user, and builds a server for them.
func setupTestServer(t *testing.T) (*Server, *storage.DB, *models.User) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "healthtrack.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user := models.NewUser("mcpuser", "mcp@example.com")
	user.PasswordHash = "hash"
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	server, err := NewServer(db, user.ID, nil)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db, user
}

func addRecord(t *testing.T, db *storage.DB, userID uuid.UUID, mt models.MetricType, value float64, date time.Time) *models.MetricRecord {
	t.Helper()
	r := models.NewMetricRecord(userID, mt, value).WithRecordDate(date)
	if err := db.CreateRecord(context.Background(), r); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	return r
}

func TestNewServer(t *testing.T) {
	server, _, user := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.userID != user.ID {
		t.Errorf("userID = %s, want %s", server.userID, user.ID)
	}
}

func TestNewServerRequiresUser(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "healthtrack.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := NewServer(db, uuid.Nil, nil); err == nil {
		t.Error("Expected error for nil user")
	}
}

func TestHandleAddRecord(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     addRecordInput
		wantErr   bool
		errSubstr string
	}{
		{
			name:  "valid weight record",
			input: addRecordInput{MetricType: "weight", Value: 82.5},
		},
		{
			name:  "record with note and date",
			input: addRecordInput{MetricType: "sleep", Value: 7.5, RecordDate: "2025-01-31", Note: "slept well"},
		},
		{
			name:      "invalid metric type",
			input:     addRecordInput{MetricType: "mood", Value: 7},
			wantErr:   true,
			errSubstr: "invalid metric type",
		},
		{
			name:    "invalid date",
			input:   addRecordInput{MetricType: "steps", Value: 100, RecordDate: "31/01/2025"},
			wantErr: true,
		},
		{
			name:    "negative value",
			input:   addRecordInput{MetricType: "steps", Value: -5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAddRecord(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if output.MetricType != tt.input.MetricType {
				t.Errorf("MetricType = %s, want %s", output.MetricType, tt.input.MetricType)
			}
			if output.Value != tt.input.Value {
				t.Errorf("Value = %f, want %f", output.Value, tt.input.Value)
			}
			if len(output.ID) != 8 {
				t.Errorf("ID = %q, want 8-char prefix", output.ID)
			}
			if tt.input.RecordDate != "" && output.RecordDate != tt.input.RecordDate {
				t.Errorf("RecordDate = %s, want %s", output.RecordDate, tt.input.RecordDate)
			}

			r, err := db.GetRecord(ctx, user.ID, output.ID)
			if err != nil {
				t.Fatalf("GetRecord failed: %v", err)
			}
			if tt.input.Note != "" && (r.Note == nil || *r.Note != tt.input.Note) {
				t.Errorf("Note = %v, want %q", r.Note, tt.input.Note)
			}
		})
	}
}

func TestHandleListRecords(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	addRecord(t, db, user.ID, models.MetricWeight, 82.5, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	addRecord(t, db, user.ID, models.MetricWeight, 82.0, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	addRecord(t, db, user.ID, models.MetricSteps, 9000, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		input listRecordsInput
		want  int
	}{
		{name: "list all", input: listRecordsInput{}, want: 3},
		{name: "limit 1", input: listRecordsInput{Limit: 1}, want: 1},
		{name: "filter by type", input: listRecordsInput{MetricType: "weight"}, want: 2},
		{name: "filter by start date", input: listRecordsInput{StartDate: "2025-01-11"}, want: 2},
		{name: "filter by end date", input: listRecordsInput{EndDate: "2025-01-10"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			out, ok := output.(listRecordsOutput)
			if !ok {
				t.Fatalf("output type = %T, want listRecordsOutput", output)
			}
			if len(out.Records) != tt.want {
				t.Errorf("got %d records, want %d", len(out.Records), tt.want)
			}
		})
	}

	if _, _, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, listRecordsInput{MetricType: "mood"}); err == nil {
		t.Error("Expected error for invalid type")
	}
}

func TestHandleListRecordsEmpty(t *testing.T) {
	server, _, _ := setupTestServer(t)

	_, output, err := server.handleListRecords(context.Background(), &mcp.CallToolRequest{}, listRecordsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := output.(listRecordsOutput)
	if out.Message != "No records found." {
		t.Errorf("Message = %q, want empty-state message", out.Message)
	}
}

func TestHandleDeleteRecord(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	r := addRecord(t, db, user.ID, models.MetricWeight, 82.5, time.Now())

	_, output, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, deleteRecordInput{ID: r.ID.String()[:8]})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	if _, err := db.GetRecord(ctx, user.ID, r.ID.String()); err == nil {
		t.Error("Record should be deleted")
	}
}

func TestHandleDeleteRecordNotFound(t *testing.T) {
	server, _, _ := setupTestServer(t)

	_, _, err := server.handleDeleteRecord(context.Background(), &mcp.CallToolRequest{}, deleteRecordInput{ID: "nonexistent"})
	if err == nil {
		t.Error("Expected error for missing record")
	}
}

func TestHandleDeleteRecordOtherUser(t *testing.T) {
	server, db, _ := setupTestServer(t)
	ctx := context.Background()

	other := models.NewUser("other", "other@example.com")
	other.PasswordHash = "hash"
	if err := db.CreateUser(ctx, other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	r := addRecord(t, db, other.ID, models.MetricSteps, 5000, time.Now())

	if _, _, err := server.handleDeleteRecord(ctx, &mcp.CallToolRequest{}, deleteRecordInput{ID: r.ID.String()}); err == nil {
		t.Error("Expected error deleting another user's record")
	}
}

func TestHandleGetLatest(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	addRecord(t, db, user.ID, models.MetricWeight, 83.0, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	addRecord(t, db, user.ID, models.MetricWeight, 82.0, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	addRecord(t, db, user.ID, models.MetricSteps, 9000, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC))

	_, output, err := server.handleGetLatest(ctx, &mcp.CallToolRequest{}, getLatestInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(output.Latest) != 2 {
		t.Errorf("got %d types, want 2", len(output.Latest))
	}
	w := output.Latest["weight"]
	if w.Value != 82.0 || w.Unit != "kg" || w.RecordDate != "2025-01-12" {
		t.Errorf("weight latest = %+v", w)
	}

	_, output, err = server.handleGetLatest(ctx, &mcp.CallToolRequest{}, getLatestInput{MetricTypes: []string{"steps"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(output.Latest) != 1 {
		t.Errorf("got %d types, want 1", len(output.Latest))
	}

	if _, _, err := server.handleGetLatest(ctx, &mcp.CallToolRequest{}, getLatestInput{MetricTypes: []string{"mood"}}); err == nil {
		t.Error("Expected error for invalid type")
	}
}

func TestHandleAnalyze(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	today := models.DateOf(time.Now())
	addRecord(t, db, user.ID, models.MetricSteps, 9000, today)
	addRecord(t, db, user.ID, models.MetricSleep, 7.5, today)

	for _, personalized := range []bool{false, true} {
		_, output, err := server.handleAnalyze(ctx, &mcp.CallToolRequest{}, analyzeInput{Personalized: personalized})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		report, ok := output.(*analysis.HealthReport)
		if !ok {
			t.Fatalf("output type = %T, want *analysis.HealthReport", output)
		}
		if report.Score < 0 || report.Score > 100 {
			t.Errorf("Score = %d, want within [0, 100]", report.Score)
		}
		wantSource := analysis.SourceGeneric
		if personalized {
			wantSource = analysis.SourcePersonalized
		}
		if report.Source != wantSource {
			t.Errorf("Source = %s, want %s", report.Source, wantSource)
		}
	}
}

func TestHandleTrendAndStatistics(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	today := models.DateOf(time.Now())
	addRecord(t, db, user.ID, models.MetricSteps, 4000, today.AddDate(0, 0, -1))
	addRecord(t, db, user.ID, models.MetricSteps, 3000, today.AddDate(0, 0, -1))
	addRecord(t, db, user.ID, models.MetricSteps, 8000, today.AddDate(0, 0, -2))

	_, trend, err := server.handleGetTrend(ctx, &mcp.CallToolRequest{}, metricPeriodInput{MetricType: "steps"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if trend.Period != analysis.PeriodWeek {
		t.Errorf("Period = %s, want week", trend.Period)
	}
	if len(trend.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(trend.Points))
	}
	if trend.Points[1].Value != 7000 {
		t.Errorf("summed steps = %v, want 7000", trend.Points[1].Value)
	}

	_, stats, err := server.handleGetStatistics(ctx, &mcp.CallToolRequest{}, metricPeriodInput{MetricType: "steps", Period: "month"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Statistics.Count != 3 || stats.Statistics.Max != 8000 {
		t.Errorf("statistics = %+v", stats.Statistics)
	}

	if _, _, err := server.handleGetTrend(ctx, &mcp.CallToolRequest{}, metricPeriodInput{MetricType: "mood"}); err == nil {
		t.Error("Expected error for invalid type")
	}
	for _, period := range []string{"year", "fortnight"} {
		in := metricPeriodInput{MetricType: "steps", Period: period}
		if _, _, err := server.handleGetTrend(ctx, &mcp.CallToolRequest{}, in); !errors.Is(err, models.ErrInvalid) {
			t.Errorf("trend period %q: err = %v, want ErrInvalid", period, err)
		}
		if _, _, err := server.handleGetStatistics(ctx, &mcp.CallToolRequest{}, in); !errors.Is(err, models.ErrInvalid) {
			t.Errorf("statistics period %q: err = %v, want ErrInvalid", period, err)
		}
	}

	_, quarter, err := server.handleGetTrend(ctx, &mcp.CallToolRequest{}, metricPeriodInput{MetricType: "steps", Period: "quarter"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if quarter.Period != analysis.PeriodQuarter {
		t.Errorf("Period = %s, want quarter", quarter.Period)
	}
}

func TestHandleGenerateHistory(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleGenerateHistory(ctx, &mcp.CallToolRequest{}, generateInput{Days: 3, DemoMode: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res := output.(*generator.Result)
	want := 3 * len(models.AllMetricTypes)
	if res.InsertedCount != want {
		t.Errorf("InsertedCount = %d, want %d", res.InsertedCount, want)
	}

	_, total, err := db.ListRecords(ctx, user.ID, storage.RecordFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if total != want {
		t.Errorf("stored %d records, want %d", total, want)
	}

	if _, _, err := server.handleGenerateHistory(ctx, &mcp.CallToolRequest{}, generateInput{Days: 400}); err == nil {
		t.Error("Expected error for too many days")
	}
}

func TestHandleRecommendExercises(t *testing.T) {
	server, _, _ := setupTestServer(t)

	_, output, err := server.handleRecommendExercises(context.Background(), &mcp.CallToolRequest{}, recommendInput{Weather: "rainy", TimeSlot: "evening"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := output.(exercisesOutput)
	if len(out.Exercises) == 0 {
		t.Error("Expected at least one exercise")
	}
	for _, e := range out.Exercises {
		if e.Weather != "rainy" && e.Weather != storage.MatchAll {
			t.Errorf("exercise %s has weather %s", e.Name, e.Weather)
		}
	}
}

func TestHandleRecentResource(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		addRecord(t, db, user.ID, models.MetricWeight, float64(80+i), time.Now().AddDate(0, 0, -i))
	}

	result, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "health://recent" {
		t.Errorf("URI = %s, want health://recent", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var body struct {
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Records) != 10 || body.Total != 15 {
		t.Errorf("got %d records of %d, want 10 of 15", len(body.Records), body.Total)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	today := models.DateOf(time.Now())
	addRecord(t, db, user.ID, models.MetricWater, 500, today)
	addRecord(t, db, user.ID, models.MetricWater, 750, today)
	addRecord(t, db, user.ID, models.MetricWater, 2000, today.AddDate(0, 0, -1))

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var summary analysis.TodaySummary
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if summary.Date != models.FormatDate(today) {
		t.Errorf("Date = %s, want %s", summary.Date, models.FormatDate(today))
	}
	if got := summary.Metrics[models.MetricWater].Value; got != 1250 {
		t.Errorf("water today = %v, want 1250", got)
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server, db, user := setupTestServer(t)
	ctx := context.Background()

	today := models.DateOf(time.Now())
	addRecord(t, db, user.ID, models.MetricWeight, 70, today)
	addRecord(t, db, user.ID, models.MetricSteps, 10000, today)
	addRecord(t, db, user.ID, models.MetricWater, 1500, today)

	result, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var body struct {
		Metrics     map[string]map[string]any `json:"metrics"`
		HealthScore int                       `json:"health_score"`
		Summary     map[string]int            `json:"summary"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := body.Metrics["body"]["weight"]; !ok {
		t.Error("Expected weight under body")
	}
	if _, ok := body.Metrics["activity"]["steps"]; !ok {
		t.Error("Expected steps under activity")
	}
	if _, ok := body.Metrics["intake"]["water"]; !ok {
		t.Error("Expected water under intake")
	}
	if body.Summary["tracked_metric_types"] != 3 {
		t.Errorf("tracked_metric_types = %d, want 3", body.Summary["tracked_metric_types"])
	}
}

func TestHandleSummaryResourceEmpty(t *testing.T) {
	server, _, _ := setupTestServer(t)

	result, err := server.handleSummaryResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result == nil || len(result.Contents) == 0 {
		t.Fatal("Expected non-empty result")
	}
}
