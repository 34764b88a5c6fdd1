// ABOUTME: MCP tool implementations for health records and analysis.
// ABOUTME: Provides record CRUD, latest values, reports, trends, statistics, and history generation.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_record",
		Description: "Record a health measurement (weight, steps, blood pressure, heart rate, sleep, water, calories)",
	}, s.handleAddRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List health records, newest first, optionally filtered by type and date range",
	}, s.handleListRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record by ID or ID prefix",
	}, s.handleDeleteRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_latest",
		Description: "Get the most recent value for one or more metric types",
	}, s.handleGetLatest)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_health",
		Description: "Produce a health report with a 0-100 score, per-metric assessments, and recommendations",
	}, s.handleAnalyze)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_trend",
		Description: "Get the daily series of one metric over a week, month, or quarter",
	}, s.handleGetTrend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_statistics",
		Description: "Get count, average, min, max, and total of one metric over a period",
	}, s.handleGetStatistics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_history",
		Description: "Generate synthetic history ending yesterday, either realistic noise or a demo improvement trend",
	}, s.handleGenerateHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend_exercises",
		Description: "Suggest exercises for the weather and time of day",
	}, s.handleRecommendExercises)
}

// Tool input/output types

type addRecordInput struct {
	MetricType string  `json:"metric_type" jsonschema:"metric type: weight, steps, blood_pressure_sys, blood_pressure_dia, heart_rate, sleep, water, or calories"`
	Value      float64 `json:"value" jsonschema:"the measured value, non-negative"`
	RecordDate string  `json:"record_date,omitempty" jsonschema:"calendar date YYYY-MM-DD, defaults to today"`
	Note       string  `json:"note,omitempty" jsonschema:"optional note, at most 500 characters"`
}

type recordOutput struct {
	ID         string  `json:"id"`
	MetricType string  `json:"metric_type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordDate string  `json:"record_date"`
	Message    string  `json:"message"`
}

type listRecordsInput struct {
	MetricType string `json:"metric_type,omitempty" jsonschema:"filter by metric type"`
	StartDate  string `json:"start_date,omitempty" jsonschema:"earliest date YYYY-MM-DD, inclusive"`
	EndDate    string `json:"end_date,omitempty" jsonschema:"latest date YYYY-MM-DD, inclusive"`
	Limit      int    `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type listRecordsOutput struct {
	Records []*models.MetricRecord `json:"records"`
	Total   int                    `json:"total"`
	Message string                 `json:"message,omitempty"`
}

type deleteRecordInput struct {
	ID string `json:"id" jsonschema:"record ID or unique prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getLatestInput struct {
	MetricTypes []string `json:"metric_types,omitempty" jsonschema:"metric types to look up, all when empty"`
}

type latestValue struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	RecordDate string  `json:"record_date"`
}

type getLatestOutput struct {
	Latest map[string]latestValue `json:"latest"`
}

type analyzeInput struct {
	Personalized bool `json:"personalized,omitempty" jsonschema:"use the personalization profile instead of generic standards"`
}

type metricPeriodInput struct {
	MetricType string `json:"metric_type" jsonschema:"metric type to summarize"`
	Period     string `json:"period,omitempty" jsonschema:"week, month, or quarter (default week)"`
}

type statisticsOutput struct {
	Period     analysis.Period   `json:"period"`
	Statistics models.Statistics `json:"statistics"`
}

type generateInput struct {
	Days     int  `json:"days,omitempty" jsonschema:"number of days to generate, 1 to 365 (default 30)"`
	DemoMode bool `json:"demo_mode,omitempty" jsonschema:"draw a steady improvement trend instead of realistic noise"`
}

type recommendInput struct {
	Weather  string `json:"weather,omitempty" jsonschema:"weather such as sunny, cloudy, or rainy (default sunny)"`
	TimeSlot string `json:"time_slot,omitempty" jsonschema:"morning, afternoon, or evening (default morning)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"max suggestions (default 5)"`
}

type exercisesOutput struct {
	Exercises []*models.ExerciseAdvice `json:"exercises"`
}

// Tool handlers

func (s *Server) handleAddRecord(ctx context.Context, req *mcp.CallToolRequest, input addRecordInput) (*mcp.CallToolResult, recordOutput, error) {
	t, err := models.ParseMetricType(input.MetricType)
	if err != nil {
		return nil, recordOutput{}, err
	}

	r := models.NewMetricRecord(s.userID, t, input.Value)
	if input.RecordDate != "" {
		d, err := models.ParseDate(input.RecordDate)
		if err != nil {
			return nil, recordOutput{}, err
		}
		r.WithRecordDate(d)
	}
	if input.Note != "" {
		r.WithNote(input.Note)
	}

	if err := s.repo.CreateRecord(ctx, r); err != nil {
		return nil, recordOutput{}, fmt.Errorf("failed to create record: %w", err)
	}

	short := r.ID.String()[:8]
	return nil, recordOutput{
		ID:         short,
		MetricType: string(t),
		Value:      r.Value,
		Unit:       t.Unit(),
		RecordDate: models.FormatDate(r.RecordDate),
		Message:    fmt.Sprintf("Added %s: %.1f %s on %s (ID: %s)", t, r.Value, t.Unit(), models.FormatDate(r.RecordDate), short),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, any, error) {
	f := storage.RecordFilter{Limit: input.Limit}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if input.MetricType != "" {
		t, err := models.ParseMetricType(input.MetricType)
		if err != nil {
			return nil, nil, err
		}
		f.Type = &t
	}
	if input.StartDate != "" {
		start, err := models.ParseDate(input.StartDate)
		if err != nil {
			return nil, nil, err
		}
		f.Start = &start
	}
	if input.EndDate != "" {
		end, err := models.ParseDate(input.EndDate)
		if err != nil {
			return nil, nil, err
		}
		f.End = &end
	}

	records, total, err := s.repo.ListRecords(ctx, s.userID, f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list records: %w", err)
	}

	out := listRecordsOutput{Records: records, Total: total}
	if total == 0 {
		out.Message = "No records found."
	}
	return nil, out, nil
}

func (s *Server) handleDeleteRecord(ctx context.Context, req *mcp.CallToolRequest, input deleteRecordInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteRecord(ctx, s.userID, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete record: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted record: %s", input.ID),
	}, nil
}

func (s *Server) handleGetLatest(ctx context.Context, req *mcp.CallToolRequest, input getLatestInput) (*mcp.CallToolResult, getLatestOutput, error) {
	types := models.AllMetricTypes
	if len(input.MetricTypes) > 0 {
		types = make([]models.MetricType, 0, len(input.MetricTypes))
		for _, raw := range input.MetricTypes {
			t, err := models.ParseMetricType(raw)
			if err != nil {
				return nil, getLatestOutput{}, err
			}
			types = append(types, t)
		}
	}

	latest, err := s.repo.FindLatestByTypes(ctx, s.userID, types)
	if err != nil {
		return nil, getLatestOutput{}, fmt.Errorf("failed to get latest records: %w", err)
	}

	out := getLatestOutput{Latest: make(map[string]latestValue, len(latest))}
	for t, r := range latest {
		out.Latest[string(t)] = latestValue{
			Value:      r.Value,
			Unit:       t.Unit(),
			RecordDate: models.FormatDate(r.RecordDate),
		}
	}
	return nil, out, nil
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, input analyzeInput) (*mcp.CallToolResult, any, error) {
	source := analysis.SourceGeneric
	if input.Personalized {
		source = analysis.SourcePersonalized
	}
	report, err := s.analyzer.Analyze(ctx, s.userID, source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze: %w", err)
	}
	return nil, report, nil
}

func (s *Server) handleGetTrend(ctx context.Context, req *mcp.CallToolRequest, input metricPeriodInput) (*mcp.CallToolResult, analysis.Trend, error) {
	t, err := models.ParseMetricType(input.MetricType)
	if err != nil {
		return nil, analysis.Trend{}, err
	}
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, analysis.Trend{}, err
	}
	trend, err := s.analyzer.Trend(ctx, s.userID, t, period)
	if err != nil {
		return nil, analysis.Trend{}, fmt.Errorf("failed to compute trend: %w", err)
	}
	return nil, trend, nil
}

func (s *Server) handleGetStatistics(ctx context.Context, req *mcp.CallToolRequest, input metricPeriodInput) (*mcp.CallToolResult, statisticsOutput, error) {
	t, err := models.ParseMetricType(input.MetricType)
	if err != nil {
		return nil, statisticsOutput{}, err
	}
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, statisticsOutput{}, err
	}
	stats, err := s.analyzer.Statistics(ctx, s.userID, t, period)
	if err != nil {
		return nil, statisticsOutput{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return nil, statisticsOutput{Period: period, Statistics: stats}, nil
}

// parsePeriod defaults an empty period to a week and rejects unknown names.
func parsePeriod(s string) (analysis.Period, error) {
	if s == "" {
		return analysis.PeriodWeek, nil
	}
	p, ok := analysis.LookupPeriod(s)
	if !ok {
		return "", fmt.Errorf("%w: unknown period %q, want week, month, or quarter", models.ErrInvalid, s)
	}
	return p, nil
}

func (s *Server) handleGenerateHistory(ctx context.Context, req *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, any, error) {
	genReq := generator.Request{UserID: s.userID, Days: input.Days, Mode: generator.ModeRealistic}
	if input.DemoMode {
		genReq.Mode = generator.ModeDemo
	}

	profile, err := s.repo.FindProfileByUserID(ctx, s.userID)
	switch {
	case err == nil:
		genReq.Profile = profile
	case !errors.Is(err, storage.ErrNotFound):
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	res, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("generated history", "mode", res.Mode, "records", res.InsertedCount)
	return nil, res, nil
}

func (s *Server) handleRecommendExercises(ctx context.Context, req *mcp.CallToolRequest, input recommendInput) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.RecommendExercises(ctx, input.Weather, input.TimeSlot, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to recommend exercises: %w", err)
	}
	return nil, exercisesOutput{Exercises: exercises}, nil
}
