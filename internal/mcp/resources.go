// ABOUTME: MCP resource implementations for health records.
// ABOUTME: Provides health://recent, health://today, and health://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentURI  = "health://recent"
	todayURI   = "health://today"
	summaryURI = "health://summary"
)

// Metric groupings used by the summary dashboard.
var (
	bodyTypes     = []models.MetricType{models.MetricWeight, models.MetricBPSys, models.MetricBPDia, models.MetricHeartRate}
	activityTypes = []models.MetricType{models.MetricSteps, models.MetricSleep}
	intakeTypes   = []models.MetricType{models.MetricWater, models.MetricCalories}
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Health Records",
		Description: "Last 10 health records across all metric types",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Health Data",
		Description: "Today's totals and averages with progress toward daily goals",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Health Summary Dashboard",
		Description: "Latest value for each metric type, the health score, and goals",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, total, err := s.repo.ListRecords(ctx, s.userID, storage.RecordFilter{Limit: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return jsonResource(recentURI, map[string]any{
		"records": records,
		"total":   total,
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	summary, err := s.analyzer.Today(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize today: %w", err)
	}
	return jsonResource(todayURI, summary)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	latest, err := s.repo.FindLatestByTypes(ctx, s.userID, models.AllMetricTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest records: %w", err)
	}

	report, err := s.analyzer.Analyze(ctx, s.userID, analysis.SourceGeneric)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze: %w", err)
	}

	group := func(types []models.MetricType) map[string]any {
		out := make(map[string]any)
		for _, t := range types {
			r, ok := latest[t]
			if !ok {
				continue
			}
			out[string(t)] = map[string]any{
				"value":       r.Value,
				"unit":        t.Unit(),
				"record_date": models.FormatDate(r.RecordDate),
				"note":        r.Note,
			}
		}
		return out
	}

	result := map[string]any{
		"generated_at": time.Now().Format(time.RFC3339),
		"metrics": map[string]any{
			"body":     group(bodyTypes),
			"activity": group(activityTypes),
			"intake":   group(intakeTypes),
		},
		"health_score":    report.Score,
		"recommendations": report.Recommendations,
		"goals":           report.Goals,
		"summary": map[string]int{
			"tracked_metric_types": len(latest),
		},
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
