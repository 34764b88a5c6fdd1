// ABOUTME: Analysis handlers: health reports, standards, trends, statistics, today, and history generation.
// ABOUTME: All computation is delegated to the analysis and generator packages.
package api

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
)

type generateRequest struct {
	Days     int  `json:"days" binding:"gte=0,lte=365"`
	DemoMode bool `json:"demo_mode"`
}

func (s *Server) genericAnalysis(c *gin.Context) {
	s.analyze(c, analysis.SourceGeneric)
}

func (s *Server) personalizedAnalysis(c *gin.Context) {
	s.analyze(c, analysis.SourcePersonalized)
}

func (s *Server) analyze(c *gin.Context, source analysis.Source) {
	report, err := s.analyzer.Analyze(c.Request.Context(), currentUser(c), source)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, report)
}

func (s *Server) standards(c *gin.Context) {
	view, err := s.analyzer.Standards(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, view)
}

func (s *Server) trend(c *gin.Context) {
	t, err := models.ParseMetricType(c.Param("type"))
	if err != nil {
		s.fail(c, err)
		return
	}
	trend, err := s.analyzer.Trend(c.Request.Context(), currentUser(c), t, analysis.ParsePeriod(c.Query("period")))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, trend)
}

func (s *Server) statistics(c *gin.Context) {
	t, err := models.ParseMetricType(c.Param("type"))
	if err != nil {
		s.fail(c, err)
		return
	}
	period := analysis.ParsePeriod(c.Query("period"))
	stats, err := s.analyzer.Statistics(c.Request.Context(), currentUser(c), t, period)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, gin.H{"period": period, "statistics": stats})
}

func (s *Server) today(c *gin.Context) {
	summary, err := s.analyzer.Today(c.Request.Context(), currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondOK(c, summary)
}

func (s *Server) generateHistory(c *gin.Context) {
	var req generateRequest
	if !s.bind(c, &req) {
		return
	}

	ctx := c.Request.Context()
	userID := currentUser(c)
	genReq := generator.Request{UserID: userID, Days: req.Days, Mode: generator.ModeRealistic}
	if req.DemoMode {
		genReq.Mode = generator.ModeDemo
	}

	profile, err := s.store.FindProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		genReq.Profile = profile
	case !errors.Is(err, storage.ErrNotFound):
		s.fail(c, err)
		return
	}

	res, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("generated history", "user_id", userID.String(), "mode", res.Mode, "records", res.InsertedCount)
	respondCreated(c, res)
}
