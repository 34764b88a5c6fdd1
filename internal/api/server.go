// ABOUTME: HTTP server exposing accounts, records, analysis, and the public catalog.
// ABOUTME: Built on gin with JWT auth, per-client rate limiting, CORS, and request logging.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/auth"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/logger"
	"github.com/harperreed/healthtrack/internal/storage"
)

// Version is reported by the health check.
const Version = "1.0.0"

// Options tune the server's middleware.
type Options struct {
	CORSOrigins []string
	RateLimit   float64
	RateBurst   int
	// SeedHistory generates a month of realistic records for every new account.
	SeedHistory bool
}

// Server holds the handlers' collaborators.
type Server struct {
	store     storage.Repository
	analyzer  *analysis.Analyzer
	generator *generator.Generator
	tokens    *auth.Tokens
	log       *logger.Logger
	opts      Options
	now       func() time.Time
}

// New creates a server over store.
func New(store storage.Repository, tokens *auth.Tokens, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		store:     store,
		analyzer:  analysis.NewAnalyzer(store),
		generator: generator.New(store),
		tokens:    tokens,
		log:       log.With("component", "api"),
		opts:      opts,
		now:       time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), corsMiddleware(s.opts.CORSOrigins))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, envelope{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})

	r.GET("/health", s.healthCheck)

	api := r.Group("/api")
	api.Use(newRateLimiter(s.opts.RateLimit, s.opts.RateBurst).middleware())
	api.GET("/health", s.healthCheck)

	authed := requireAuth(s.tokens)

	a := api.Group("/auth")
	{
		a.POST("/register", s.register)
		a.POST("/login", s.login)
		a.POST("/refresh", authed, s.refresh)
		a.GET("/profile", authed, s.getMe)
		a.PUT("/profile", authed, s.updateMe)
		a.PUT("/password", authed, s.updatePassword)
	}

	h := api.Group("/health", authed)
	{
		h.GET("/records", s.listRecords)
		h.POST("/records", s.createRecord)
		h.POST("/records/batch", s.createRecordsBatch)
		h.GET("/records/:id", s.getRecord)
		h.PUT("/records/:id", s.updateRecord)
		h.DELETE("/records/:id", s.deleteRecord)
		h.GET("/analysis", s.genericAnalysis)
		h.GET("/trends/:type", s.trend)
		h.GET("/statistics/:type", s.statistics)
		h.GET("/today", s.today)
		h.GET("/goals", s.getGoals)
		h.PUT("/goals", s.updateGoals)
		h.POST("/mock-data", s.generateHistory)
	}

	p := api.Group("/health-profile", authed)
	{
		p.GET("", s.getProfile)
		p.POST("", s.upsertProfile)
		p.PUT("", s.upsertProfile)
		p.DELETE("", s.deleteProfile)
		p.PUT("/doctor-notes", s.updateDoctorNotes)
		p.GET("/standards", s.standards)
		p.GET("/analysis/personalized", s.personalizedAnalysis)
	}

	pub := api.Group("/public")
	{
		pub.GET("/tips", s.listTips)
		pub.GET("/tips/categories", s.tipCategories)
		pub.GET("/tips/:id", s.getTip)
		pub.GET("/daily-tip", s.dailyTip)
		pub.GET("/exercises", s.listExercises)
		pub.GET("/exercises/recommendations", s.recommendExercises)
		pub.GET("/exercises/weather-types", s.weatherTypes)
	}

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := s.store.Ping(c.Request.Context()); err != nil {
		s.log.Error("health check ping failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, envelope{
		Success: code == http.StatusOK,
		Data: gin.H{
			"status":    status,
			"version":   Version,
			"timestamp": s.now().UTC().Format(time.RFC3339),
		},
	})
}
