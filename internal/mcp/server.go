// ABOUTME: MCP server exposing one local user's health records and analysis.
// ABOUTME: Wraps the MCP SDK server around storage, the analyzer, and the history generator.
package mcp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/logger"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is advertised to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access for a single user.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	analyzer  *analysis.Analyzer
	generator *generator.Generator
	userID    uuid.UUID
	log       *logger.Logger
}

// NewServer creates an MCP server acting on behalf of userID.
func NewServer(repo storage.Repository, userID uuid.UUID, log *logger.Logger) (*Server, error) {
	if userID == uuid.Nil {
		return nil, errors.New("mcp server needs a user")
	}
	if log == nil {
		log = logger.Nop()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthtrack",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		analyzer:  analysis.NewAnalyzer(repo),
		generator: generator.New(repo),
		userID:    userID,
		log:       log.With("component", "mcp", "user_id", userID.String()),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("mcp server starting on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
