// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server acting as the resolved local user.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthtrack/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates over stdin/stdout and acts as one user: the --user
flag, then local_user from the config, then the only user in the database.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "healthtrack": {
        "command": "healthtrack",
        "args": ["mcp", "--user", "alice"]
      }
    }
  }

AVAILABLE TOOLS:

  add_record           Record a health value
  list_records         List records with filters
  delete_record        Delete a record by ID or prefix
  get_latest           Most recent value per metric type
  analyze_health       Health score, assessments, and recommendations
  get_trend            Daily series for one metric
  get_statistics       Period statistics for one metric
  generate_history     Generate simulated records
  recommend_exercises  Exercise suggestions for weather and time of day

AVAILABLE RESOURCES:

  health://recent     Recent records
  health://today      Today's summary and goal progress
  health://summary    Latest values grouped by category`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(store, user.ID, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
