// ABOUTME: Root Cobra command for healthtrack CLI.
// ABOUTME: Loads config, opens the SQLite store, and resolves the acting user for subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/healthtrack/internal/config"
	"github.com/harperreed/healthtrack/internal/logger"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	store *storage.DB
	log   *logger.Logger

	dbPath   string
	userName string
)

var rootCmd = &cobra.Command{
	Use:   "healthtrack",
	Short: "Personal health tracking and analysis",
	Long: `Healthtrack records daily health measurements and turns them into a
health score, per-metric assessments, trends, and recommendations.

WHAT IT TRACKS:

  Body        weight, blood_pressure_sys, blood_pressure_dia, heart_rate
  Activity    steps, sleep
  Intake      water, calories

QUICK START:

  $ healthtrack user add alice alice@example.com --password secret1
  $ healthtrack add weight 70.5             # Log today's weight
  $ healthtrack add bp 120 80               # Log blood pressure (systolic/diastolic)
  $ healthtrack today                       # Today's progress toward goals
  $ healthtrack analyze                     # Health score and recommendations
  $ healthtrack trend steps --period month  # Daily series

SERVER AND MCP:

  $ healthtrack serve                       # REST API (needs jwt_secret)
  $ healthtrack mcp                         # MCP server on stdio

USERS:

  Commands act as the user named by --user, then local_user in the config
  file, then the only account in the database.

DATA STORAGE:

  Data lives in SQLite at ~/.local/share/healthtrack/healthtrack.db unless
  --db or data_dir says otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "install-skill" {
			return nil
		}

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.GetLogMode(), cfg.GetLogLevel()); err != nil {
			return err
		}

		path := cfg.DBPath()
		if dbPath != "" {
			path = config.ExpandPath(dbPath)
		}
		if store, err = storage.Open(path); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			log.Sync()
		}
		if store != nil {
			err := store.Close()
			store = nil
			return err
		}
		return nil
	},
}

// currentUser resolves the user commands act as.
func currentUser(ctx context.Context) (*models.User, error) {
	name := userName
	if name == "" && cfg != nil {
		name = cfg.LocalUser
	}
	if name != "" {
		u, err := store.FindUserByLogin(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %s", name)
		}
		return u, err
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, errors.New("no users yet; create one with 'healthtrack user add'")
	case 1:
		return users[0], nil
	default:
		return nil, errors.New("several users exist; pick one with --user or local_user")
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: data_dir/healthtrack.db)")
	rootCmd.PersistentFlags().StringVarP(&userName, "user", "u", "", "username or email to act as")
}
