// ABOUTME: CLI command for running the HTTP API server.
// ABOUTME: Reads secrets and limits from config and stops cleanly on SIGINT or SIGTERM.
package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthtrack/internal/api"
	"github.com/harperreed/healthtrack/internal/auth"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the REST API: accounts, records, analysis, goals, profiles, and the
public tips and exercise catalog.

A JWT signing secret is required. Set jwt_secret in the config file or the
HEALTHTRACK_JWT_SECRET environment variable.

EXAMPLES:

  HEALTHTRACK_JWT_SECRET=change-me healthtrack serve
  healthtrack serve --addr :9000 --seed-history`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return errors.New("jwt_secret is not set; add it to the config or set HEALTHTRACK_JWT_SECRET")
		}
		ttl, err := cfg.GetTokenTTL()
		if err != nil {
			return err
		}
		tokens, err := auth.NewTokens(cfg.JWTSecret, ttl)
		if err != nil {
			return err
		}

		limit, burst := cfg.GetRateLimit()
		srv := api.New(store, tokens, log, api.Options{
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   limit,
			RateBurst:   burst,
			SeedHistory: serveSeed,
		})

		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed-history", false, "generate 30 days of sample records for every new account")
	rootCmd.AddCommand(serveCmd)
}
