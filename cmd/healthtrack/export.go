// ABOUTME: CLI commands for exporting and importing health data.
// ABOUTME: Supports JSON, YAML, and Markdown export and JSON or YAML import.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportType   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export health data",
	Long: `Export your records, goals, and profile.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables, records only

EXAMPLES:

  healthtrack export json -o backup.json
  healthtrack export yaml
  healthtrack export markdown --type weight --since 2025-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = store.ExportJSON(ctx, user.ID)
		case "yaml", "yml":
			data, err = store.ExportYAML(ctx, user.ID)
		case "markdown", "md":
			var metricType *models.MetricType
			if exportType != "" {
				mt, perr := models.ParseMetricType(exportType)
				if perr != nil {
					return perr
				}
				metricType = &mt
			}
			var since *time.Time
			if exportSince != "" {
				d, perr := models.ParseDate(exportSince)
				if perr != nil {
					return perr
				}
				since = &d
			}
			var md string
			md, err = store.ExportMarkdown(ctx, user.ID, metricType, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import health data from a JSON or YAML export",
	Long: `Import records, goals, and profile from an export file.

Files ending in .yaml or .yml are read as YAML, everything else as JSON.
Records whose ID already exists are skipped, so importing the same file twice
is safe. Goals and profile replace the current ones.

EXAMPLES:

  healthtrack import backup.json
  healthtrack import backup.yaml --user alice`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var sum *storage.ImportSummary
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".yaml", ".yml":
			sum, err = store.ImportYAML(ctx, user.ID, raw)
		default:
			sum, err = store.ImportJSON(ctx, user.ID, raw)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		log.Info("imported data", "user_id", user.ID.String(), "records", sum.Records, "skipped", sum.Skipped)

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Imported from %s\n", args[0])
		fmt.Fprintf(out, "  records  %d (skipped %d)\n", sum.Records, sum.Skipped)
		if sum.Goals {
			fmt.Fprintln(out, "  goals    replaced")
		}
		if sum.Profile {
			fmt.Fprintln(out, "  profile  replaced")
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "", "filter by metric type (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD, markdown only)")

	rootCmd.AddCommand(exportCmd, importCmd)
}
