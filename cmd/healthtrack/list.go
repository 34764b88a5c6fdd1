// ABOUTME: CLI command for listing health records.
// ABOUTME: Supports filtering by type and date range and limiting results.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listType  string
	listLimit int
	listSince string
	listUntil string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List health records",
	Long: `List health records, newest record date first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TYPE  VALUE  UNIT  (NOTE)

  The ID is an 8-character prefix you can use with the delete command.

EXAMPLES:

  healthtrack list                          # Last 20 records
  healthtrack list --type weight            # Only weight
  healthtrack list -t steps -n 50           # Last 50 step counts
  healthtrack list --since 2025-01-01       # Records from 2025 onward`,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		f := storage.RecordFilter{Limit: listLimit}
		if listType != "" {
			mt, err := models.ParseMetricType(listType)
			if err != nil {
				return err
			}
			f.Type = &mt
		}
		if listSince != "" {
			d, err := models.ParseDate(listSince)
			if err != nil {
				return err
			}
			f.Start = &d
		}
		if listUntil != "" {
			d, err := models.ParseDate(listUntil)
			if err != nil {
				return err
			}
			f.End = &d
		}

		records, total, err := store.ListRecords(cmd.Context(), user.ID, f)
		if err != nil {
			return fmt.Errorf("failed to list records: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			note := ""
			if r.Note != nil && *r.Note != "" {
				note = faint.Sprintf(" (%s)", truncate(*r.Note, 30))
			}
			fmt.Fprintf(out, "%s %s %s %.1f %s%s\n",
				faint.Sprint(r.ID.String()[:8]),
				faint.Sprint(models.FormatDate(r.RecordDate)),
				padRight(string(r.Type), 19),
				r.Value,
				r.Type.Unit(),
				note)
		}
		if total > len(records) {
			faint.Fprintf(out, "showing %d of %d\n", len(records), total)
		}

		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by metric type")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	listCmd.Flags().StringVar(&listSince, "since", "", "earliest record date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "latest record date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}
