// ABOUTME: CLI command for generating a simulated record history.
// ABOUTME: Uses the stored personalization profile when one exists.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	generateDays  int
	generateDemo  bool
	generateBasic bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a simulated history of records",
	Long: `Generate one record per metric type per day, ending yesterday.

Realistic mode varies values around your personal baseline with weekly rhythms
and a slow weight drift. Demo mode draws values that improve steadily across the
period, which makes trend charts easy to read.

EXAMPLES:

  healthtrack generate                   # 30 days, all metric types
  healthtrack generate --days 90 --demo
  healthtrack generate --basic           # weight and steps only`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := currentUser(ctx)
		if err != nil {
			return err
		}

		req := generator.Request{UserID: user.ID, Days: generateDays, Mode: generator.ModeRealistic}
		if generateDemo {
			req.Mode = generator.ModeDemo
		}
		if generateBasic {
			req.Types = generator.BasicTypes
		}

		profile, err := store.FindProfileByUserID(ctx, user.ID)
		switch {
		case err == nil:
			req.Profile = profile
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}

		res, err := generator.New(store).Generate(ctx, req)
		if err != nil {
			return err
		}
		log.Info("generated history", "user_id", user.ID.String(), "mode", res.Mode, "records", res.InsertedCount)

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Generated %d records over %d days (%s)\n", res.InsertedCount, res.Days, res.Mode)
		for _, t := range models.AllMetricTypes {
			if d, ok := res.Description[t]; ok {
				fmt.Fprintf(out, "  %s %s\n", padRight(string(t), 19), d)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateDays, "days", generator.DefaultDays, fmt.Sprintf("days of history (1-%d)", generator.MaxDays))
	generateCmd.Flags().BoolVar(&generateDemo, "demo", false, "generate steadily improving demo data")
	generateCmd.Flags().BoolVar(&generateBasic, "basic", false, "only generate weight and steps")
	rootCmd.AddCommand(generateCmd)
}
