// ABOUTME: CLI command summarizing today's records.
// ABOUTME: Shows per-metric values and progress toward daily goals.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's values and goal progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		sum, err := analysis.NewAnalyzer(store).Today(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "Today (%s)\n", sum.Date)
		if len(sum.Metrics) == 0 {
			fmt.Fprintln(out, "Nothing logged yet.")
		}
		for _, t := range models.AllMetricTypes {
			e, ok := sum.Metrics[t]
			if !ok {
				continue
			}
			fmt.Fprintf(out, "  %s %.1f %s\n", padRight(string(t), 19), e.Value, e.Unit)
		}

		fmt.Fprintln(out)
		color.New(color.Bold).Fprintln(out, "Goals")
		fmt.Fprintf(out, "  steps  %s of %d\n", progressString(sum.Progress.Steps), sum.Goals.StepsGoal)
		fmt.Fprintf(out, "  water  %s of %d ml\n", progressString(sum.Progress.Water), sum.Goals.WaterGoal)
		fmt.Fprintf(out, "  sleep  %s of %.1f h\n", progressString(sum.Progress.Sleep), sum.Goals.SleepGoal)
		return nil
	},
}

func progressString(pct float64) string {
	c := color.New(color.FgYellow)
	if pct >= 100 {
		c = color.New(color.FgGreen)
	}
	return c.Sprintf("%5.1f%%", pct)
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
