// ABOUTME: CLI commands for metric trends and statistics.
// ABOUTME: Prints daily series with a bar chart and period summaries.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

const barWidth = 30

var trendPeriod string

var trendCmd = &cobra.Command{
	Use:   "trend <type>",
	Short: "Show the daily series of one metric",
	Long: `Show one value per day for a metric over a period.

Steps, water, and calories are summed per day; the other types are averaged.
Days without records are skipped.

PERIODS: week (7 days), month (30), quarter (90). Unknown values mean week.

EXAMPLES:

  healthtrack trend steps
  healthtrack trend weight --period quarter`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		mt, err := models.ParseMetricType(args[0])
		if err != nil {
			return err
		}

		trend, err := analysis.NewAnalyzer(store).Trend(cmd.Context(), user.ID, mt, analysis.ParsePeriod(trendPeriod))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "%s, %s to %s\n", mt, trend.StartDate, trend.EndDate)
		if len(trend.Points) == 0 {
			fmt.Fprintln(out, "No records in this period.")
			return nil
		}

		peak := 0.0
		for _, p := range trend.Points {
			peak = max(peak, p.Value)
		}
		faint := color.New(color.Faint)
		for _, p := range trend.Points {
			fmt.Fprintf(out, "%s %s %.1f %s\n",
				faint.Sprint(p.Date),
				color.CyanString(bar(p.Value, peak)),
				p.Value, mt.Unit())
		}
		return nil
	},
}

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats <type>",
	Short: "Summarize one metric over a period",
	Long: `Show count, average, minimum, maximum, and total for a metric over a period.

EXAMPLES:

  healthtrack stats weight
  healthtrack stats steps --period month`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		mt, err := models.ParseMetricType(args[0])
		if err != nil {
			return err
		}

		period := analysis.ParsePeriod(statsPeriod)
		s, err := analysis.NewAnalyzer(store).Statistics(cmd.Context(), user.ID, mt, period)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.Bold).Fprintf(out, "%s over the last %s\n", mt, period)
		if s.Count == 0 {
			fmt.Fprintln(out, "No records in this period.")
			return nil
		}
		unit := mt.Unit()
		fmt.Fprintf(out, "  count    %d\n", s.Count)
		fmt.Fprintf(out, "  average  %.1f %s\n", s.Average, unit)
		fmt.Fprintf(out, "  min      %.1f %s\n", s.Min, unit)
		fmt.Fprintf(out, "  max      %.1f %s\n", s.Max, unit)
		fmt.Fprintf(out, "  total    %.1f %s\n", s.Sum, unit)
		return nil
	},
}

// bar renders v as a run of blocks scaled against peak, padded to barWidth.
func bar(v, peak float64) string {
	n := 0
	if peak > 0 {
		n = min(barWidth, int(v/peak*barWidth))
	}
	if n == 0 && v > 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}

func init() {
	trendCmd.Flags().StringVar(&trendPeriod, "period", "week", "week, month, or quarter")
	statsCmd.Flags().StringVar(&statsPeriod, "period", "week", "week, month, or quarter")
	rootCmd.AddCommand(trendCmd, statsCmd)
}
