// ABOUTME: CLI command for running a health analysis.
// ABOUTME: Prints the health score, per-metric assessments, and recommendations.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	analyzePersonalized bool
	analyzeJSON         bool
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Aliases: []string{"report"},
	Short:   "Analyze your latest health data",
	Long: `Score your latest values against health standards and list recommendations.

By default the generic adult standards are used. With --personalized the
standards come from your personalization profile (age group, activity level,
and health conditions), and one is created from your birthday if missing.

EXAMPLES:

  healthtrack analyze
  healthtrack analyze --personalized
  healthtrack analyze --json > report.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		source := analysis.SourceGeneric
		if analyzePersonalized {
			source = analysis.SourcePersonalized
		}
		report, err := analysis.NewAnalyzer(store).Analyze(cmd.Context(), user.ID, source)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			return writeJSON(out, report)
		}
		printReport(out, report)
		return nil
	},
}

func printReport(out io.Writer, r *analysis.HealthReport) {
	bold := color.New(color.Bold)
	bold.Fprintf(out, "Health score: %s (%s)\n", scoreColor(r.Score).Sprintf("%d/100", r.Score), r.Source)
	fmt.Fprintln(out)

	bold.Fprintln(out, "Assessments")
	a := r.Assessments
	if a.BMI != nil {
		printVerdict(out, "BMI", fmt.Sprintf("%.1f", a.BMI.BMI), a.BMI.Verdict)
	} else {
		printVerdict(out, "BMI", "", analysis.Verdict{Status: analysis.StatusUnknown})
	}
	printVerdict(out, "Steps", optionalValue(a.Steps.Current, "%.0f"), a.Steps.Verdict)
	printVerdict(out, "Heart rate", optionalValue(a.HeartRate.Current, "%.0f bpm"), a.HeartRate.Verdict)
	printVerdict(out, "Sleep", optionalValue(a.Sleep.Current, "%.1f h"), a.Sleep.Verdict)
	bp := ""
	if a.BloodPressure.Systolic != nil && a.BloodPressure.Diastolic != nil {
		bp = fmt.Sprintf("%.0f/%.0f mmHg", *a.BloodPressure.Systolic, *a.BloodPressure.Diastolic)
	}
	printVerdict(out, "Blood pressure", bp, a.BloodPressure.Verdict)

	if r.Weekly != nil {
		fmt.Fprintln(out)
		bold.Fprintln(out, "Last 7 days")
		fmt.Fprintf(out, "  avg steps %.0f, total %.0f\n", r.Weekly.AvgSteps, r.Weekly.TotalSteps)
		if r.Weekly.AvgWeight != nil {
			fmt.Fprintf(out, "  avg weight %.1f kg", *r.Weekly.AvgWeight)
			if r.Weekly.WeightChange != nil {
				fmt.Fprintf(out, " (%+.1f)", *r.Weekly.WeightChange)
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "Recommendations")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(out, "  %s %s\n", priorityColor(rec.Priority).Sprintf("[%s]", rec.Priority), rec.Advice)
	}
}

func printVerdict(out io.Writer, label, value string, v analysis.Verdict) {
	if !v.Known() {
		fmt.Fprintf(out, "  %s %s\n", padRight(label, 15), color.New(color.Faint).Sprint("no data"))
		return
	}
	fmt.Fprintf(out, "  %s %s %s\n", padRight(label, 15), padRight(value, 14), priorityColor(v.Priority).Sprint(v.Status))
}

func optionalValue(v *float64, format string) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf(format, *v)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen, color.Bold)
	case score >= 60:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func priorityColor(p analysis.Priority) *color.Color {
	switch p {
	case analysis.PriorityHigh:
		return color.New(color.FgRed)
	case analysis.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	analyzeCmd.Flags().BoolVarP(&analyzePersonalized, "personalized", "p", false, "use your personalization profile")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
