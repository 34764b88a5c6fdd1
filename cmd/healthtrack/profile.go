// ABOUTME: CLI commands for the personalization profile and derived standards.
// ABOUTME: Provides profile show, set, notes, standards, and reset subcommands.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/analysis"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileAgeGroup   string
	profileActivity   string
	profileCondition  string
	profileConditions []string
	profileStepsGoal  int
	profileSleepGoal  float64
	profileWaterGoal  int
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your personalization profile",
	Long: `The personalization profile tunes the baseline, standards, and score weights
used by 'healthtrack analyze --personalized'. A profile is derived from your
birthday the first time it is needed.

CONDITION FLAGS:

  cardiovascular, diabetes, joint_issues, pregnant, recovering

EXAMPLES:

  healthtrack profile
  healthtrack profile set --age-group senior --activity sedentary --conditions diabetes,joint_issues
  healthtrack profile set --steps-goal 6000
  healthtrack profile notes "Walk 20 minutes after meals"
  healthtrack profile standards`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		p, err := analysis.NewAnalyzer(store).Profile(cmd.Context(), user.ID)
		if err != nil {
			return err
		}
		printProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := currentUser(ctx)
		if err != nil {
			return err
		}
		p, err := analysis.NewAnalyzer(store).Profile(ctx, user.ID)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("age-group") {
			p.AgeGroup = models.AgeGroup(profileAgeGroup)
		}
		if flags.Changed("activity") {
			p.ActivityLevel = models.ActivityLevel(profileActivity)
		}
		if flags.Changed("condition") {
			p.HealthCondition = models.HealthCondition(profileCondition)
		}
		if flags.Changed("conditions") {
			c, err := parseConditions(profileConditions)
			if err != nil {
				return err
			}
			p.Conditions = c
		}
		if flags.Changed("steps-goal") {
			v := profileStepsGoal
			p.StepsGoal = &v
		}
		if flags.Changed("sleep-goal") {
			v := profileSleepGoal
			p.SleepGoal = &v
		}
		if flags.Changed("water-goal") {
			v := profileWaterGoal
			p.WaterGoal = &v
		}
		if err := p.Validate(); err != nil {
			return err
		}

		if err := store.UpsertProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Profile updated")
		printProfile(out, p)
		return nil
	},
}

var profileNotesCmd = &cobra.Command{
	Use:   "notes <text>",
	Short: "Set the doctor's notes on your profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		user, err := currentUser(ctx)
		if err != nil {
			return err
		}
		if _, err := analysis.NewAnalyzer(store).Profile(ctx, user.ID); err != nil {
			return err
		}
		if err := store.UpdateDoctorNotes(ctx, user.ID, args[0]); err != nil {
			return fmt.Errorf("failed to save notes: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Notes saved")
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your profile so it is derived again from your birthday",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.DeleteProfile(cmd.Context(), user.ID); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "✗ Profile deleted")
		return nil
	},
}

var profileStandardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Show the standards derived from your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		view, err := analysis.NewAnalyzer(store).Standards(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := view.Standards
		color.New(color.Bold).Fprintf(out, "Standards for %s, %s\n", view.Profile.AgeGroup, view.Profile.ActivityLevel)
		fmt.Fprintf(out, "  BMI             %.1f - %.1f\n", s.BMI.OptimalMin, s.BMI.OptimalMax)
		fmt.Fprintf(out, "  steps           min %.0f, optimal %.0f, max %.0f\n", s.Steps.Min, s.Steps.Optimal, s.Steps.Max)
		fmt.Fprintf(out, "  heart rate      %.0f - %.0f bpm (normal %.0f)\n", s.HeartRate.Min, s.HeartRate.Max, s.HeartRate.Normal)
		fmt.Fprintf(out, "  sleep           min %.1f, optimal %.1f, max %.1f h\n", s.Sleep.Min, s.Sleep.Optimal, s.Sleep.Max)
		fmt.Fprintf(out, "  blood pressure  normal %.0f/%.0f, high %.0f/%.0f mmHg\n",
			s.BloodPressure.NormalSystolic, s.BloodPressure.NormalDiastolic,
			s.BloodPressure.HighSystolic, s.BloodPressure.HighDiastolic)
		fmt.Fprintf(out, "  water           %d ml\n", s.Water)
		return nil
	},
}

// parseConditions turns condition names into flags. "none" clears them all.
func parseConditions(names []string) (models.Conditions, error) {
	var c models.Conditions
	for _, n := range names {
		switch strings.TrimSpace(strings.ToLower(n)) {
		case "", "none":
		case "cardiovascular":
			c.Cardiovascular = true
		case "diabetes":
			c.Diabetes = true
		case "joint_issues", "joints":
			c.JointIssues = true
		case "pregnant":
			c.Pregnant = true
		case "recovering":
			c.Recovering = true
		default:
			return c, fmt.Errorf("unknown condition: %s", n)
		}
	}
	return c, nil
}

func printProfile(out io.Writer, p *models.PersonalizationProfile) {
	fmt.Fprintf(out, "  age group   %s\n", p.AgeGroup)
	fmt.Fprintf(out, "  activity    %s\n", p.ActivityLevel)
	fmt.Fprintf(out, "  condition   %s\n", p.HealthCondition)

	var flags []string
	for _, f := range []struct {
		set  bool
		name string
	}{
		{p.Cardiovascular, "cardiovascular"},
		{p.Diabetes, "diabetes"},
		{p.JointIssues, "joint_issues"},
		{p.Pregnant, "pregnant"},
		{p.Recovering, "recovering"},
	} {
		if f.set {
			flags = append(flags, f.name)
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(out, "  flags       %s\n", strings.Join(flags, ", "))
	}
	if p.StepsGoal != nil {
		fmt.Fprintf(out, "  steps goal  %d\n", *p.StepsGoal)
	}
	if p.SleepGoal != nil {
		fmt.Fprintf(out, "  sleep goal  %.1f h\n", *p.SleepGoal)
	}
	if p.WaterGoal != nil {
		fmt.Fprintf(out, "  water goal  %d ml\n", *p.WaterGoal)
	}
	if p.DoctorNotes != nil && *p.DoctorNotes != "" {
		fmt.Fprintf(out, "  notes       %s\n", *p.DoctorNotes)
	}
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&profileAgeGroup, "age-group", "", "child, teen, adult, middle_age, or senior")
	f.StringVar(&profileActivity, "activity", "", "sedentary, lightly_active, moderately_active, very_active, or extremely_active")
	f.StringVar(&profileCondition, "condition", "", "excellent, good, fair, or poor")
	f.StringSliceVar(&profileConditions, "conditions", nil, "comma-separated condition flags, or none")
	f.IntVar(&profileStepsGoal, "steps-goal", 0, "personal steps goal (0-50000)")
	f.Float64Var(&profileSleepGoal, "sleep-goal", 0, "personal sleep goal in hours (0-15)")
	f.IntVar(&profileWaterGoal, "water-goal", 0, "personal water goal in ml (0-10000)")

	profileCmd.AddCommand(profileSetCmd, profileNotesCmd, profileResetCmd, profileStandardsCmd)
	rootCmd.AddCommand(profileCmd)
}
