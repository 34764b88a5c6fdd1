// ABOUTME: CLI commands for viewing and setting daily health goals.
// ABOUTME: Unset goals fall back to the built-in defaults.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	goalSteps    int
	goalWater    int
	goalSleep    float64
	goalCalories int
	goalWeight   float64
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show your daily goals",
	Long: `Show or change your daily goals. Goals you never set use the defaults:
8000 steps, 2000 ml water, 8 hours sleep, 2000 kcal.

EXAMPLES:

  healthtrack goals
  healthtrack goals set --steps 10000 --water 2500
  healthtrack goals set --weight 68`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		goals, err := store.FindGoalsWithDefaults(cmd.Context(), user.ID)
		if err != nil {
			return err
		}
		printGoals(cmd.OutOrStdout(), goals)
		return nil
	},
}

var goalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more daily goals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		goals, err := store.FindGoalsWithDefaults(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("steps") {
			goals.StepsGoal = goalSteps
		}
		if flags.Changed("water") {
			goals.WaterGoal = goalWater
		}
		if flags.Changed("sleep") {
			goals.SleepGoal = goalSleep
		}
		if flags.Changed("calories") {
			goals.CaloriesGoal = goalCalories
		}
		if flags.Changed("weight") {
			w := goalWeight
			goals.WeightGoal = &w
		}
		if err := goals.Validate(); err != nil {
			return err
		}

		if err := store.UpsertGoals(cmd.Context(), goals); err != nil {
			return fmt.Errorf("failed to save goals: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Goals updated")
		printGoals(out, goals)
		return nil
	},
}

func printGoals(out io.Writer, g *models.HealthGoals) {
	fmt.Fprintf(out, "  steps     %d\n", g.StepsGoal)
	fmt.Fprintf(out, "  water     %d ml\n", g.WaterGoal)
	fmt.Fprintf(out, "  sleep     %.1f h\n", g.SleepGoal)
	fmt.Fprintf(out, "  calories  %d kcal\n", g.CaloriesGoal)
	if g.WeightGoal != nil {
		fmt.Fprintf(out, "  weight    %.1f kg\n", *g.WeightGoal)
	}
}

func init() {
	f := goalsSetCmd.Flags()
	f.IntVar(&goalSteps, "steps", 0, "daily steps (1000-100000)")
	f.IntVar(&goalWater, "water", 0, "daily water in ml (500-10000)")
	f.Float64Var(&goalSleep, "sleep", 0, "nightly sleep in hours (1-24)")
	f.IntVar(&goalCalories, "calories", 0, "daily calories (500-10000)")
	f.Float64Var(&goalWeight, "weight", 0, "target weight in kg (20-300)")

	goalsCmd.AddCommand(goalsSetCmd)
	rootCmd.AddCommand(goalsCmd)
}
