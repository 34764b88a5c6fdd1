// ABOUTME: CLI commands for browsing health tips and exercise advice.
// ABOUTME: The catalog is shared by all users and needs no login.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/spf13/cobra"
)

var (
	tipsCategory string
	tipsLimit    int

	exerciseWeather   string
	exerciseTime      string
	exerciseIntensity string
	exerciseLimit     int
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "List health tips",
	Long: `List health tips from the catalog.

EXAMPLES:

  healthtrack tips
  healthtrack tips --category sleep
  healthtrack tips daily
  healthtrack tips categories`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tips, err := store.ListTips(cmd.Context(), storage.TipFilter{Category: tipsCategory, Limit: tipsLimit})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(tips) == 0 {
			fmt.Fprintln(out, "No tips found.")
			return nil
		}
		for _, t := range tips {
			printTip(out, t)
		}
		return nil
	},
}

var tipsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the tip of the day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tips, err := store.ListTips(cmd.Context(), storage.TipFilter{Limit: 100})
		if err != nil {
			return err
		}
		if len(tips) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tips in the catalog.")
			return nil
		}
		printTip(cmd.OutOrStdout(), tips[time.Now().YearDay()%len(tips)])
		return nil
	},
}

var tipsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List tip categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := store.TipCategories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "List exercise advice",
	Long: `List exercise advice, optionally filtered by weather, time of day, and intensity.
Entries marked "all" match any weather or time.

EXAMPLES:

  healthtrack exercises --weather rainy --intensity high
  healthtrack exercises recommend --weather cloudy --time evening`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.ListExercises(cmd.Context(), models.ExerciseFilter{
			Weather:   exerciseWeather,
			TimeSlot:  exerciseTime,
			Intensity: exerciseIntensity,
			Limit:     exerciseLimit,
		})
		if err != nil {
			return err
		}
		printExercises(cmd.OutOrStdout(), exercises)
		return nil
	},
}

var exercisesRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest exercises for the weather and time of day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.RecommendExercises(cmd.Context(), exerciseWeather, exerciseTime, exerciseLimit)
		if err != nil {
			return err
		}
		printExercises(cmd.OutOrStdout(), exercises)
		return nil
	},
}

func printTip(out io.Writer, t *models.HealthTip) {
	color.New(color.Bold).Fprintf(out, "%s ", t.Title)
	color.New(color.Faint).Fprintf(out, "[%s]\n", t.Category)
	fmt.Fprintf(out, "  %s\n", t.Content)
}

func printExercises(out io.Writer, exercises []*models.ExerciseAdvice) {
	if len(exercises) == 0 {
		fmt.Fprintln(out, "No exercises found.")
		return
	}
	for _, e := range exercises {
		fmt.Fprintf(out, "%s %s %d min, ~%d kcal\n",
			padRight(e.Name, 20),
			color.New(color.FgCyan).Sprint(padRight(string(e.Intensity), 7)),
			e.Duration, e.CaloriesBurned)
		fmt.Fprintf(out, "  %s\n", e.Description)
	}
}

func init() {
	tipsCmd.Flags().StringVarP(&tipsCategory, "category", "c", "", "only tips in this category")
	tipsCmd.Flags().IntVarP(&tipsLimit, "limit", "n", 20, "maximum tips to show")
	tipsCmd.AddCommand(tipsDailyCmd, tipsCategoriesCmd)

	for _, c := range []*cobra.Command{exercisesCmd, exercisesRecommendCmd} {
		c.Flags().StringVar(&exerciseWeather, "weather", "", "sunny, cloudy, or rainy")
		c.Flags().StringVar(&exerciseTime, "time", "", "morning, afternoon, or evening")
		c.Flags().IntVarP(&exerciseLimit, "limit", "n", 0, "maximum exercises to show")
	}
	exercisesCmd.Flags().StringVar(&exerciseIntensity, "intensity", "", "low, medium, or high")
	exercisesCmd.AddCommand(exercisesRecommendCmd)

	rootCmd.AddCommand(tipsCmd, exercisesCmd)
}
