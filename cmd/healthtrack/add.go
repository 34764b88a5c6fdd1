// ABOUTME: CLI command for adding health records.
// ABOUTME: Handles single records and the blood pressure pair.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDate string
	addNote string
)

var addCmd = &cobra.Command{
	Use:     "add <type> <value> [value2]",
	Aliases: []string{"a"},
	Short:   "Add a health record",
	Long: `Add a health record for a calendar day. For blood pressure, use "bp" with
both systolic and diastolic values.

TYPES:

  weight (kg), steps, blood_pressure_sys (mmHg), blood_pressure_dia (mmHg),
  heart_rate (bpm), sleep (hours), water (ml), calories (kcal)

Examples:
  healthtrack add weight 70.5
  healthtrack add steps 9500 --date 2025-01-31
  healthtrack add bp 120 80
  healthtrack add sleep 7.5 --note "woke once"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		date := time.Now()
		if addDate != "" {
			if date, err = models.ParseDate(addDate); err != nil {
				return err
			}
		}

		if args[0] == "bp" {
			if len(args) < 3 {
				return fmt.Errorf("blood pressure requires two values: systolic and diastolic")
			}
			return addBloodPressure(cmd, user, args[1], args[2], date)
		}

		metricType, err := models.ParseMetricType(args[0])
		if err != nil {
			return fmt.Errorf("%w\nValid types: weight, steps, blood_pressure_sys, blood_pressure_dia, heart_rate, sleep, water, calories", err)
		}

		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		r := models.NewMetricRecord(user.ID, metricType, value).WithRecordDate(date)
		if addNote != "" {
			r.WithNote(addNote)
		}

		if err := store.CreateRecord(cmd.Context(), r); err != nil {
			return fmt.Errorf("failed to create record: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s\n", metricType)
		fmt.Fprintf(out, "  %s %s %.1f %s\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			models.FormatDate(r.RecordDate),
			r.Value, metricType.Unit())

		return nil
	},
}

func addBloodPressure(cmd *cobra.Command, user *models.User, sysStr, diaStr string, date time.Time) error {
	sys, err := strconv.ParseFloat(sysStr, 64)
	if err != nil {
		return fmt.Errorf("invalid systolic value: %s", sysStr)
	}
	dia, err := strconv.ParseFloat(diaStr, 64)
	if err != nil {
		return fmt.Errorf("invalid diastolic value: %s", diaStr)
	}

	rSys := models.NewMetricRecord(user.ID, models.MetricBPSys, sys).WithRecordDate(date)
	rDia := models.NewMetricRecord(user.ID, models.MetricBPDia, dia).WithRecordDate(date)
	if addNote != "" {
		rSys.WithNote(addNote)
		rDia.WithNote(addNote)
	}

	if _, err := store.CreateRecords(cmd.Context(), []*models.MetricRecord{rSys, rDia}); err != nil {
		return fmt.Errorf("failed to create blood pressure: %w", err)
	}

	out := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintln(out, "✓ Added blood pressure")
	fmt.Fprintf(out, "  %s %s %.0f/%.0f mmHg\n",
		color.New(color.Faint).Sprint(rSys.ID.String()[:8]),
		models.FormatDate(rSys.RecordDate),
		sys, dia)

	return nil
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "record date (YYYY-MM-DD), defaults to today")
	addCmd.Flags().StringVar(&addNote, "note", "", "note for the record")
	rootCmd.AddCommand(addCmd)
}
