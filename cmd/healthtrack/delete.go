// ABOUTME: CLI command for deleting health records.
// ABOUTME: Supports deletion by full ID or ID prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a health record",
	Long: `Delete a health record by its ID or ID prefix.

The ID prefix is shown in the first column of 'healthtrack list' output.

EXAMPLES:

  healthtrack delete abc12345               # Delete by 8-char prefix
  healthtrack rm abc1                       # Short prefix (if unique)

CAUTION:

  This permanently deletes the record. There is no undo.
  If the prefix matches multiple records, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		idOrPrefix := args[0]

		r, err := store.GetRecord(cmd.Context(), user.ID, idOrPrefix)
		if err != nil {
			return fmt.Errorf("record not found: %s: %w", idOrPrefix, err)
		}

		if err := store.DeleteRecord(cmd.Context(), user.ID, r.ID.String()); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgYellow).Fprintf(out, "✗ Deleted %s\n", r.Type)
		fmt.Fprintf(out, "  %s %.1f %s\n",
			color.New(color.Faint).Sprint(r.ID.String()[:8]),
			r.Value, r.Type.Unit())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
