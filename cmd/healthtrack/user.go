// ABOUTME: CLI commands for managing local user accounts.
// ABOUTME: Provides user add, list, delete, and passwd subcommands.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtrack/internal/auth"
	"github.com/harperreed/healthtrack/internal/generator"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/spf13/cobra"
)

var (
	userPassword string
	userHeight   float64
	userGender   string
	userBirthday string
	userSeed     bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long: `Manage the accounts stored in the local database.

Accounts created here can also log in to the REST API started by 'healthtrack serve'.

EXAMPLES:

  healthtrack user add alice alice@example.com --password secret1
  healthtrack user add bob bob@example.com --password secret1 --height 180 --birthday 1960-03-02 --seed
  healthtrack user list
  healthtrack user passwd alice --password newsecret
  healthtrack user delete alice`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <username> <email>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hash, err := auth.HashPassword(userPassword)
		if err != nil {
			return err
		}

		u := models.NewUser(args[0], strings.ToLower(strings.TrimSpace(args[1])))
		u.PasswordHash = hash
		if userHeight > 0 {
			h := userHeight
			u.Height = &h
		}
		if userGender != "" {
			g := models.Gender(userGender)
			if g != models.GenderMale && g != models.GenderFemale && g != models.GenderOther {
				return fmt.Errorf("invalid gender %q: want male, female, or other", userGender)
			}
			u.Gender = &g
		}
		if userBirthday != "" {
			b, err := models.ParseDate(userBirthday)
			if err != nil {
				return err
			}
			u.Birthday = &b
		}

		if err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Created user %s\n", u.Username)
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(u.ID.String()[:8]), u.Email)

		if userSeed {
			res, err := generator.New(store).Generate(ctx, generator.Request{UserID: u.ID})
			if err != nil {
				return fmt.Errorf("failed to seed history: %w", err)
			}
			fmt.Fprintf(out, "  seeded %d records over %d days\n", res.InsertedCount, res.Days)
		}
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := store.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(u.ID.String()[:8]),
				padRight(u.Username, 20),
				u.Email)
		}
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <username>",
	Aliases: []string{"rm"},
	Short:   "Delete a user and all of their data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := store.FindUserByLogin(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user not found: %s", args[0])
		}
		if err := store.DeleteUser(cmd.Context(), u.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted user %s\n", u.Username)
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			return errors.New("--password is required")
		}
		u, err := store.FindUserByLogin(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("user not found: %s", args[0])
		}
		hash, err := auth.HashPassword(userPassword)
		if err != nil {
			return err
		}
		if err := store.UpdatePassword(cmd.Context(), u.ID, hash); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Password updated for %s\n", u.Username)
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "account password (at least 6 characters)")
	userAddCmd.Flags().Float64Var(&userHeight, "height", 0, "height in cm")
	userAddCmd.Flags().StringVar(&userGender, "gender", "", "male, female, or other")
	userAddCmd.Flags().StringVar(&userBirthday, "birthday", "", "birthday (YYYY-MM-DD)")
	userAddCmd.Flags().BoolVar(&userSeed, "seed", false, "generate 30 days of sample history")
	_ = userAddCmd.MarkFlagRequired("password")

	userPasswdCmd.Flags().StringVar(&userPassword, "password", "", "new password (at least 6 characters)")

	userCmd.AddCommand(userAddCmd, userListCmd, userDeleteCmd, userPasswdCmd)
	rootCmd.AddCommand(userCmd)
}
