// ABOUTME: Installs the healthtrack skill definition for AI coding assistants.
// ABOUTME: Embeds SKILL.md and copies it to ~/.claude/skills/healthtrack/.
package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillFile = "skill/SKILL.md"

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install the healthtrack assistant skill",
	Long: `Install the healthtrack skill definition.

This copies SKILL.md to ~/.claude/skills/healthtrack/ so an assistant with the
healthtrack MCP server configured knows when and how to use its tools.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(home, cmd.InOrStdin(), cmd.OutOrStdout(), skillSkipConfirm)
	},
}

func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "healthtrack", "SKILL.md")
}

// installSkill writes the embedded skill under home. Without yes it asks on
// out and reads the answer from in.
func installSkill(home string, in io.Reader, out io.Writer, yes bool) error {
	dest := skillPath(home)

	fmt.Fprintln(out, "This will install the healthtrack skill, enabling your assistant to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Log weight, steps, sleep, water, and vitals")
	fmt.Fprintln(out, "  • Score your health and explain what to improve")
	fmt.Fprintln(out, "  • Show trends and suggest exercises")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Destination:\n  %s\n\n", dest)

	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !yes {
		fmt.Fprint(out, "Install the healthtrack skill? [y/N] ")
		response, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
	}

	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.New(color.FgGreen).Fprintln(out, "✓ Installed healthtrack skill")
	return nil
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}
