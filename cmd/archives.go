package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/archive"
	"github.com/Matteo842/SaveState-sub003/internal/paths"
)

var archivesCmd = &cobra.Command{
	Use:   "archives <profile_name>",
	Short: "List the archives kept for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

		settings, err := loadedSettings()
		if err != nil {
			return err
		}

		sanitized, err := paths.SanitizeProfileName(args[0])
		if err != nil {
			return err
		}
		profileDir := filepath.Join(settings.BackupBaseDir, sanitized)

		archives, err := archive.List(profileDir)
		if err != nil {
			return err
		}

		if len(archives) == 0 {
			fmt.Println(subtleStyle.Render("No archives found for " + args[0]))
			return nil
		}

		fmt.Println(headerStyle.Render("Archives for " + args[0]))
		fmt.Println()
		for _, a := range archives {
			fmt.Printf("  %s\n", filepath.Base(a.Path))
			fmt.Println(subtleStyle.Render(fmt.Sprintf("    %s, %d bytes", a.ModTime.Format("2006-01-02 15:04:05"), a.Size)))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(archivesCmd)
}
