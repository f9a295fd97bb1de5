package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

		store, err := newProfileStore()
		if err != nil {
			return err
		}

		profiles, err := store.List()
		if err != nil {
			return err
		}

		if len(profiles) == 0 {
			fmt.Println(subtleStyle.Render("No profiles configured"))
			return nil
		}

		fmt.Println(headerStyle.Render("Profiles"))
		fmt.Println()
		for _, p := range profiles {
			fmt.Printf("  %s\n", p.Name)
			fmt.Println(subtleStyle.Render("    " + strings.Join(p.Paths, ", ")))
		}

		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
}
