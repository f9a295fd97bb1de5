package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/steam"
)

var steamCmd = &cobra.Command{
	Use:   "steam",
	Short: "Inspect Steam discovery (libraries, installs, userdata)",
}

var steamRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-scan Steam libraries, installs, and userdata",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

		ctx := steam.Refresh()

		if ctx.Root == "" {
			fmt.Println(warnStyle.Render("Steam root not found"))
			return nil
		}

		fmt.Println(headerStyle.Render("Steam"))
		fmt.Println(subtleStyle.Render("  root: " + ctx.Root))
		fmt.Println(subtleStyle.Render(fmt.Sprintf("  libraries: %d", len(ctx.Libraries))))
		fmt.Println(subtleStyle.Render(fmt.Sprintf("  installs: %d", len(ctx.Installs))))
		if ctx.UserData.Base != "" {
			fmt.Println(subtleStyle.Render("  userdata: " + ctx.UserData.Base))
		}
		for _, w := range ctx.Warnings {
			fmt.Println(warnStyle.Render("  ⚠ " + w))
		}

		return nil
	},
}

var steamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered Steam game installs",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

		ctx := steam.Refresh()
		if len(ctx.Installs) == 0 {
			fmt.Println(subtleStyle.Render("No Steam installs found"))
			return nil
		}

		for _, install := range ctx.Installs {
			fmt.Printf("  %s  (appid %s)\n", install.Name, install.AppID)
			fmt.Println(subtleStyle.Render("    " + install.InstallDir))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(steamCmd)
	steamCmd.AddCommand(steamRefreshCmd)
	steamCmd.AddCommand(steamListCmd)
}
