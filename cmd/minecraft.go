package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/minecraft"
)

var minecraftListCmd = &cobra.Command{
	Use:   "minecraft-list",
	Short: "List discovered Minecraft save worlds",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

		roots := minecraft.FindSavesRoots(nil)
		if len(roots) == 0 {
			fmt.Println(subtleStyle.Render("No .minecraft/saves directory found"))
			return nil
		}

		for _, root := range roots {
			worlds, err := minecraft.ListWorlds(root)
			if err != nil {
				return err
			}
			fmt.Println(root)
			for _, w := range worlds {
				fmt.Printf("  %s\n", w.DisplayName)
				if w.Warning != "" {
					fmt.Println(warnStyle.Render("    ⚠ " + w.Warning))
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(minecraftListCmd)
}
