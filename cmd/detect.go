package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/detector"
	"github.com/Matteo842/SaveState-sub003/internal/steam"
)

var detectInstallDir string

var detectCmd = &cobra.Command{
	Use:   "detect <profile_name_hint>",
	Short: "Run the save-path detector for a game's likely save location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		steamCtx := steam.Refresh()

		req := detector.Request{
			ProfileNameHint: args[0],
			GameInstallDir:  detectInstallDir,
			SteamCtx:        &steamCtx,
			Settings: detector.Settings{
				Publishers: detector.DefaultPublishers,
			},
		}

		resp := detector.Detect(ctx, req, func(stage string) {
			if verbose {
				fmt.Println(subtleStyle.Render("  stage: " + stage))
			}
		})

		if resp.Status == detector.StatusCancelled {
			fmt.Println(warnStyle.Render("detection cancelled"))
			return nil
		}
		if resp.Status != detector.StatusFound {
			fmt.Println(warnStyle.Render("no save path found"))
			return nil
		}

		fmt.Println(okStyle.Render("candidates:"))
		for _, c := range resp.Candidates {
			fmt.Println("  " + c)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVar(&detectInstallDir, "install-dir", "", "game install directory, if known")
}
