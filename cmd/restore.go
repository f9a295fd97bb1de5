package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/backupengine"
	"github.com/Matteo842/SaveState-sub003/internal/collab"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <profile_name> <archive_path>",
	Short: "Restore a profile's source paths from one of its own archives",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		settings, err := loadedSettings()
		if err != nil {
			return err
		}

		store, err := newProfileStore()
		if err != nil {
			return err
		}

		var c collab.ConsoleCollaborator
		if err := backupengine.Restore(ctx, store, args[0], args[1], settings); err != nil {
			c.Notify("restore", err.Error(), false)
			return err
		}

		c.Notify("restore", fmt.Sprintf("restored %q from %s", args[0], args[1]), true)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
