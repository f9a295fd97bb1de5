package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/backupengine"
	"github.com/Matteo842/SaveState-sub003/internal/collab"
)

var backupCmd = &cobra.Command{
	Use:   "backup <profile_name>",
	Short: "Back up a profile's source paths into a new archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := runBackup(ctx, args[0])
		printBackupResult(result)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

// runBackup executes one backup transaction and maps the outcome to the
// shared engine→UI result shape.
func runBackup(ctx context.Context, profileName string) (collab.BackupResult, error) {
	settings, err := loadedSettings()
	if err != nil {
		return collab.BackupResult{Success: false, Message: err.Error()}, nil
	}

	store, err := newProfileStore()
	if err != nil {
		return collab.BackupResult{Success: false, Message: err.Error()}, nil
	}

	res, err := backupengine.Backup(ctx, store, profileName, settings)
	if err != nil {
		if apperr.Is(err, apperr.Cancelled) {
			return collab.BackupResult{Success: false, Message: "backup cancelled"}, nil
		}
		return collab.BackupResult{Success: false, Message: err.Error()}, nil
	}

	out := collab.BackupResult{
		Success: true,
		Message: fmt.Sprintf("backed up to %s", res.Archive.Path),
	}
	if res.PruneWarning != "" {
		out.Warnings = append(out.Warnings, res.PruneWarning)
	}
	return out, nil
}

func printBackupResult(r collab.BackupResult) {
	var c collab.ConsoleCollaborator
	c.Notify("backup", r.Message, r.Success)
	for _, w := range r.Warnings {
		c.Status("warning: " + w)
	}
}

// runSilentBackup bypasses single-instance coordination entirely and maps
// success/failure straight to the exit code.
func runSilentBackup(cmd *cobra.Command, profileName string) error {
	if strings.TrimSpace(profileName) == "" {
		return usageError{fmt.Errorf("--backup requires a profile name")}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := runBackup(ctx, profileName)
	printBackupResult(result)
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}
	return nil
}
