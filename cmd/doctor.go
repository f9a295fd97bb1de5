package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Matteo842/SaveState-sub003/internal/steam"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on settings, the profile store, and the backup directory",
	Long: `Run a health check to confirm savestate-backup can operate.

Doctor verifies:
  - settings.json parses and passes validation
  - the backup base directory exists (it is created if missing) and is
    writable (a probe file is written and removed)
  - profiles.json is readable
  - Steam is discoverable (non-fatal: informational only)`,
	Args:         cobra.ExactArgs(0),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkSettings(); err != nil {
			return err
		}
		if err := checkBackupDir(); err != nil {
			return err
		}
		if err := checkProfileStore(); err != nil {
			return err
		}
		checkSteam()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func checkSettings() error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	fmt.Println(headerStyle.Render("Settings Checks"))

	settings, err := loadedSettings()
	if err != nil {
		fmt.Println(errStyle.Render("  ✗ settings invalid: " + err.Error()))
		fmt.Println()
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("  ✓ settings OK (max_backups=%d, compression=%s)", settings.MaxBackups, settings.CompressionMode)))
	fmt.Println()
	return nil
}

func checkBackupDir() error {
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	settings, err := loadedSettings()
	if err != nil {
		return err
	}

	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render("Backup Directory Checks"))
	fmt.Println(subtleStyle.Render("  dir: " + settings.BackupBaseDir))

	if err := os.MkdirAll(settings.BackupBaseDir, 0o755); err != nil {
		fmt.Println(errStyle.Render("  ✗ could not create backup base dir"))
		fmt.Println()
		return err
	}

	testFile := filepath.Join(settings.BackupBaseDir, ".savestate-doctor-write-test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		fmt.Println(errStyle.Render("  ✗ backup base dir is not writable"))
		fmt.Println()
		return err
	}
	_ = os.Remove(testFile)

	fmt.Println(okStyle.Render("  ✓ backup base dir is writable"))
	fmt.Println()
	return nil
}

func checkProfileStore() error {
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render("Profile Store Checks"))

	store, err := newProfileStore()
	if err != nil {
		fmt.Println(errStyle.Render("  ✗ could not resolve profile store path"))
		fmt.Println()
		return err
	}
	fmt.Println(subtleStyle.Render("  path: " + store.Path()))

	// Load treats an unreadable or unparsable file as an empty store, so the
	// file itself is checked here first.
	if b, readErr := os.ReadFile(store.Path()); readErr == nil {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(b, &probe); err != nil {
			fmt.Println(errStyle.Render("  ✗ profile store does not parse"))
			fmt.Println()
			return err
		}
	} else if !errors.Is(readErr, os.ErrNotExist) {
		fmt.Println(errStyle.Render("  ✗ could not read profile store"))
		fmt.Println()
		return readErr
	}

	profiles, err := store.Load()
	if err != nil {
		fmt.Println(errStyle.Render("  ✗ could not load profile store"))
		fmt.Println()
		return err
	}
	fmt.Println(okStyle.Render(fmt.Sprintf("  ✓ profile store OK (%d profile(s))", len(profiles))))
	fmt.Println()
	return nil
}

func checkSteam() {
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	fmt.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).Render("Steam Checks"))

	ctx := steam.Refresh()
	if ctx.Root == "" {
		fmt.Println(warnStyle.Render("  ⚠ Steam root not found (not fatal: Steam-backed profiles will need a manual path)"))
		fmt.Println()
		return
	}
	fmt.Println(okStyle.Render("  ✓ Steam root: " + ctx.Root))
	fmt.Println(subtleStyle.Render(fmt.Sprintf("    %d librar(y/ies), %d install(s)", len(ctx.Libraries), len(ctx.Installs))))
	fmt.Println()
}
