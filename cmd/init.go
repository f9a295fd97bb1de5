package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Matteo842/SaveState-sub003/internal/profilestore"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file, profile store, and backup directory",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadedSettings()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(settings.BackupBaseDir, 0o755); err != nil {
			return fmt.Errorf("create backup base dir: %w", err)
		}
		fmt.Println("backup base dir:", settings.BackupBaseDir)

		store, err := newProfileStore()
		if err != nil {
			return err
		}
		if _, err := store.Load(); err != nil {
			return err
		}
		if _, statErr := os.Stat(store.Path()); os.IsNotExist(statErr) {
			if err := store.Save(map[string]profilestore.Profile{}); err != nil {
				return err
			}
		}
		fmt.Println("profile store:", store.Path())

		if cfgFile == "" {
			defaultPath, err := profileConfigPath()
			if err == nil {
				if _, statErr := os.Stat(defaultPath); os.IsNotExist(statErr) {
					if writeErr := os.WriteFile(defaultPath, []byte("{}\n"), 0o644); writeErr != nil {
						return fmt.Errorf("write default config: %w", writeErr)
					}
					fmt.Println("config file created:", defaultPath)
				} else {
					fmt.Println("config file:", viper.ConfigFileUsed())
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
