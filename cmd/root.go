package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Matteo842/SaveState-sub003/internal/config"
	"github.com/Matteo842/SaveState-sub003/internal/paths"
	"github.com/Matteo842/SaveState-sub003/internal/profilestore"
)

var (
	cfgFile    string
	verbose    bool
	backupFlag string
)

// rootCmd is the base command. With no subcommand and no --backup flag it
// runs the interactive session; --backup runs a silent one-shot backup and
// bypasses single-instance coordination entirely.
var rootCmd = &cobra.Command{
	Use:   "savestate-backup",
	Short: "Back up, restore, and discover game save locations",
	Long: `savestate-backup finds where a game keeps its save data, archives it on a
schedule you control, and restores it back. One interactive session runs at
a time; a second launch wakes the first instead of starting its own.`,
	Version:      "1.0.0",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupFlag != "" {
			return runSilentBackup(cmd, backupFlag)
		}
		return runInteractive(cmd)
	},
}

// Execute adds all child commands to rootCmd and runs it. Called once by
// main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// usageError marks a failure as a CLI usage error (exit code 2), distinct
// from an operational failure (exit code 1).
type usageError struct{ error }

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $XDG_CONFIG_HOME/savestate-backup/settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().StringVar(&backupFlag, "backup", "",
		"run a silent backup of <profile_name> and exit (no other flags affect the core)")
}

// initConfig wires viper's defaults and, if present, an on-disk settings.json.
func initConfig() {
	roots := paths.Resolve()
	defaultBackupDir := roots.Documents
	if defaultBackupDir == "" {
		defaultBackupDir = roots.Home
	}

	config.SetDefaults(viper.GetViper(), defaultBackupDir)

	// Unknown keys are ignored by config.Load; say so once the file is read.
	defer func() {
		for _, k := range viper.AllKeys() {
			switch k {
			case "backup_base_dir", "max_backups", "max_source_size_mb",
				"compression_mode", "check_free_space_enabled", "min_free_space_gb":
			default:
				fmt.Fprintln(os.Stderr, "warning: ignoring unknown settings key:", k)
			}
		}
	}()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		viper.SetConfigType("json")
		if err := viper.ReadInConfig(); err != nil {
			cobra.CheckErr(err)
		}
		return
	}

	defaultPath, err := xdg.ConfigFile("savestate-backup/settings.json")
	cobra.CheckErr(err)

	if _, err := os.Stat(defaultPath); errors.Is(err, os.ErrNotExist) {
		return
	}

	viper.SetConfigFile(defaultPath)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}
		cobra.CheckErr(err)
		return
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadedSettings reads the fixed Settings record out of the already
// initialized global viper instance and validates it.
func loadedSettings() (config.Settings, error) {
	s := config.Load(viper.GetViper())
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// profileStorePath resolves the on-disk profiles.json location.
func profileStorePath() (string, error) {
	return xdg.DataFile("savestate-backup/profiles.json")
}

// profileConfigPath resolves the default settings.json location.
func profileConfigPath() (string, error) {
	return xdg.ConfigFile("savestate-backup/settings.json")
}

func newProfileStore() (*profilestore.Store, error) {
	p, err := profileStorePath()
	if err != nil {
		return nil, err
	}
	return profilestore.New(p), nil
}
