// Package config holds the fixed Settings record (spec.md §3) and its
// default-filling viper wiring, replacing the dynamic-dictionary pattern the
// original tool used (spec.md §9, "Dynamic configuration dictionaries").
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// CompressionMode selects the archive engine's compression level.
type CompressionMode string

const (
	CompressionStandard CompressionMode = "standard"
	CompressionMaximum  CompressionMode = "maximum"
	CompressionStored   CompressionMode = "stored"
)

// Settings is the fixed record backing spec.md §3's settings table. Unknown
// keys in the underlying file are ignored (by viper, with a warning logged
// by the caller); missing keys take the defaults below.
type Settings struct {
	BackupBaseDir         string
	MaxBackups            int
	MaxSourceSizeMB       int // -1 = unlimited
	CompressionMode       CompressionMode
	CheckFreeSpaceEnabled bool
	MinFreeSpaceGB        int
}

// SetDefaults installs the spec.md §3 defaults into v. defaultBackupDir is
// the platform-specific user-docs subfolder the caller has already resolved
// (see internal/paths), since viper itself has no notion of "platform
// default directory".
func SetDefaults(v *viper.Viper, defaultBackupDir string) {
	v.SetDefault("backup_base_dir", defaultBackupDir)
	v.SetDefault("max_backups", 3)
	v.SetDefault("max_source_size_mb", 500)
	v.SetDefault("compression_mode", string(CompressionStandard))
	v.SetDefault("check_free_space_enabled", true)
	v.SetDefault("min_free_space_gb", 2)
}

// Load reads the fixed fields out of v into a Settings value.
func Load(v *viper.Viper) Settings {
	return Settings{
		BackupBaseDir:         v.GetString("backup_base_dir"),
		MaxBackups:            v.GetInt("max_backups"),
		MaxSourceSizeMB:       v.GetInt("max_source_size_mb"),
		CompressionMode:       CompressionMode(v.GetString("compression_mode")),
		CheckFreeSpaceEnabled: v.GetBool("check_free_space_enabled"),
		MinFreeSpaceGB:        v.GetInt("min_free_space_gb"),
	}
}

// Validate checks the fields a backup run actually depends on, matching
// backup_runner.py's settings-presence check before it attempts to measure
// source size.
func (s Settings) Validate() error {
	if s.BackupBaseDir == "" {
		return apperr.New(apperr.SettingsInvalid, "backup_base_dir is not configured")
	}
	if s.MaxBackups < 1 {
		return apperr.New(apperr.SettingsInvalid, fmt.Sprintf("max_backups must be >= 1, got %d", s.MaxBackups))
	}
	if s.MaxSourceSizeMB < -1 {
		return apperr.New(apperr.SettingsInvalid, "max_source_size_mb must be -1 (unlimited) or >= 0")
	}
	switch s.CompressionMode {
	case CompressionStandard, CompressionMaximum, CompressionStored:
	default:
		return apperr.New(apperr.SettingsInvalid, "compression_mode must be one of standard, maximum, stored")
	}
	if s.MinFreeSpaceGB < 0 {
		return apperr.New(apperr.SettingsInvalid, "min_free_space_gb must be >= 0")
	}
	return nil
}
