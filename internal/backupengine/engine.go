// Package backupengine composes the profile store, archive engine, and
// size/free-space auditor into single backup and restore transactions.
package backupengine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/archive"
	"github.com/Matteo842/SaveState-sub003/internal/config"
	"github.com/Matteo842/SaveState-sub003/internal/paths"
	"github.com/Matteo842/SaveState-sub003/internal/profilestore"
	"github.com/Matteo842/SaveState-sub003/internal/sizeaudit"
)

// BackupResult reports the outcome of a successful backup, including any
// non-fatal pruning warning.
type BackupResult struct {
	Archive      archive.Archive
	PruneWarning string
}

// Backup runs the full backup transaction for the named profile: resolve,
// validate, measure, gate on free space, create, then prune. Pruning
// failures are attached as a warning rather than failing the call.
func Backup(ctx context.Context, store *profilestore.Store, profileName string, settings config.Settings) (BackupResult, error) {
	profile, err := store.Get(profileName)
	if err != nil {
		return BackupResult{}, err
	}

	sourcePaths, err := validateSources(profile.Paths, profileName)
	if err != nil {
		return BackupResult{}, err
	}

	total, err := sizeaudit.Measure(sourcePaths)
	if err != nil {
		return BackupResult{}, apperr.Wrap(apperr.SizeMeasurementFailed, "measure source size", err)
	}
	if settings.MaxSourceSizeMB >= 0 && total > sizeaudit.MegabytesToBytes(settings.MaxSourceSizeMB) {
		return BackupResult{}, apperr.New(apperr.SourceTooLarge, fmt.Sprintf("source size %d bytes exceeds max_source_size_mb=%d", total, settings.MaxSourceSizeMB))
	}

	sanitized, err := paths.SanitizeProfileName(profileName)
	if err != nil {
		return BackupResult{}, err
	}
	profileDir := filepath.Join(settings.BackupBaseDir, sanitized)

	if settings.CheckFreeSpaceEnabled {
		margin := sizeaudit.GigabytesToBytes(settings.MinFreeSpaceGB)
		if err := sizeaudit.Check(profileDir, total, margin); err != nil {
			return BackupResult{}, err
		}
	}

	a, err := archive.Create(ctx, sourcePaths, sanitized, profileDir, settings.CompressionMode)
	if err != nil {
		return BackupResult{}, err
	}

	result := BackupResult{Archive: a}

	pruneRes, pruneErr := archive.Prune(profileDir, settings.MaxBackups)
	if pruneErr != nil {
		result.PruneWarning = fmt.Sprintf("retention pruning failed: %v", pruneErr)
	} else if pruneRes.Failed > 0 {
		result.PruneWarning = fmt.Sprintf("retention pruning deleted %d archive(s), failed to delete %d", pruneRes.Deleted, pruneRes.Failed)
	}

	return result, nil
}

// Restore resolves the profile, requires the archive lives under the
// profile's own backup directory, then extracts it back onto the profile's
// source roots.
func Restore(ctx context.Context, store *profilestore.Store, profileName, archivePath string, settings config.Settings) error {
	profile, err := store.Get(profileName)
	if err != nil {
		return err
	}

	destDirs, err := validateSources(profile.Paths, profileName)
	if err != nil {
		return err
	}

	sanitized, err := paths.SanitizeProfileName(profileName)
	if err != nil {
		return err
	}
	profileDir := filepath.Join(settings.BackupBaseDir, sanitized)

	under, err := paths.IsUnderDir(archivePath, profileDir)
	if err != nil {
		return apperr.Wrap(apperr.ArchiveNotUnderBackupDir, "check archive location", err)
	}
	if !under {
		return apperr.New(apperr.ArchiveNotUnderBackupDir, fmt.Sprintf("archive %s is not under %s", archivePath, profileDir))
	}

	return archive.Extract(ctx, archivePath, destDirs)
}

func validateSources(rawPaths []string, profileName string) ([]string, error) {
	if len(rawPaths) == 0 {
		return nil, apperr.New(apperr.InvalidProfileData, fmt.Sprintf("profile %q has no source paths", profileName))
	}
	out := make([]string, 0, len(rawPaths))
	for _, p := range rawPaths {
		v, err := paths.ValidateSavePath(p, profileName)
		if err != nil {
			return nil, apperr.Wrap(apperr.InvalidProfileData, fmt.Sprintf("profile %q has an invalid source path", profileName), err)
		}
		out = append(out, v)
	}
	return out, nil
}
