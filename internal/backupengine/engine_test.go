package backupengine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/archive"
	"github.com/Matteo842/SaveState-sub003/internal/config"
	"github.com/Matteo842/SaveState-sub003/internal/profilestore"
)

func newSettings(backupDir string) config.Settings {
	return config.Settings{
		BackupBaseDir:         backupDir,
		MaxBackups:            2,
		MaxSourceSizeMB:       -1,
		CompressionMode:       config.CompressionStored,
		CheckFreeSpaceEnabled: false,
		MinFreeSpaceGB:        0,
	}
}

// TestHappyPathBackupRetention mirrors spec.md §8 scenario S1: three
// successful backups with max_backups=2 leave exactly two archives.
func TestHappyPathBackupRetention(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "save.dat"), []byte("state"), 0o644))

	backupRoot := t.TempDir()
	storePath := filepath.Join(t.TempDir(), "profiles.json")
	store := profilestore.New(storePath)
	require.NoError(t, store.Upsert("Alpha", []string{src}))

	settings := newSettings(backupRoot)

	var results []BackupResult
	for i := 0; i < 3; i++ {
		res, err := Backup(context.Background(), store, "Alpha", settings)
		require.NoError(t, err)
		results = append(results, res)
	}

	list, err := archive.List(filepath.Join(backupRoot, "Alpha"))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestBackupMissingProfile(t *testing.T) {
	t.Parallel()

	store := profilestore.New(filepath.Join(t.TempDir(), "profiles.json"))
	_, err := Backup(context.Background(), store, "Ghost", newSettings(t.TempDir()))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ProfileNotFound))
}

// TestBackupRefusesOversizedSource mirrors the SourceTooLarge gate in
// spec.md §4.5 step 3.
func TestBackupRefusesOversizedSource(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "big.dat"), make([]byte, 2048), 0o644))

	store := profilestore.New(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Upsert("Alpha", []string{src}))

	settings := newSettings(t.TempDir())
	settings.MaxSourceSizeMB = 0 // anything beyond 0 bytes must fail

	_, err := Backup(context.Background(), store, "Alpha", settings)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.SourceTooLarge))
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "save.dat"), []byte("original"), 0o644))

	backupRoot := t.TempDir()
	store := profilestore.New(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Upsert("Alpha", []string{src}))

	settings := newSettings(backupRoot)

	res, err := Backup(context.Background(), store, "Alpha", settings)
	require.NoError(t, err)

	// Mutate the source after backup, then restore onto it.
	require.NoError(t, os.WriteFile(filepath.Join(src, "save.dat"), []byte("mutated"), 0o644))

	require.NoError(t, Restore(context.Background(), store, "Alpha", res.Archive.Path, settings))

	got, err := os.ReadFile(filepath.Join(src, "save.dat"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

// TestFirstBackupWithFreeSpaceCheckEnabled mirrors spec.md §8 scenario S3's
// setup on the success side: the profile's backup directory does not exist
// yet on a first backup, and the free-space gate (§4.4) must still be able
// to anchor its volume lookup there instead of failing spuriously.
func TestFirstBackupWithFreeSpaceCheckEnabled(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "save.dat"), []byte("state"), 0o644))

	backupRoot := t.TempDir()
	store := profilestore.New(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Upsert("Alpha", []string{src}))

	profileDir := filepath.Join(backupRoot, "Alpha")
	_, statErr := os.Stat(profileDir)
	require.True(t, os.IsNotExist(statErr))

	settings := newSettings(backupRoot)
	settings.CheckFreeSpaceEnabled = true
	settings.MinFreeSpaceGB = 0

	_, err := Backup(context.Background(), store, "Alpha", settings)
	require.NoError(t, err)
}

func TestRestoreRejectsArchiveOutsideProfileDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "save.dat"), []byte("x"), 0o644))

	store := profilestore.New(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, store.Upsert("Alpha", []string{src}))

	settings := newSettings(t.TempDir())

	outsideDir := t.TempDir()
	rogueArchive, err := archive.Create(context.Background(), []string{src}, "Alpha", outsideDir, config.CompressionStored)
	require.NoError(t, err)

	err = Restore(context.Background(), store, "Alpha", rogueArchive.Path, settings)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ArchiveNotUnderBackupDir))
}
