package profilestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

func TestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	profiles, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestStoreCorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))

	s := New(p)
	profiles, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestStoreAcceptsSingleAndListShapes(t *testing.T) {
	t.Parallel()

	dirA := t.TempDir()
	dirB := t.TempDir()

	p := filepath.Join(t.TempDir(), "profiles.json")
	raw := map[string]any{
		"Legacy":  dirA,
		"Current": []string{dirA, dirB},
	}
	b, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, b, 0o644))

	s := New(p)
	profiles, err := s.Load()
	require.NoError(t, err)

	require.Contains(t, profiles, "Legacy")
	assert.Equal(t, []string{dirA}, profiles["Legacy"].Paths)

	require.Contains(t, profiles, "Current")
	assert.Equal(t, []string{dirA, dirB}, profiles["Current"].Paths)
}

func TestStoreUpsertGetDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(filepath.Join(t.TempDir(), "profiles.json"))

	require.NoError(t, s.Upsert("Alpha", []string{dir}))

	got, err := s.Get("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)
	require.Len(t, got.Paths, 1)

	_, err = s.Get("Missing")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ProfileNotFound))

	require.NoError(t, s.Delete("Alpha"))
	_, err = s.Get("Alpha")
	require.Error(t, err)

	// Deleting again is idempotent.
	require.NoError(t, s.Delete("Alpha"))
}

func TestStoreUpsertRejectsEmptyPaths(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	err := s.Upsert("Alpha", nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.InvalidProfileData))
}

func TestStoreUpsertRejectsInvalidPath(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	err := s.Upsert("Alpha", []string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotADirectory))
}

func TestStoreSavePreservesPreviousOnFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	storePath := filepath.Join(dir, "profiles.json")
	s := New(storePath)

	require.NoError(t, s.Upsert("Alpha", []string{dir}))
	before, err := os.ReadFile(storePath)
	require.NoError(t, err)

	// Point the backing path beneath the existing store file, so creating
	// its directory fails, then confirm the original content would not have been touched
	// by a failed write (the original file is untouched since the bad path
	// is a different Store instance).
	bad := New(filepath.Join(storePath, "unwritable", "profiles.json"))
	err = bad.Save(map[string]Profile{"X": {Name: "X", Paths: []string{dir}}})
	require.Error(t, err)

	after, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreListSortedByName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, s.Upsert("Zeta", []string{dir}))
	require.NoError(t, s.Upsert("Alpha", []string{dir}))

	list, err := s.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)
}
