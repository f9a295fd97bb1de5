package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matteo842/SaveState-sub003/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCreateAndExtractRoundTrip(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "save.dat"), "hello world")
	writeFile(t, filepath.Join(src, "nested", "more.dat"), "nested content")

	destDir := t.TempDir()

	a, err := Create(context.Background(), []string{src}, "Alpha", destDir, config.CompressionStandard)
	require.NoError(t, err)
	assert.FileExists(t, a.Path)
	assert.Greater(t, a.Size, int64(0))

	restoreDir := t.TempDir()
	require.NoError(t, Extract(context.Background(), a.Path, []string{restoreDir}))

	got, err := os.ReadFile(filepath.Join(restoreDir, "save.dat"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))

	got, err = os.ReadFile(filepath.Join(restoreDir, "nested", "more.dat"))
	require.NoError(t, err)
	assert.Equal(t, "nested content", string(got))
}

// TestCreateAndExtractRoundTripEmptyDir mirrors spec.md §8.7: a tree
// containing an empty subdirectory must come back byte-identical, not just
// its regular files.
func TestCreateAndExtractRoundTripEmptyDir(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "save.dat"), "hello world")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty", "also-empty"), 0o755))

	destDir := t.TempDir()
	a, err := Create(context.Background(), []string{src}, "Alpha", destDir, config.CompressionStandard)
	require.NoError(t, err)

	restoreDir := t.TempDir()
	require.NoError(t, Extract(context.Background(), a.Path, []string{restoreDir}))

	info, err := os.Stat(filepath.Join(restoreDir, "empty", "also-empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExtractDoesNotDeleteUnrelatedFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "save.dat"), "v1")

	destDir := t.TempDir()
	a, err := Create(context.Background(), []string{src}, "Alpha", destDir, config.CompressionStored)
	require.NoError(t, err)

	restoreDir := t.TempDir()
	writeFile(t, filepath.Join(restoreDir, "untouched.txt"), "keep me")

	require.NoError(t, Extract(context.Background(), a.Path, []string{restoreDir}))

	assert.FileExists(t, filepath.Join(restoreDir, "untouched.txt"))
	assert.FileExists(t, filepath.Join(restoreDir, "save.dat"))
}

func TestMultiSourceManifestRoutesEntries(t *testing.T) {
	t.Parallel()

	srcA := t.TempDir()
	srcB := t.TempDir()
	writeFile(t, filepath.Join(srcA, "a.txt"), "from a")
	writeFile(t, filepath.Join(srcB, "b.txt"), "from b")

	destDir := t.TempDir()
	a, err := Create(context.Background(), []string{srcA, srcB}, "Multi", destDir, config.CompressionStandard)
	require.NoError(t, err)

	restoreA := t.TempDir()
	restoreB := t.TempDir()
	require.NoError(t, Extract(context.Background(), a.Path, []string{restoreA, restoreB}))

	assert.FileExists(t, filepath.Join(restoreA, "a.txt"))
	assert.NoFileExists(t, filepath.Join(restoreA, "b.txt"))
	assert.FileExists(t, filepath.Join(restoreB, "b.txt"))

	sources, err := ReadManifest(a.Path)
	require.NoError(t, err)
	assert.Len(t, sources, 2)
}

func TestArchiveNameCollisionGetsSuffix(t *testing.T) {
	t.Parallel()

	destDir := t.TempDir()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := archiveName(destDir, "Alpha", ts)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first, []byte("x"), 0o644))

	second, err := archiveName(destDir, "Alpha", ts)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "-01")
}

func TestListOrdersByModTimeAscending(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "f.txt"), "x")
	destDir := t.TempDir()

	var created []Archive
	for i := 0; i < 3; i++ {
		a, err := Create(context.Background(), []string{src}, "Alpha", destDir, config.CompressionStored)
		require.NoError(t, err)
		created = append(created, a)
		// Creations within the same second get distinct names from
		// archiveName's -NN suffix.
	}

	list, err := List(destDir)
	require.NoError(t, err)
	require.Len(t, list, len(created))
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].ModTime.Before(list[i-1].ModTime))
	}
}

func TestPruneKeepsNewestN(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeFile(t, filepath.Join(src, "f.txt"), "x")
	destDir := t.TempDir()

	for i := 0; i < 4; i++ {
		_, err := Create(context.Background(), []string{src}, "Alpha", destDir, config.CompressionStored)
		require.NoError(t, err)
	}

	before, err := List(destDir)
	require.NoError(t, err)
	require.Len(t, before, 4)

	res, err := Prune(destDir, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, 0, res.Failed)

	after, err := List(destDir)
	require.NoError(t, err)
	require.Len(t, after, 2)

	// The survivors are the two newest.
	assert.Equal(t, before[2].Path, after[0].Path)
	assert.Equal(t, before[3].Path, after[1].Path)
}

func TestCreateRejectsEmptySources(t *testing.T) {
	t.Parallel()

	_, err := Create(context.Background(), nil, "Alpha", t.TempDir(), config.CompressionStandard)
	require.Error(t, err)
}
