package detector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matteo842/SaveState-sub003/internal/paths"
)

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

func TestRankPromotesPreferredBasenames(t *testing.T) {
	t.Parallel()

	in := []string{"/a/Zebra", "/a/Saves", "/a/Apple"}
	got := rank(in)
	require.Len(t, got, 3)
	assert.Equal(t, "/a/Saves", got[0])
	assert.Equal(t, "/a/Apple", got[1])
	assert.Equal(t, "/a/Zebra", got[2])
}

func TestDedupExistingFiltersMissingAndRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := dedupExisting([]string{dir, dir, "/definitely/does/not/exist", "/"})
	assert.Len(t, got, 1)
}

func TestNameVariants(t *testing.T) {
	t.Parallel()

	v := nameVariants("My Game")
	assert.Contains(t, v, "My Game")
	assert.Contains(t, v, "MyGame")
}

func TestStageCommonLocationsFindsSuffix(t *testing.T) {
	t.Parallel()

	docs := t.TempDir()
	mkdir(t, filepath.Join(docs, "MyGame", "Saves"))

	roots := rootsFixture(docs)
	req := Request{ProfileNameHint: "MyGame"}

	found := stageCommonLocations(req, roots)
	assert.Contains(t, found, filepath.Join(docs, "MyGame", "Saves"))
}

func TestStageInstallDirProbe(t *testing.T) {
	t.Parallel()

	install := t.TempDir()
	mkdir(t, filepath.Join(install, "UserData"))

	req := Request{GameInstallDir: install}
	found := stageInstallDirProbe(req)
	assert.Contains(t, found, filepath.Join(install, "UserData"))
}

func TestDetectRespectsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := Detect(ctx, Request{ProfileNameHint: "MyGame"}, nil)
	assert.Equal(t, StatusCancelled, resp.Status)
}

func TestIniScanKnownKey(t *testing.T) {
	t.Parallel()

	install := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(install, "config.ini"), []byte("[Settings]\nSavePath=SaveData\n"), 0o644))
	mkdir(t, filepath.Join(install, "SaveData"))

	req := Request{GameInstallDir: install}
	got, err := stageIniScan(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(install, "SaveData"))
}

func TestIniScanExpandsPercentStyleEnvVar(t *testing.T) {
	// Not parallel: t.Setenv is not allowed in parallel tests.

	install := t.TempDir()
	savesDir := t.TempDir()
	t.Setenv("SAVESTATE_TEST_SAVE_ROOT", savesDir)
	require.NoError(t, os.WriteFile(filepath.Join(install, "config.ini"), []byte("[Settings]\nSavePath=%SAVESTATE_TEST_SAVE_ROOT%\n"), 0o644))

	req := Request{GameInstallDir: install}
	got, err := stageIniScan(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, got, savesDir)
}

func TestIniScanFallbackMarker(t *testing.T) {
	t.Parallel()

	install := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(install, "steam_emu.ini"), []byte("### Game data is stored at SaveData\n"), 0o644))
	mkdir(t, filepath.Join(install, "SaveData"))

	req := Request{GameInstallDir: install}
	got, err := stageIniScan(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(install, "SaveData"))
}

func TestIniAllowedRespectsWhitelistAndBlacklist(t *testing.T) {
	t.Parallel()

	assert.True(t, iniAllowed("config.ini", nil, nil))
	assert.False(t, iniAllowed("readme.txt", nil, nil))
	assert.False(t, iniAllowed("config.ini", nil, []string{"config.ini"}))
	assert.True(t, iniAllowed("config.ini", []string{"config.ini"}, nil))
	assert.False(t, iniAllowed("other.ini", []string{"config.ini"}, nil))
}

func rootsFixture(docs string) paths.Roots {
	return paths.Roots{Documents: docs}
}
