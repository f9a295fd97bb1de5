//go:build !windows

package steam

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// FindSteamRoot probes the default user installation paths for this OS,
// extended with the macOS Application Support location.
func FindSteamRoot() string {
	for _, root := range candidateSteamRoots() {
		if st, err := os.Stat(filepath.Join(root, "steamapps")); err == nil && st.IsDir() {
			return canonicalizePathBestEffort(root)
		}
	}
	return ""
}

func candidateSteamRoots() []string {
	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	}

	return []string{
		filepath.Join(xdg.DataHome, "Steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
	}
}
