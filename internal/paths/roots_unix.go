//go:build !windows

package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// resolveOS resolves the nearest POSIX equivalents of the Windows roots.
// There is no "Saved Games" or "LocalLow" concept outside Windows; those
// are left empty so callers skip them, per spec.md §4.1.
func resolveOS() Roots {
	home, _ := os.UserHomeDir()

	var documents, myGames, appRoaming, appLocal string

	switch runtime.GOOS {
	case "darwin":
		if home != "" {
			documents = filepath.Join(home, "Documents")
			myGames = filepath.Join(documents, "My Games")
			appRoaming = filepath.Join(home, "Library", "Application Support")
			appLocal = appRoaming
		}
	default: // linux and other POSIX systems
		documents = xdg.UserDirs.Documents
		if documents == "" && home != "" {
			documents = filepath.Join(home, "Documents")
		}
		if documents != "" {
			myGames = filepath.Join(documents, "My Games")
		}
		appRoaming = xdg.ConfigHome
		appLocal = xdg.DataHome
	}

	return Roots{
		Home:           home,
		Documents:      documents,
		MyGames:        myGames,
		SavedGames:     "",
		AppDataRoaming: appRoaming,
		AppDataLocal:   appLocal,
		AppDataLocalLow: "",
	}
}
