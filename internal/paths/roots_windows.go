//go:build windows

package paths

import (
	"os"
	"path/filepath"
)

// resolveOS resolves Windows user roots from environment variables, the
// same mechanism the original Python tool uses (os.getenv('APPDATA')) rather
// than calling into the shell's known-folder COM API — see DESIGN.md.
func resolveOS() Roots {
	home := os.Getenv("USERPROFILE")
	appdataRoaming := os.Getenv("APPDATA")
	appdataLocal := os.Getenv("LOCALAPPDATA")

	var documents, myGames, savedGames, localLow string
	if home != "" {
		documents = filepath.Join(home, "Documents")
		myGames = filepath.Join(documents, "My Games")
		savedGames = filepath.Join(home, "Saved Games")
	}
	if appdataLocal != "" {
		// %LOCALAPPDATA% is .../AppData/Local; LocalLow is a sibling, not a
		// child, of Local.
		localLow = filepath.Join(filepath.Dir(appdataLocal), "LocalLow")
	}

	return Roots{
		Home:            home,
		Documents:       documents,
		MyGames:         myGames,
		SavedGames:      savedGames,
		AppDataRoaming:  appdataRoaming,
		AppDataLocal:    appdataLocal,
		AppDataLocalLow: localLow,
	}
}
