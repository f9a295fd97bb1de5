// Package minecraft discovers Minecraft Java Edition save worlds. The NBT
// reader is hand-rolled since no NBT library fits this stack.
package minecraft

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Matteo842/SaveState-sub003/internal/paths"
)

// World describes one discovered save folder.
type World struct {
	FolderName  string
	DisplayName string
	FullPath    string
	Warning     string
}

// FindSavesRoots resolves the platform-specific .minecraft/saves location,
// plus any extra launcher roots the caller supplies (e.g. Prism instances).
func FindSavesRoots(extra []string) []string {
	var out []string

	roots := paths.Resolve()
	switch runtime.GOOS {
	case "windows":
		if roots.AppDataRoaming != "" {
			out = append(out, filepath.Join(roots.AppDataRoaming, ".minecraft", "saves"))
		}
	case "darwin":
		if roots.AppDataRoaming != "" {
			out = append(out, filepath.Join(roots.AppDataRoaming, "minecraft", "saves"))
		}
	default:
		if roots.Home != "" {
			out = append(out, filepath.Join(roots.Home, ".minecraft", "saves"))
		}
	}

	out = append(out, extra...)

	existing := out[:0]
	for _, r := range out {
		if st, err := os.Stat(r); err == nil && st.IsDir() {
			existing = append(existing, r)
		}
	}
	return existing
}

// ListWorlds enumerates every immediate subdirectory of savesRoot as a
// world, reading level.dat's Data.LevelName when available and falling
// back to the folder name on any NBT error.
func ListWorlds(savesRoot string) ([]World, error) {
	entries, err := os.ReadDir(savesRoot)
	if err != nil {
		return nil, err
	}

	var worlds []World
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		w := World{FolderName: e.Name(), DisplayName: e.Name(), FullPath: filepath.Join(savesRoot, e.Name())}

		levelDat := filepath.Join(w.FullPath, "level.dat")
		if name, err := ReadLevelName(levelDat); err == nil && name != "" {
			w.DisplayName = name
		} else if err != nil {
			if _, statErr := os.Stat(levelDat); statErr == nil {
				w.Warning = "could not read level.dat: " + err.Error()
			}
		}

		worlds = append(worlds, w)
	}
	return worlds, nil
}
