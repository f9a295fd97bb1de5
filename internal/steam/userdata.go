package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// findUserData enumerates numeric subfolders of <root>/userdata, excluding
// "0". If exactly one candidate exists it is selected; with several, the
// one whose config/localconfig.vdf has the most recent modification time
// wins, falling back to the folder's own mtime.
func findUserData(root string) (UserData, []string) {
	base := filepath.Join(root, "userdata")
	entries, err := os.ReadDir(base)
	if err != nil {
		return UserData{Base: base}, nil
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if e.Name() == "0" {
			continue
		}
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		return UserData{Base: base}, nil
	}
	if len(ids) == 1 {
		return UserData{Base: base, SelectedID3: ids[0], AllID3s: ids}, nil
	}

	var warnings []string
	best := ids[0]
	bestTime := mtimeFor(base, ids[0], &warnings)
	for _, id := range ids[1:] {
		t := mtimeFor(base, id, &warnings)
		if t.After(bestTime) {
			best, bestTime = id, t
		}
	}

	return UserData{Base: base, SelectedID3: best, AllID3s: ids}, warnings
}

func mtimeFor(base, id3 string, warnings *[]string) time.Time {
	localconfig := filepath.Join(base, id3, "config", "localconfig.vdf")
	if info, err := os.Stat(localconfig); err == nil {
		return info.ModTime()
	}

	if info, err := os.Stat(filepath.Join(base, id3)); err == nil {
		return info.ModTime()
	}

	*warnings = append(*warnings, fmt.Sprintf("could not stat userdata/%s", id3))
	return time.Time{}
}
