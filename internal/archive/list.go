package archive

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// List enumerates archives under profileDir matching the naming pattern,
// ordered by modification time ascending (age ascending).
func List(profileDir string) ([]Archive, error) {
	entries, err := os.ReadDir(profileDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.StoreIOFailure, "read profile archive directory", err)
	}

	out := make([]Archive, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !namePattern.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Archive{
			Path:    filepath.Join(profileDir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.Before(out[j].ModTime) })
	return out, nil
}
