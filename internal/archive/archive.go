// Package archive implements the create/extract/list/prune archive engine
// on top of archive/zip (see DESIGN.md for why no third-party archive
// library is used here).
package archive

import (
	"compress/flate"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/Matteo842/SaveState-sub003/internal/config"
)

// Archive describes one backup snapshot on disk.
type Archive struct {
	Path    string
	ModTime time.Time
	Size    int64
}

const (
	namePrefix = "Backup_"
	nameExt    = ".zip"
	timeLayout = "20060102_150405"
)

// namePattern matches files produced by this engine, for list/prune.
var namePattern = regexp.MustCompile(`^Backup_.+_\d{8}_\d{6}(-\d{2})?\.zip$`)

// manifestEntryName is the first entry written into every archive, mapping
// source index to the subtree it was rooted at so restore can route entries
// back to the correct source directory for multi-source profiles.
const manifestEntryName = "__manifest__.json"

// compressionLevel maps a configured CompressionMode onto a compress/flate
// level. Stored archives use zip.Store at the entry-method level instead
// (see writeZip/addTree), so this level is only consulted for Deflate
// entries.
func compressionLevel(mode config.CompressionMode) int {
	switch mode {
	case config.CompressionMaximum:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// archiveName builds the "Backup_<name>_<timestamp>[-NN].zip" filename,
// retrying with a numeric suffix on collision within the same destination
// directory.
func archiveName(destDir, sanitizedProfile string, ts time.Time) (string, error) {
	base := fmt.Sprintf("%s%s_%s", namePrefix, sanitizedProfile, ts.Format(timeLayout))

	candidate := filepath.Join(destDir, base+nameExt)
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}

	for n := 1; n <= 99; n++ {
		candidate = filepath.Join(destDir, fmt.Sprintf("%s-%02d%s", base, n, nameExt))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("could not find a free archive name for %s after 99 attempts", base)
}
