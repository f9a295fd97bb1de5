package sizeaudit

import (
	"os"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// Check verifies the volume holding destDir has at least required+margin
// free bytes, matching backup_runner.py's free-space gate: compare
// available bytes against total_source_size + (min_free_space_gb * 2^30).
// destDir need not exist yet — it is created first so there is a path to
// anchor the volume lookup against (spec.md §4.4).
func Check(destDir string, required, marginBytes int64) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return apperr.Wrap(apperr.InsufficientSpace, "create destination directory", err)
	}

	free, err := freeBytes(destDir)
	if err != nil {
		return apperr.Wrap(apperr.InsufficientSpace, "read destination free space", err)
	}

	needed := required + marginBytes
	if free < needed {
		return apperr.New(apperr.InsufficientSpace, "insufficient free space at destination")
	}
	return nil
}
