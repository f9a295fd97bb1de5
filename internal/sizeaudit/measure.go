// Package sizeaudit measures source-tree byte totals and checks destination
// free space before a backup proceeds.
package sizeaudit

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Measure sums the apparent size of every regular file reachable from
// sources. Hardlinks to an already-counted inode are not double-counted
// (tracked via os.SameFile). Directory symlinks are not followed, wherever
// they point; file symlinks are followed and counted as files, matching
// internal/archive.Create's walk policy.
func Measure(sources []string) (int64, error) {
	var total int64
	seen := make([]os.FileInfo, 0, 64)

	alreadyCounted := func(info os.FileInfo) bool {
		for _, s := range seen {
			if os.SameFile(s, info) {
				return true
			}
		}
		return false
	}

	for _, root := range sources {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				target, rerr := filepath.EvalSymlinks(path)
				if rerr != nil {
					return rerr
				}
				info, serr := os.Stat(target)
				if serr != nil {
					return serr
				}
				if info.IsDir() {
					return nil
				}
				if alreadyCounted(info) {
					return nil
				}
				seen = append(seen, info)
				total += info.Size()
				return nil
			}

			info, ierr := d.Info()
			if ierr != nil {
				return ierr
			}
			if alreadyCounted(info) {
				return nil
			}
			seen = append(seen, info)
			total += info.Size()
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	return total, nil
}

// MegabytesToBytes converts a max_source_size_mb-style setting to bytes.
func MegabytesToBytes(mb int) int64 {
	return int64(mb) * 1024 * 1024
}

// GigabytesToBytes converts a min_free_space_gb-style setting to bytes.
func GigabytesToBytes(gb int) int64 {
	return int64(gb) * 1024 * 1024 * 1024
}
