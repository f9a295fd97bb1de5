//go:build !windows

package sizeaudit

import "golang.org/x/sys/unix"

// freeBytes reports bytes available to an unprivileged process on the
// filesystem holding path, grounded on the statfs-based disk collector
// pattern used elsewhere in the pack (nhdewitt-spectra's
// internal/collector/disk_linux.go).
func freeBytes(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
