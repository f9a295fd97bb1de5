//go:build windows

package sizeaudit

import "golang.org/x/sys/windows"

// freeBytes reports bytes available to the calling user on the volume
// holding path, via GetDiskFreeSpaceEx — the same API the pack's
// standalone GoSize reference uses for drive free-space reporting.
func freeBytes(path string) (int64, error) {
	var freeAvailToCaller, totalBytes, totalFree uint64

	root, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	if err := windows.GetDiskFreeSpaceEx(root, &freeAvailToCaller, &totalBytes, &totalFree); err != nil {
		return 0, err
	}
	return int64(freeAvailToCaller), nil
}
