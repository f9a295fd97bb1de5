package singleinstance

import (
	"errors"
	"os"

	"github.com/adrg/xdg"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
)

// lockFileName is the exclusive-create token that marks an interactive
// session as already running (spec.md §4.9).
const lockFileName = "savestate-backup/instance.lock"

// Lock represents a held process-wide token. Release removes the lock file
// so a future launch can acquire it.
type Lock struct {
	path string
	file *os.File
}

// acquireLock creates the lock file exclusively. It returns
// apperr.LockHeldByOtherInstance if the file already exists.
func acquireLock() (*Lock, error) {
	path, err := xdg.StateFile(lockFileName)
	if err != nil {
		return nil, apperr.Wrap(apperr.LockHeldByOtherInstance, "resolve lock path", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, apperr.New(apperr.LockHeldByOtherInstance, "another instance already holds the lock")
		}
		return nil, apperr.Wrap(apperr.LockHeldByOtherInstance, "create lock file", err)
	}

	return &Lock{path: path, file: f}, nil
}

// Release closes and removes the lock file, freeing the token for the next
// launch.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	_ = l.file.Close()
	return os.Remove(l.path)
}

// removeLockFile deletes a lock file left behind by an instance that did
// not shut down cleanly. Only called after a wake-endpoint probe has
// already failed to reach a listener, so the lock is known to be stale.
func removeLockFile() error {
	path, err := xdg.StateFile(lockFileName)
	if err != nil {
		return apperr.Wrap(apperr.LockHeldByOtherInstance, "resolve lock path", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return apperr.Wrap(apperr.LockHeldByOtherInstance, "remove stale lock file", err)
	}
	return nil
}
