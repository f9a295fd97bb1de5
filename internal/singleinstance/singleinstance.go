// Package singleinstance enforces that at most one interactive session
// runs at a time, and wakes an already-running session instead of starting
// a second one (spec.md §4.9). Silent backups (the --backup entrypoint,
// C10) bypass this package entirely.
package singleinstance

import (
	"context"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/collab"
)

// Outcome describes what happened when an interactive launch tried to
// become (or reach) the single instance.
type Outcome int

const (
	// OutcomeAcquired means this process holds the lock and now owns the
	// wake endpoint; it should proceed to run interactively.
	OutcomeAcquired Outcome = iota
	// OutcomeForwarded means another instance was running and was
	// successfully woken; this process should exit 0.
	OutcomeForwarded
)

// Instance is the held lock plus the running wake endpoint. Callers must
// call Shutdown when the interactive session ends.
type Instance struct {
	lock   *Lock
	server *Server
	cancel context.CancelFunc
	done   chan error
}

// Acquire attempts to become the single interactive instance. If another
// instance already holds the lock, it forwards an activate command to it
// and returns OutcomeForwarded with no error on success, or a
// apperr.IpcSendFailed error if forwarding itself failed.
//
// If the lock file exists but nothing answers the wake endpoint, it was
// left behind by an instance that terminated abnormally (spec.md §4.9
// asks for release "where feasible" on abnormal exit, not guarantees it).
// In that case the stale lock is cleared and acquisition is retried once,
// matching the "wake the existing one, or become it" intent rather than
// permanently locking out every future launch.
func Acquire(parent context.Context, ui collab.UICollaborator) (*Instance, Outcome, error) {
	lock, err := acquireLock()
	if err != nil {
		if apperr.Is(err, apperr.LockHeldByOtherInstance) {
			sendErr := SendActivate()
			if sendErr == nil {
				return nil, OutcomeForwarded, nil
			}
			if retryLock, retryErr := reclaimStaleLock(); retryErr == nil {
				return finishAcquire(parent, ui, retryLock)
			}
			return nil, OutcomeForwarded, sendErr
		}
		return nil, OutcomeAcquired, err
	}

	return finishAcquire(parent, ui, lock)
}

// reclaimStaleLock removes the existing lock file and re-acquires it. Called
// only after SendActivate has already failed to reach a listener.
func reclaimStaleLock() (*Lock, error) {
	if err := removeLockFile(); err != nil {
		return nil, err
	}
	return acquireLock()
}

func finishAcquire(parent context.Context, ui collab.UICollaborator, lock *Lock) (*Instance, Outcome, error) {
	srv, err := Listen(ui)
	if err != nil {
		_ = lock.Release()
		return nil, OutcomeAcquired, err
	}

	ctx, cancel := context.WithCancel(parent)
	inst := &Instance{lock: lock, server: srv, cancel: cancel, done: make(chan error, 1)}
	go func() {
		inst.done <- srv.Serve(ctx)
	}()

	return inst, OutcomeAcquired, nil
}

// Shutdown stops the wake endpoint and releases the process lock.
func (i *Instance) Shutdown() error {
	if i == nil {
		return nil
	}
	i.cancel()
	<-i.done
	return i.lock.Release()
}
