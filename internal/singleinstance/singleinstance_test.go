package singleinstance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Matteo842/SaveState-sub003/internal/collab"
)

type fakeCollaborator struct {
	mu        sync.Mutex
	activated int
}

func (f *fakeCollaborator) Status(string) {}
func (f *fakeCollaborator) Progress(int)  {}
func (f *fakeCollaborator) PromptChoice(string, string, []string) (int, bool) {
	return 0, true
}
func (f *fakeCollaborator) PromptText(string, string, string) (string, bool) { return "", true }
func (f *fakeCollaborator) Confirm(string, string) collab.ConfirmResult      { return collab.ConfirmCancel }
func (f *fakeCollaborator) Notify(string, string, bool)                     {}
func (f *fakeCollaborator) ActivateRequested() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated++
}

func (f *fakeCollaborator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activated
}

func TestWakePortIsStableAcrossCalls(t *testing.T) {
	t.Parallel()

	a := wakePort()
	b := wakePort()
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, wakePortBase)
	assert.Less(t, a, wakePortBase+wakePortRange)
}

func TestAcquireThenForwardActivates(t *testing.T) {
	// Exercises the whole lock + websocket wake loop; not parallel since it
	// binds a real fixed-derived port shared across the package's tests.

	ui1 := &fakeCollaborator{}
	first, outcome, err := Acquire(context.Background(), ui1)
	require.NoError(t, err)
	require.Equal(t, OutcomeAcquired, outcome)
	defer first.Shutdown()

	// Give the HTTP server a moment to start accepting.
	time.Sleep(50 * time.Millisecond)

	ui2 := &fakeCollaborator{}
	second, outcome2, err2 := Acquire(context.Background(), ui2)
	require.NoError(t, err2)
	assert.Equal(t, OutcomeForwarded, outcome2)
	assert.Nil(t, second)

	time.Sleep(50 * time.Millisecond)
	assert.Eventually(t, func() bool { return ui1.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestLockRejectsSecondAcquire(t *testing.T) {
	l1, err := acquireLock()
	require.NoError(t, err)
	defer l1.Release()

	_, err = acquireLock()
	require.Error(t, err)
}

func TestAcquireReclaimsStaleLockWhenNoListenerResponds(t *testing.T) {
	// Simulate a lock file left behind by an instance that terminated
	// abnormally: the lock file exists, but nothing is listening on the
	// wake endpoint to receive an activate command.
	stale, err := acquireLock()
	require.NoError(t, err)
	_ = stale.file.Close() // abandon the handle without Release, as a crash would

	inst, outcome, err := Acquire(context.Background(), &fakeCollaborator{})
	require.NoError(t, err)
	require.Equal(t, OutcomeAcquired, outcome)
	inst.Shutdown()
}
