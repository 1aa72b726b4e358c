package supervisor_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodflow/shell/internal/shared/id"
	"github.com/foodflow/shell/internal/supervisor"
)

type fakeHandle struct {
	pid      int
	launchID id.LaunchID
	started  time.Time
	kills    int32
}

func newFakeHandle(pid int) *fakeHandle {
	return &fakeHandle{
		pid:      pid,
		launchID: id.NewLaunchID(),
		started:  time.Now(),
	}
}

func (f *fakeHandle) Kill()                 { atomic.AddInt32(&f.kills, 1) }
func (f *fakeHandle) PID() int              { return f.pid }
func (f *fakeHandle) LaunchID() id.LaunchID { return f.launchID }
func (f *fakeHandle) StartedAt() time.Time  { return f.started }

func (f *fakeHandle) killCount() int32 { return atomic.LoadInt32(&f.kills) }

func TestStoreLastWriteWins(t *testing.T) {
	sup := supervisor.New(nil)

	first := newFakeHandle(100)
	second := newFakeHandle(200)

	sup.Store(first)
	sup.Store(second)

	killed := sup.TakeAndKill()
	require.NotNil(t, killed)
	assert.Equal(t, 200, killed.PID())

	// The replaced handle was dropped without a kill signal.
	assert.Equal(t, int32(0), first.killCount())
	assert.Equal(t, int32(1), second.killCount())
}

func TestTakeAndKillTwice(t *testing.T) {
	sup := supervisor.New(nil)
	h := newFakeHandle(42)
	sup.Store(h)

	first := sup.TakeAndKill()
	require.NotNil(t, first)
	assert.Equal(t, int32(1), h.killCount())

	second := sup.TakeAndKill()
	assert.Nil(t, second)
	assert.Equal(t, int32(1), h.killCount())
}

func TestTakeAndKillBeforeStore(t *testing.T) {
	sup := supervisor.New(nil)

	assert.Nil(t, sup.TakeAndKill())
	assert.False(t, sup.Current().Running)
}

func TestDiscardOnlyMatchingHandle(t *testing.T) {
	sup := supervisor.New(nil)

	stale := newFakeHandle(1)
	current := newFakeHandle(2)

	sup.Store(stale)
	sup.Store(current)

	// The stale handle exited on its own; it must not clobber the
	// replacement.
	assert.False(t, sup.Discard(stale))
	assert.Equal(t, 2, sup.Current().PID)

	assert.True(t, sup.Discard(current))
	assert.False(t, sup.Current().Running)

	// Discard after clear is a no-op.
	assert.False(t, sup.Discard(current))
	assert.False(t, sup.Discard(nil))
}

func TestCurrentSnapshot(t *testing.T) {
	sup := supervisor.New(nil)

	snap := sup.Current()
	assert.False(t, snap.Running)
	assert.Zero(t, snap.PID)

	h := newFakeHandle(314)
	sup.Store(h)

	snap = sup.Current()
	assert.True(t, snap.Running)
	assert.Equal(t, 314, snap.PID)
	assert.Equal(t, h.launchID.String(), snap.LaunchID)
	assert.Equal(t, h.started, snap.StartedAt)

	// No kill was sent by snapshotting.
	assert.Equal(t, int32(0), h.killCount())
}
