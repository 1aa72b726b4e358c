package sidecar

import (
	"os"
	"sync"
	"time"

	"github.com/foodflow/shell/internal/shared/id"
)

// Handle is an exclusively owned reference to a running backend process.
// It supports exactly one control operation: termination.
type Handle struct {
	proc      *os.Process
	pid       int
	launchID  id.LaunchID
	startedAt time.Time
	exited    chan struct{}
	killOnce  sync.Once
}

// PID returns the OS process ID.
func (h *Handle) PID() int { return h.pid }

// LaunchID returns the launch correlation ID.
func (h *Handle) LaunchID() id.LaunchID { return h.launchID }

// StartedAt returns when the process was spawned.
func (h *Handle) StartedAt() time.Time { return h.startedAt }

// Kill sends an unconditional kill signal to the process. It does not wait
// for exit confirmation; reaping happens on the launch monitor goroutine.
// Safe to call more than once. A kill error means the process is already
// gone, so it is discarded.
func (h *Handle) Kill() {
	h.killOnce.Do(func() {
		_ = h.proc.Kill()
	})
}

// Exited returns a channel that is closed once the process has exited and
// been reaped.
func (h *Handle) Exited() <-chan struct{} { return h.exited }
