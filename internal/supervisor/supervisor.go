// Package supervisor serializes access to the single backend process handle.
//
// The supervisor owns at most one live handle at a time. Startup stores the
// handle immediately after a successful spawn; the shutdown path takes it
// back and kills the process. The mutex is the only coordination between the
// two and is never held across process I/O.
package supervisor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/shared/id"
)

// Handle is the contract the supervisor needs from a stored process handle.
// *sidecar.Handle satisfies it; tests substitute fakes.
type Handle interface {
	// Kill requests unconditional termination without waiting for exit.
	Kill()
	PID() int
	LaunchID() id.LaunchID
	StartedAt() time.Time
}

// Snapshot is a point-in-time view of the supervised handle for the status
// surface. Zero value means no process is held.
type Snapshot struct {
	Running   bool      `json:"running"`
	PID       int       `json:"pid,omitempty"`
	LaunchID  string    `json:"launch_id,omitempty"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// Supervisor guards the single backend handle behind a mutex.
type Supervisor struct {
	log *logging.Logger

	mu     sync.Mutex
	handle Handle
}

// New creates a supervisor holding no handle.
func New(logger *logging.Logger) *Supervisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Supervisor{log: logger}
}

// Store inserts a handle, replacing any previous one. The replaced handle is
// dropped without a kill signal; last write wins.
func (s *Supervisor) Store(h Handle) {
	s.mu.Lock()
	prev := s.handle
	s.handle = h
	s.mu.Unlock()

	if prev != nil && prev != h {
		s.log.Warn("replaced a live backend handle without killing it",
			zap.Int("prev_pid", prev.PID()),
			zap.Stringer("prev_launch_id", prev.LaunchID()),
		)
	}
}

// TakeAndKill atomically removes the handle if present and requests
// termination of the underlying process. It does not wait for exit
// confirmation. Returns the killed handle, or nil if none was held.
func (s *Supervisor) TakeAndKill() Handle {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return nil
	}
	h.Kill()
	s.log.Info("backend kill requested",
		zap.Int("pid", h.PID()),
		zap.Stringer("launch_id", h.LaunchID()),
	)
	return h
}

// Discard clears the stored handle only if it is the same handle. Used when
// the backend exits on its own, so a concurrently stored replacement is
// never clobbered. Reports whether the handle was cleared.
func (s *Supervisor) Discard(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != h || h == nil {
		return false
	}
	s.handle = nil
	return true
}

// Current returns a snapshot of the supervised handle.
func (s *Supervisor) Current() Snapshot {
	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()

	if h == nil {
		return Snapshot{}
	}
	return Snapshot{
		Running:   true,
		PID:       h.PID(),
		LaunchID:  h.LaunchID().String(),
		StartedAt: h.StartedAt(),
	}
}
