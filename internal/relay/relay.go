// Package relay forwards the backend's event stream to the process log sink.
//
// The relay is a stateless per-event dispatch loop: stdout lines go to the
// info log, stderr lines and I/O errors to the error log, and the final
// termination event to the info log before the loop ends. It is one-shot for
// one process's lifetime; there is no reconnection or backoff. Live-log
// subscribers (the WebSocket surface) get a non-blocking copy of every event.
package relay

import (
	"sync"

	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/infrastructure/monitoring"
	"github.com/foodflow/shell/internal/shared/id"
	"github.com/foodflow/shell/internal/sidecar"
)

// subscriberBuffer bounds the queue of a slow live-log subscriber; events
// beyond it are dropped rather than stalling the relay.
const subscriberBuffer = 16

// Relay consumes a launch event stream and forwards each event to the logs.
type Relay struct {
	log     *logging.Logger
	metrics *monitoring.Metrics

	mu      sync.Mutex
	onExit  func(sidecar.ExitStatus)
	subs    map[int]chan sidecar.Event
	nextSub int
}

// New creates a relay. metrics may be nil.
func New(logger *logging.Logger, metrics *monitoring.Metrics) *Relay {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Relay{
		log:     logger,
		metrics: metrics,
		subs:    make(map[int]chan sidecar.Event),
	}
}

// SetOnExit registers a hook invoked once when the termination event is
// relayed. Must be set before Run.
func (r *Relay) SetOnExit(fn func(sidecar.ExitStatus)) {
	r.mu.Lock()
	r.onExit = fn
	r.mu.Unlock()
}

// Run forwards events until the stream is closed. Each log line carries the
// launch ID for correlation. Unknown event kinds are ignored.
func (r *Relay) Run(launchID id.LaunchID, events <-chan sidecar.Event) {
	lid := zap.Stringer("launch_id", launchID)

	for ev := range events {
		switch ev.Kind {
		case sidecar.EventStdout:
			r.log.Info("backend stdout", lid, zap.ByteString("line", ev.Line))
			r.metrics.RecordLine("stdout")
		case sidecar.EventStderr:
			r.log.Error("backend stderr", lid, zap.ByteString("line", ev.Line))
			r.metrics.RecordLine("stderr")
		case sidecar.EventError:
			r.log.Error("backend stream error", lid, zap.Error(ev.Err))
			r.metrics.RecordRelayError()
		case sidecar.EventTerminated:
			r.log.Info("backend terminated", lid,
				zap.Int("code", ev.Exit.Code),
				zap.String("signal", ev.Exit.Signal),
			)
			r.metrics.RecordTermination()
			r.fireExit(*ev.Exit)
		default:
			// Future event kinds pass through silently.
		}
		r.broadcast(ev)
	}
}

func (r *Relay) fireExit(exit sidecar.ExitStatus) {
	r.mu.Lock()
	fn := r.onExit
	r.mu.Unlock()

	if fn != nil {
		fn(exit)
	}
}

// Subscribe registers a live-log subscriber. The returned channel receives a
// copy of every relayed event; slow subscribers drop events.
func (r *Relay) Subscribe() (int, <-chan sidecar.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSub++
	ch := make(chan sidecar.Event, subscriberBuffer)
	r.subs[r.nextSub] = ch
	return r.nextSub, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (r *Relay) Unsubscribe(subID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subs[subID]; ok {
		delete(r.subs, subID)
		close(ch)
	}
}

func (r *Relay) broadcast(ev sidecar.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
