// Package host ties the sidecar lifecycle together: the startup task that
// spawns the backend and the close-request handler that stops it.
//
// Startup is launch → store → relay → readiness probe. The handle is stored
// in the supervisor before the relay begins and before the probe runs, so a
// close request arriving mid-startup can already terminate the process. The
// outcome is posted on a result channel retained by the caller instead of
// being fire-and-forget.
package host

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/config"
	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/infrastructure/monitoring"
	"github.com/foodflow/shell/internal/readiness"
	"github.com/foodflow/shell/internal/relay"
	"github.com/foodflow/shell/internal/sidecar"
	"github.com/foodflow/shell/internal/supervisor"
)

// StartupResult reports the outcome of the backend startup task.
type StartupResult struct {
	// Err is non-nil only when the spawn itself failed; the shell keeps
	// running without a backend in that case.
	Err error
	// Ready reports whether the backend answered the readiness probe.
	Ready    bool
	PID      int
	LaunchID string
}

// Host owns the injected lifecycle collaborators.
type Host struct {
	cfg      *config.Config
	sup      *supervisor.Supervisor
	launcher *sidecar.Launcher
	relay    *relay.Relay
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// New creates a host. metrics may be nil.
func New(cfg *config.Config, sup *supervisor.Supervisor, launcher *sidecar.Launcher, rel *relay.Relay, metrics *monitoring.Metrics, logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Host{
		cfg:      cfg,
		sup:      sup,
		launcher: launcher,
		relay:    rel,
		metrics:  metrics,
		log:      logger,
	}
}

// Start runs the backend startup task in the background and returns the
// channel the result is posted on. The channel is buffered; the result is
// delivered even if the caller reads late.
func (h *Host) Start(ctx context.Context) <-chan StartupResult {
	results := make(chan StartupResult, 1)
	go h.startup(ctx, results)
	return results
}

func (h *Host) startup(ctx context.Context, results chan<- StartupResult) {
	events, handle, err := h.launcher.Launch(h.cfg.Sidecar.Name)
	if err != nil {
		h.log.Error("failed to start backend", zap.Error(err))
		h.metrics.RecordSpawnFailure()
		results <- StartupResult{Err: err}
		return
	}

	// Store before the relay starts; a close request can now terminate the
	// process even while startup is still waiting for readiness.
	h.sup.Store(handle)
	h.metrics.SetSidecarUp(true)

	// Clear the stored handle when the backend exits on its own, so the
	// shutdown path does not kill a stale reference.
	h.relay.SetOnExit(func(exit sidecar.ExitStatus) {
		if h.sup.Discard(handle) {
			h.metrics.SetSidecarUp(false)
		}
	})
	go h.relay.Run(handle.LaunchID(), events)

	spawned := time.Now()
	err = readiness.Probe(ctx, readiness.Config{
		URL:      h.cfg.Readiness.URL,
		Interval: h.cfg.Readiness.Interval,
		Timeout:  h.cfg.Readiness.Timeout,
	}, handle.Exited(), h.log)
	if err != nil {
		h.log.Warn("backend did not become ready",
			zap.Error(err),
			zap.Int("pid", handle.PID()),
			zap.Stringer("launch_id", handle.LaunchID()),
		)
		results <- StartupResult{PID: handle.PID(), LaunchID: handle.LaunchID().String()}
		return
	}

	h.metrics.RecordReady(time.Since(spawned))
	h.log.Info("backend ready",
		zap.String("url", h.cfg.Sidecar.BaseURL),
		zap.Int("pid", handle.PID()),
		zap.Stringer("launch_id", handle.LaunchID()),
	)
	results <- StartupResult{Ready: true, PID: handle.PID(), LaunchID: handle.LaunchID().String()}
}

// CloseRequested reacts to the host window's close request: take the handle
// and kill the process, without waiting for exit confirmation. Silent no-op
// when no backend is running.
func (h *Host) CloseRequested() {
	if killed := h.sup.TakeAndKill(); killed != nil {
		h.metrics.SetSidecarUp(false)
		h.log.Info("backend stopped", zap.Int("pid", killed.PID()))
	}
}
