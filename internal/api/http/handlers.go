// Package http provides the status API handlers for the local dev surface.
package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/foodflow/shell/internal/supervisor"
)

// Handlers serves shell and sidecar state.
type Handlers struct {
	sup        *supervisor.Supervisor
	backendURL string
	started    time.Time
}

// NewHandlers creates the status handlers.
func NewHandlers(sup *supervisor.Supervisor, backendURL string) *Handlers {
	return &Handlers{
		sup:        sup,
		backendURL: backendURL,
		started:    time.Now(),
	}
}

// Health reports shell liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":         "ok",
		"uptime_seconds": time.Since(h.started).Seconds(),
	})
}

// Status reports the supervised sidecar state.
func (h *Handlers) Status(c *gin.Context) {
	snap := h.sup.Current()
	resp := gin.H{
		"running":     snap.Running,
		"backend_url": h.backendURL,
	}
	if snap.Running {
		resp["pid"] = snap.PID
		resp["launch_id"] = snap.LaunchID
		resp["started_at"] = snap.StartedAt
	}
	c.JSON(200, resp)
}
