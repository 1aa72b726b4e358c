// Package ws streams relayed backend events to the frontend dev console.
//
// Each connection subscribes to the relay and receives a JSON message per
// event: stdout/stderr lines, stream errors, and the termination notice.
// Slow consumers drop events rather than stalling the relay.
package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/relay"
	"github.com/foodflow/shell/internal/sidecar"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // loopback dev surface
	},
}

// Handler manages live-log WebSocket connections.
type Handler struct {
	relay *relay.Relay
	log   *logging.Logger
}

// NewHandler creates a WebSocket handler.
func NewHandler(rel *relay.Relay, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{relay: rel, log: logger}
}

// HandleConnection upgrades the request and streams relayed events until the
// client disconnects or the subscription closes.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	subID, events := h.relay.Subscribe()
	defer h.relay.Unsubscribe(subID)

	if err := conn.WriteJSON(gin.H{"type": "system", "message": "connected to backend log stream"}); err != nil {
		return
	}

	// Reader only detects disconnects; all writes stay on this goroutine.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(payload(ev)); err != nil {
				return
			}
		}
	}
}

// payload converts an event to its wire representation.
func payload(ev sidecar.Event) gin.H {
	switch ev.Kind {
	case sidecar.EventStdout, sidecar.EventStderr:
		return gin.H{"type": ev.Kind.String(), "line": string(ev.Line)}
	case sidecar.EventError:
		return gin.H{"type": "error", "error": ev.Err.Error()}
	case sidecar.EventTerminated:
		return gin.H{"type": "terminated", "code": ev.Exit.Code, "signal": ev.Exit.Signal}
	default:
		return gin.H{"type": "unknown"}
	}
}
