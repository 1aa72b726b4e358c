package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiws "github.com/foodflow/shell/internal/api/ws"
	"github.com/foodflow/shell/internal/relay"
	"github.com/foodflow/shell/internal/shared/id"
	"github.com/foodflow/shell/internal/sidecar"
)

func TestStreamDeliversRelayedEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rel := relay.New(nil, nil)
	router := gin.New()
	router.GET("/logs/stream", apiws.NewHandler(rel, nil).HandleConnection)

	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/logs/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	// The welcome message confirms the subscription is active before any
	// events are relayed.
	var welcome map[string]interface{}
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "system", welcome["type"])

	events := make(chan sidecar.Event, 2)
	events <- sidecar.Event{Kind: sidecar.EventStdout, Line: []byte("hello")}
	events <- sidecar.Event{Kind: sidecar.EventTerminated, Exit: &sidecar.ExitStatus{Code: 0}}
	close(events)
	go rel.Run(id.NewLaunchID(), events)

	var stdout map[string]interface{}
	require.NoError(t, conn.ReadJSON(&stdout))
	assert.Equal(t, "stdout", stdout["type"])
	assert.Equal(t, "hello", stdout["line"])

	var terminated map[string]interface{}
	require.NoError(t, conn.ReadJSON(&terminated))
	assert.Equal(t, "terminated", terminated["type"])
	assert.Equal(t, float64(0), terminated["code"])
}
