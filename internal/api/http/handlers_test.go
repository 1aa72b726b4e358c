package http_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/foodflow/shell/internal/api/http"
	"github.com/foodflow/shell/internal/shared/id"
	"github.com/foodflow/shell/internal/supervisor"
)

type fakeHandle struct {
	pid      int
	launchID id.LaunchID
	started  time.Time
}

func (f *fakeHandle) Kill()                 {}
func (f *fakeHandle) PID() int              { return f.pid }
func (f *fakeHandle) LaunchID() id.LaunchID { return f.launchID }
func (f *fakeHandle) StartedAt() time.Time  { return f.started }

func newRouter(sup *supervisor.Supervisor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := apihttp.NewHandlers(sup, "http://localhost:8080")
	router.GET("/health", handlers.Health)
	router.GET("/status", handlers.Status)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	router := newRouter(supervisor.New(nil))

	body := getJSON(t, router, "/health")
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime_seconds")
}

func TestStatusWithoutBackend(t *testing.T) {
	router := newRouter(supervisor.New(nil))

	body := getJSON(t, router, "/status")
	assert.Equal(t, false, body["running"])
	assert.Equal(t, "http://localhost:8080", body["backend_url"])
	assert.NotContains(t, body, "pid")
}

func TestStatusWithRunningBackend(t *testing.T) {
	sup := supervisor.New(nil)
	sup.Store(&fakeHandle{
		pid:      4321,
		launchID: id.NewLaunchID(),
		started:  time.Now(),
	})
	router := newRouter(sup)

	body := getJSON(t, router, "/status")
	assert.Equal(t, true, body["running"])
	assert.Equal(t, float64(4321), body["pid"])
	assert.NotEmpty(t, body["launch_id"])
	assert.Contains(t, body, "started_at")
}
