// Package server bootstraps the local status/debug HTTP server.
//
// The server is a development aid, not part of the sidecar contract: it
// exposes shell health, the supervised sidecar state, Prometheus metrics,
// and a WebSocket feed of relayed backend output, all on loopback.
package server

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/foodflow/shell/internal/api/http"
	"github.com/foodflow/shell/internal/api/middleware"
	apiws "github.com/foodflow/shell/internal/api/ws"
	"github.com/foodflow/shell/internal/infrastructure/config"
	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/infrastructure/monitoring"
	"github.com/foodflow/shell/internal/relay"
	"github.com/foodflow/shell/internal/supervisor"
)

const shutdownTimeout = 2 * time.Second

// Server wraps the status HTTP server and its dependencies.
type Server struct {
	cfg *config.Config
	log *logging.Logger
	srv *nethttp.Server
}

// New assembles the router and handlers.
func New(cfg *config.Config, logger *logging.Logger, metrics *monitoring.Metrics, sup *supervisor.Supervisor, rel *relay.Relay) *Server {
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	handlers := apihttp.NewHandlers(sup, cfg.Sidecar.BaseURL)
	router.GET("/health", handlers.Health)
	router.GET("/status", handlers.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	wsHandler := apiws.NewHandler(rel, logger)
	router.GET("/logs/stream", wsHandler.HandleConnection)

	return &Server{
		cfg: cfg,
		log: logger,
		srv: &nethttp.Server{
			Addr:    cfg.Status.Addr(),
			Handler: router,
		},
	}
}

// Run starts serving and blocks until the server is closed.
func (s *Server) Run() error {
	s.log.Info("status server listening", zap.String("addr", s.cfg.Status.Addr()))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Close shuts the server down, draining in-flight requests briefly.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
