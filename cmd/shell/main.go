package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/host"
	"github.com/foodflow/shell/internal/infrastructure/config"
	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/infrastructure/monitoring"
	"github.com/foodflow/shell/internal/infrastructure/server"
	"github.com/foodflow/shell/internal/relay"
	"github.com/foodflow/shell/internal/sidecar"
	"github.com/foodflow/shell/internal/supervisor"
)

func main() {
	cfg := config.LoadOrDefault()

	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}
	defer func() { _ = logger.Sync() }()

	metrics := monitoring.NewMetrics()

	sup := supervisor.New(logger)
	launcher := sidecar.NewLauncher(logger)
	launcher.Dir = cfg.Sidecar.Dir
	rel := relay.New(logger, metrics)
	hst := host.New(cfg, sup, launcher, rel, metrics, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := hst.Start(ctx)

	// The status surface is a development aid; production builds run headless.
	var statusSrv *server.Server
	errChan := make(chan error, 1)
	if cfg.Status.Enabled && logging.IsDevelopment() {
		statusSrv = server.New(cfg, logger, metrics, sup, rel)
		go func() {
			if err := statusSrv.Run(); err != nil {
				errChan <- err
			}
		}()
	}

	// The host framework's close request arrives as an OS signal.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case res := <-results:
			switch {
			case res.Err != nil:
				// The shell keeps running without a backend; no retry.
				logger.Error("backend startup failed", zap.Error(res.Err))
			case res.Ready:
				logger.Info("backend running",
					zap.Int("pid", res.PID),
					zap.String("launch_id", res.LaunchID),
					zap.String("url", cfg.Sidecar.BaseURL),
				)
			default:
				logger.Warn("backend running but not ready",
					zap.Int("pid", res.PID),
					zap.String("launch_id", res.LaunchID),
				)
			}
			results = nil
		case err := <-errChan:
			logger.Error("status server error", zap.Error(err))
			errChan = nil
		case <-sigChan:
			logger.Info("close requested, shutting down")
			hst.CloseRequested()
			if statusSrv != nil {
				if err := statusSrv.Close(); err != nil {
					logger.Error("status server shutdown error", zap.Error(err))
				}
			}
			return
		}
	}
}
