// Package readiness waits for the backend to start answering HTTP.
//
// The original shell slept a fixed five seconds after spawning and hoped for
// the best; the probe replaces that with bounded polling of the backend's
// health URL. Any HTTP response counts as ready since the contract is only
// that the backend is HTTP-reachable, so a 404 from a misconfigured health
// path still signals a listening server. Polling aborts early if the process
// exits or the caller cancels.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/logging"
)

// ErrProcessExited indicates the backend exited before becoming ready.
var ErrProcessExited = errors.New("backend exited before becoming ready")

// Config configures the probe.
type Config struct {
	URL      string
	Interval time.Duration
	Timeout  time.Duration
}

// Probe polls cfg.URL until the backend answers, the overall timeout
// elapses, ctx is canceled, or the exited channel closes. exited may be nil.
func Probe(ctx context.Context, cfg Config, exited <-chan struct{}, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if exited != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-exited:
				cancel()
			case <-stop:
			}
		}()
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryWaitMin = cfg.Interval
	client.RetryWaitMax = cfg.Interval
	client.RetryMax = int(cfg.Timeout/cfg.Interval) + 1
	// Only transport errors keep the poll going; any HTTP status means the
	// backend is serving.
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("readiness request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if exited != nil {
			select {
			case <-exited:
				return ErrProcessExited
			default:
			}
		}
		return fmt.Errorf("backend not ready after %s: %w", cfg.Timeout, err)
	}
	defer resp.Body.Close()

	logger.Debug("readiness probe answered",
		zap.String("url", cfg.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("waited", time.Since(start)),
	)
	return nil
}
