// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The relay forwards every backend output line through a Logger, so the
// encoders are tuned for high line volume: no stacktraces outside
// development, short caller annotations, ISO8601 timestamps.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("backend started", zap.Int("pid", pid))
//	logger.Error("spawn failed", zap.Error(err))
package logging
