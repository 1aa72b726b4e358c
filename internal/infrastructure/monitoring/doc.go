// Package monitoring provides Prometheus metrics for the sidecar lifecycle.
//
// Collectors cover spawn failures, relayed output volume, terminations, and
// readiness latency, plus request metrics for the local status API. All
// collectors register on the default registry and are exposed via the status
// server's /metrics endpoint.
package monitoring
