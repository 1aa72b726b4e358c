package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the shell.
//
// A nil *Metrics is valid: every record method is a no-op. This keeps
// metrics optional for components exercised in tests.
type Metrics struct {
	// Sidecar lifecycle metrics
	SpawnFailures prometheus.Counter
	Terminations  prometheus.Counter
	SidecarUp     prometheus.Gauge
	ReadyDuration prometheus.Histogram

	// Relay metrics
	LinesRelayed *prometheus.CounterVec
	RelayErrors  prometheus.Counter

	// Status API metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time
}

// NewMetrics creates a new metrics collector registered on the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		SpawnFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_sidecar_spawn_failures_total",
				Help: "Total number of failed sidecar spawn attempts",
			},
		),
		Terminations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_sidecar_terminations_total",
				Help: "Total number of sidecar process terminations observed",
			},
		),
		SidecarUp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shell_sidecar_up",
				Help: "Whether a sidecar process handle is currently held (1) or not (0)",
			},
		),
		ReadyDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shell_sidecar_ready_duration_seconds",
				Help:    "Time from spawn until the backend answered the readiness probe",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
		LinesRelayed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_relay_lines_total",
				Help: "Total number of output lines relayed from the sidecar",
			},
			[]string{"stream"},
		),
		RelayErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shell_relay_errors_total",
				Help: "Total number of I/O errors surfaced on the sidecar event stream",
			},
		),
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shell_http_requests_total",
				Help: "Total number of status API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shell_http_request_duration_seconds",
				Help:    "Status API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
	}
}

// RecordSpawnFailure increments the spawn failure counter.
func (m *Metrics) RecordSpawnFailure() {
	if m == nil {
		return
	}
	m.SpawnFailures.Inc()
}

// RecordTermination increments the termination counter.
func (m *Metrics) RecordTermination() {
	if m == nil {
		return
	}
	m.Terminations.Inc()
}

// SetSidecarUp records whether a sidecar handle is currently held.
func (m *Metrics) SetSidecarUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.SidecarUp.Set(1)
	} else {
		m.SidecarUp.Set(0)
	}
}

// RecordReady records the time it took the backend to become ready.
func (m *Metrics) RecordReady(d time.Duration) {
	if m == nil {
		return
	}
	m.ReadyDuration.Observe(d.Seconds())
}

// RecordLine increments the relayed line counter for a stream ("stdout"/"stderr").
func (m *Metrics) RecordLine(stream string) {
	if m == nil {
		return
	}
	m.LinesRelayed.WithLabelValues(stream).Inc()
}

// RecordRelayError increments the relay I/O error counter.
func (m *Metrics) RecordRelayError() {
	if m == nil {
		return
	}
	m.RelayErrors.Inc()
}

// RecordHTTPRequest records a status API request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Uptime returns the time since the metrics collector was created.
func (m *Metrics) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}
