package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all agent metrics on a private registry.
type Metrics struct {
	// Capture loop
	FramesSubmitted   prometheus.Counter
	FramesSkipped     prometheus.Counter
	CaptureErrors     prometheus.Counter
	DetectFailures    prometheus.Counter
	PreviewsInstalled prometheus.Counter
	DetectLatency     prometheus.Histogram
	CameraActive      prometheus.Gauge

	// Stats poller
	StatsPolls               prometheus.Counter
	StatsFailures            prometheus.Counter
	ConsecutiveStatsFailures prometheus.Gauge

	// Snapshot archive
	SnapshotsArchived prometheus.Counter

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		FramesSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_frames_submitted_total",
			Help: "Frames uploaded to the detection endpoint",
		}),
		FramesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_frames_skipped_total",
			Help: "Capture iterations skipped because the stream had no frames yet",
		}),
		CaptureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_capture_errors_total",
			Help: "Capture iterations that failed to snapshot or encode a frame",
		}),
		DetectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_detect_failures_total",
			Help: "Uploads that did not produce a preview",
		}),
		PreviewsInstalled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_previews_installed_total",
			Help: "Annotated previews installed as the stream poster",
		}),
		DetectLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "helmetwatch_detect_latency_seconds",
			Help:    "Round trip time of detection uploads",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		CameraActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "helmetwatch_camera_active",
			Help: "1 while a camera session is active",
		}),
		StatsPolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_stats_polls_total",
			Help: "Successful statistics polls",
		}),
		StatsFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_stats_failures_total",
			Help: "Statistics polls skipped after a failed request",
		}),
		ConsecutiveStatsFailures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "helmetwatch_stats_consecutive_failures",
			Help: "Statistics polls failed in a row since the last success",
		}),
		SnapshotsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "helmetwatch_snapshots_archived_total",
			Help: "Annotated previews written to the snapshot archive",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FramesSubmitted,
		m.FramesSkipped,
		m.CaptureErrors,
		m.DetectFailures,
		m.PreviewsInstalled,
		m.DetectLatency,
		m.CameraActive,
		m.StatsPolls,
		m.StatsFailures,
		m.ConsecutiveStatsFailures,
		m.SnapshotsArchived,
	)

	return m
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
