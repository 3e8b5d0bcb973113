// Package metrics implements propagator.MetricsRecorder with Prometheus
// collectors, so callers who want telemetry can register a Recorder and
// scrape it; the propagator package itself never imports Prometheus.
package metrics
