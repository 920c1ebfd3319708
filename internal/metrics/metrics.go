// Package metrics holds the Prometheus collectors for ingest runs and the
// dashboard API.
package metrics

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one process. Only the set matching the
// constructor is registered; the others still accept observations but are
// never exported.
type Metrics struct {
	Registry *prometheus.Registry

	// IngestRecords counts records per pipeline stage:
	// extracted, normalized, dropped.
	IngestRecords *prometheus.CounterVec
	IngestRuns    *prometheus.CounterVec
	IngestDur     prometheus.Summary

	ViewRequests *prometheus.CounterVec
	ViewDur      *prometheus.SummaryVec
	DatasetSize  prometheus.Gauge
}

// NewIngest registers the ingest collectors on a fresh registry.
func NewIngest() *Metrics {
	m := newMetrics()
	m.Registry.MustRegister(m.IngestRecords, m.IngestRuns, m.IngestDur)
	return m
}

// NewDashboard registers the dashboard collectors on a fresh registry.
func NewDashboard() *Metrics {
	m := newMetrics()
	m.Registry.MustRegister(m.ViewRequests, m.ViewDur, m.DatasetSize)
	return m
}

func newMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.IngestRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchlog",
		Name:      "ingest_records_total",
		Help:      "Watch-history records seen per pipeline stage",
	}, []string{"stage"})
	m.IngestRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchlog",
		Name:      "ingest_runs_total",
		Help:      "Ingest runs by result",
	}, []string{"result"})
	m.IngestDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "watchlog",
		Name:      "ingest_duration_seconds",
		Help:      "Time spent in a full ingest run",
	})
	m.ViewRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "watchlog",
		Name:      "dashboard_requests_total",
		Help:      "Dashboard API requests by view and status code",
	}, []string{"view", "code"})
	m.ViewDur = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "watchlog",
		Name:      "dashboard_view_duration_seconds",
		Help:      "Time spent filtering and aggregating a dashboard view",
	}, []string{"view"})
	m.DatasetSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "watchlog",
		Name:      "dataset_events",
		Help:      "Watch events loaded into the dashboard",
	})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry in the text exposition format, for
// node_exporter's textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}
