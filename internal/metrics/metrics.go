// Package metrics provides Prometheus collectors for the analytics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for chart assembly and refreshes.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Source fetch latency by source and collection
	FetchLatency *prometheus.HistogramVec

	// Failed source fetches by collection
	FetchErrors *prometheus.CounterVec

	// Charts that could not be built, by chart name
	ChartErrors *prometheus.CounterVec

	// Records skipped for a missing identifier, by tab
	SkippedRecords *prometheus.CounterVec

	// Time to assemble a full tab including fetches
	BuildLatency *prometheus.HistogramVec

	// Scheduled refresh outcomes
	RefreshRuns *prometheus.CounterVec

	// Connected event stream clients
	StreamClients prometheus.Gauge
}

// New creates a Metrics instance registered on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecoledger_source_fetch_duration_seconds",
			Help:    "Duration of record fetches from the configured source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source", "collection"}),

		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoledger_source_fetch_errors_total",
			Help: "Total failed record fetches by collection",
		}, []string{"collection"}),

		ChartErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoledger_chart_errors_total",
			Help: "Total charts that failed to build",
		}, []string{"chart"}),

		SkippedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoledger_skipped_records_total",
			Help: "Total records skipped for a missing identifier",
		}, []string{"tab"}),

		BuildLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecoledger_tab_build_duration_seconds",
			Help:    "Duration of chart tab assembly including fetches",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tab"}),

		RefreshRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecoledger_refresh_runs_total",
			Help: "Total scheduled dashboard refreshes by status",
		}, []string{"status"}),

		StreamClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ecoledger_event_stream_clients",
			Help: "Currently connected event stream clients",
		}),
	}
}

// ObserveFetch records a source fetch
func (m *Metrics) ObserveFetch(source, collection string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.FetchLatency.WithLabelValues(source, collection).Observe(d.Seconds())
	if err != nil {
		m.FetchErrors.WithLabelValues(collection).Inc()
	}
}

// IncrementChartError records a chart that failed to build
func (m *Metrics) IncrementChartError(chart string) {
	if m != nil {
		m.ChartErrors.WithLabelValues(chart).Inc()
	}
}

// AddSkipped records skipped malformed records
func (m *Metrics) AddSkipped(tab string, n int) {
	if m != nil && n > 0 {
		m.SkippedRecords.WithLabelValues(tab).Add(float64(n))
	}
}

// ObserveBuild records the assembly time of a tab
func (m *Metrics) ObserveBuild(tab string, d time.Duration) {
	if m != nil {
		m.BuildLatency.WithLabelValues(tab).Observe(d.Seconds())
	}
}

// IncrementRefresh records a refresh outcome ("ok" or "error")
func (m *Metrics) IncrementRefresh(status string) {
	if m != nil {
		m.RefreshRuns.WithLabelValues(status).Inc()
	}
}

// StreamConnected adjusts the connected client gauge by delta
func (m *Metrics) StreamConnected(delta int) {
	if m != nil {
		m.StreamClients.Add(float64(delta))
	}
}
