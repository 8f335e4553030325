package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// heatmap run.
type Metrics struct {
	RecordsRead       prometheus.Counter
	StationsAssembled prometheus.Counter
	StationsDropped   *prometheus.CounterVec // label: reason
	StationsEmitted   prometheus.Counter
	PipelineRunning   prometheus.Gauge
	RunDuration       prometheus.Histogram

	// Name-resolution metrics.
	LookupRequests *prometheus.CounterVec // label: outcome={success,empty,error}
	LookupDuration prometheus.Histogram
	LookupEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbura",
			Name:      "records_read_total",
			Help:      "Total raw station records read from the dataset.",
		}),
		StationsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbura",
			Name:      "stations_assembled_total",
			Help:      "Total stations that passed assembly validation.",
		}),
		StationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbura",
			Name:      "stations_dropped_total",
			Help:      "Records dropped during assembly, by reason.",
		}, []string{"reason"}),
		StationsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "carbura",
			Name:      "stations_emitted_total",
			Help:      "Station entries written to the artifact.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carbura",
			Name:      "pipeline_running",
			Help:      "1 while a run is in flight, 0 otherwise.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carbura",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete read-resolve-assemble-emit run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		LookupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carbura",
			Name:      "name_lookups_total",
			Help:      "Station name lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "carbura",
			Name:      "name_lookup_duration_seconds",
			Help:      "Station-info API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LookupEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "carbura",
			Name:      "name_lookup_enabled",
			Help:      "1 when name resolution is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsRead,
		m.StationsAssembled,
		m.StationsDropped,
		m.StationsEmitted,
		m.PipelineRunning,
		m.RunDuration,
		m.LookupRequests,
		m.LookupDuration,
		m.LookupEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsRead:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carbura", Name: "records_read_total"}),
		StationsAssembled: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carbura", Name: "stations_assembled_total"}),
		StationsDropped:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carbura", Name: "stations_dropped_total"}, []string{"reason"}),
		StationsEmitted:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "carbura", Name: "stations_emitted_total"}),
		PipelineRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "carbura", Name: "pipeline_running"}),
		RunDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "carbura", Name: "run_duration_seconds"}),
		LookupRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "carbura", Name: "name_lookups_total"}, []string{"outcome"}),
		LookupDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "carbura", Name: "name_lookup_duration_seconds"}),
		LookupEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "carbura", Name: "name_lookup_enabled"}),
	}
}
