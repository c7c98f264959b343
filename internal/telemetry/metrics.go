// Package telemetry exposes prometheus instrumentation for the data loaders.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the loader collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	cacheLookups *prometheus.CounterVec
	loadFailures *prometheus.CounterVec
	loadDuration prometheus.Histogram
	rowsLoaded   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perfdash",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by cache name and result (hit or miss).",
		}, []string{"cache", "result"}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "perfdash",
			Name:      "load_failures_total",
			Help:      "Loads that degraded to an empty result.",
		}, []string{"source"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "perfdash",
			Name:      "sheet_load_duration_seconds",
			Help:      "Time spent reading the spreadsheet on a cache miss.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 8),
		}),
		rowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "perfdash",
			Name:      "sheet_rows",
			Help:      "Rows in the most recently loaded sheet.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cacheLookups, m.loadFailures, m.loadDuration, m.rowsLoaded)
	}
	return m
}

// CacheLookup counts one lookup against the named cache.
func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

// LoadFailed counts a degraded load from source.
func (m *Metrics) LoadFailed(source string) {
	if m == nil {
		return
	}
	m.loadFailures.WithLabelValues(source).Inc()
}

// SheetLoaded records the latency and size of a sheet read.
func (m *Metrics) SheetLoaded(elapsed time.Duration, rows int) {
	if m == nil {
		return
	}
	m.loadDuration.Observe(elapsed.Seconds())
	m.rowsLoaded.Set(float64(rows))
}
