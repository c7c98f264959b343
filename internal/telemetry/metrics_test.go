package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.CacheLookup("sheet", true)
	m.CacheLookup("sheet", false)
	m.CacheLookup("sheet", true)
	m.LoadFailed("sheet")
	m.SheetLoaded(1500*time.Millisecond, 42)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("sheet", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("sheet", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadFailures.WithLabelValues("sheet")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.rowsLoaded))

	count, err := testutil.GatherAndCount(reg, "perfdash_sheet_load_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup("sheet", true)
		m.LoadFailed("sheet")
		m.SheetLoaded(time.Second, 1)
	})
}
