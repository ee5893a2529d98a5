package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("rest", "loans", 10*time.Millisecond, nil)
	m.ObserveFetch("rest", "loans", 10*time.Millisecond, errors.New("down"))
	m.IncrementChartError("performance")
	m.AddSkipped("loan", 3)
	m.AddSkipped("trade", 0)
	m.IncrementRefresh("ok")
	m.StreamConnected(2)
	m.StreamConnected(-1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrors.WithLabelValues("loans")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChartErrors.WithLabelValues("performance")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SkippedRecords.WithLabelValues("loan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshRuns.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamClients))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveFetch("rest", "loans", time.Second, nil)
		m.IncrementChartError("x")
		m.AddSkipped("loan", 1)
		m.ObserveBuild("dashboard", time.Second)
		m.IncrementRefresh("error")
		m.StreamConnected(1)
	})
}
