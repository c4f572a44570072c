package providers

import (
	"powerevents/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/status", 200)
	m.ObserveRequestDuration("/status", time.Millisecond)
	m.IncRotations()
	m.IncAppendErrors()
	m.IncTicks()
	m.IncTickErrors()
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetLastAlive(1000)
	m.SetLastBoot(1000)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := newMetricsProvider(conf, prometheus.NewRegistry())
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := newMetricsProvider(conf, prometheus.NewRegistry())
	mp, ok := m.(*MetricsProvider)
	require.True(t, ok)

	m.IncRotations()
	m.IncRotations()
	m.IncAppendErrors()
	m.IncTicks()
	m.IncTickErrors()
	m.SetLastAlive(91000)
	m.SetLastBoot(1000)
	m.IncRequestsTotal("/status", 200)
	m.ObserveRequestDuration("/status", 5*time.Millisecond)
	m.ObservePersistenceDuration(2 * time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(mp.rotations))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.appendErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.ticks))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.tickErrors))
	assert.Equal(t, float64(91), testutil.ToFloat64(mp.lastAlive))
	assert.Equal(t, float64(1), testutil.ToFloat64(mp.lastBoot))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
