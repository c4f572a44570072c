package providers

import (
	"powerevents/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRotations()
	IncAppendErrors()
	IncTicks()
	IncTickErrors()
	ObservePersistenceDuration(duration time.Duration)
	SetLastAlive(ms int64)
	SetLastBoot(ms int64)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	rotations           prometheus.Counter
	appendErrors        prometheus.Counter
	ticks               prometheus.Counter
	tickErrors          prometheus.Counter
	persistenceDuration prometheus.Histogram
	lastAlive           prometheus.Gauge
	lastBoot            prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRotations() {
	m.rotations.Inc()
}

func (m *MetricsProvider) IncAppendErrors() {
	m.appendErrors.Inc()
}

func (m *MetricsProvider) IncTicks() {
	m.ticks.Inc()
}

func (m *MetricsProvider) IncTickErrors() {
	m.tickErrors.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetLastAlive(ms int64) {
	m.lastAlive.Set(float64(ms) / 1000)
}

func (m *MetricsProvider) SetLastBoot(ms int64) {
	m.lastBoot.Set(float64(ms) / 1000)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	return newMetricsProvider(conf, prometheus.DefaultRegisterer)
}

func newMetricsProvider(conf *structures.Config, reg prometheus.Registerer) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	factory := promauto.With(reg)

	return &MetricsProvider{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "powerevents_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "powerevents_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		rotations: factory.NewCounter(prometheus.CounterOpts{
			Name: "powerevents_log_rotations_total",
			Help: "Total number of power event log rotations",
		}),

		appendErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "powerevents_log_append_errors_total",
			Help: "Total number of failed power event log appends",
		}),

		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "powerevents_alive_ticks_total",
			Help: "Total number of persisted alive ticks",
		}),

		tickErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "powerevents_alive_tick_errors_total",
			Help: "Total number of alive ticks that failed to persist",
		}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "powerevents_record_write_duration_seconds",
			Help:    "Duration of record write operations in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}),

		lastAlive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "powerevents_last_alive_timestamp_seconds",
			Help: "Last persisted alive instant as Unix time",
		}),

		lastBoot: factory.NewGauge(prometheus.GaugeOpts{
			Name: "powerevents_last_boot_timestamp_seconds",
			Help: "Boot instant of the current run as Unix time",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncRotations()                                    {}
func (n *noopMetrics) IncAppendErrors()                                 {}
func (n *noopMetrics) IncTicks()                                        {}
func (n *noopMetrics) IncTickErrors()                                   {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetLastAlive(_ int64)                             {}
func (n *noopMetrics) SetLastBoot(_ int64)                              {}
