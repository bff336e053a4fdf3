package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	RenderFailures *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	SynthDuration  prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "describe_requests_total",
			Help: "Describe requests by terminal outcome",
		}, []string{"outcome"}), // 'ok', 'degraded', 'failed'
		RenderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "describe_render_failures_total",
			Help: "Page render failures by cause",
		}, []string{"cause"}), // 'render', 'query'
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "describe_render_duration_seconds",
			Help:    "Time spent rendering the catalog page",
			Buckets: prometheus.DefBuckets,
		}),
		SynthDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "describe_synthesis_duration_seconds",
			Help:    "Time spent generating the description",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncRequests(outcome string) {
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncRenderFailures(cause string) {
	m.RenderFailures.WithLabelValues(cause).Inc()
}

func (m *Metrics) ObserveRender(d time.Duration) {
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveSynthesis(d time.Duration) {
	m.SynthDuration.Observe(d.Seconds())
}
