package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "perspective"

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		25, 50, 100, // fast
		250, 500, 1000, // normal
		2500, 5000, 10000, 30000, // slow / timeout
	}

	scoreBuckets = prometheus.LinearBuckets(0.1, 0.1, 10)
)

// Metrics records analysis calls. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	scores   *prometheus.HistogramVec
}

// NewRegistry returns a private registry with the process collector attached.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of analyze calls by outcome",
			},
			[]string{"outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_latency_ms",
				Help:      "Analyze call latency in milliseconds",
				Buckets:   latencyBuckets,
			},
			[]string{"outcome"},
		),
		scores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "attribute_score",
				Help:      "Summary scores returned per attribute",
				Buckets:   scoreBuckets,
			},
			[]string{"attribute"},
		),
	}
}

func (m *Metrics) ObserveRequest(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.latency.WithLabelValues(outcome).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) ObserveScore(attribute string, value float64) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(attribute).Observe(value)
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
