package nbhttp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector exposes Prometheus metrics for dispatched calls so a
// harness can scrape outcome counts and payload sizes alongside its own
// measurements. It is safe for concurrent use and a nil collector records
// nothing.
//
// Attach it per call via WithMetrics:
//
//	mc := nbhttp.NewMetricsCollector()
//	cfg := nbhttp.NewDispatchConfig(nbhttp.WithMetrics(mc))
type MetricsCollector struct {
	dispatchesTotal *prometheus.CounterVec
	payloadBytes    *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		dispatchesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "nbhttp_dispatches_total",
				Help: "Total number of dispatched HTTP calls",
			},
			[]string{"method", "status_code", "outcome"},
		),
		payloadBytes: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nbhttp_payload_bytes",
				Help:    "Combined request and response payload size per dispatch",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
			[]string{"method", "outcome"},
		),
		inFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "nbhttp_dispatches_in_flight",
				Help: "Number of HTTP calls currently awaiting a response",
			},
			[]string{"method"},
		),
	}
}

// recordDispatch records one classified outcome with its payload size.
func (mc *MetricsCollector) recordDispatch(method, statusCode string, success bool, sizeBytes int64) {
	if mc == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	mc.dispatchesTotal.WithLabelValues(method, statusCode, outcome).Inc()
	mc.payloadBytes.WithLabelValues(method, outcome).Observe(float64(sizeBytes))
}

// dispatchStarted increments the in-flight gauge.
func (mc *MetricsCollector) dispatchStarted(method string) {
	if mc == nil {
		return
	}
	mc.inFlight.WithLabelValues(method).Inc()
}

// dispatchFinished decrements the in-flight gauge.
func (mc *MetricsCollector) dispatchFinished(method string) {
	if mc == nil {
		return
	}
	mc.inFlight.WithLabelValues(method).Dec()
}
