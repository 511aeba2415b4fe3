package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"vehicle-inference-service/internal/core/domain"
)

// Recorder owns the service's Prometheus collectors on its own registry.
type Recorder struct {
	registry          *prometheus.Registry
	inferenceDuration *prometheus.HistogramVec
	inferenceTotal    *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		inferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vehicle_inference",
			Name:      "model_duration_seconds",
			Help:      "Latency of model calls by variant.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"variant", "outcome"}),
		inferenceTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicle_inference",
			Name:      "model_calls_total",
			Help:      "Model calls by variant and outcome.",
		}, []string{"variant", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vehicle_inference",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		r.inferenceDuration,
		r.inferenceTotal,
		r.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveInference(variant domain.Variant, outcome string, elapsed time.Duration) {
	r.inferenceTotal.WithLabelValues(string(variant), outcome).Inc()
	r.inferenceDuration.WithLabelValues(string(variant), outcome).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
