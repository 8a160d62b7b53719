// Package metrics exposes Prometheus counters for calculations and API
// requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes used as the status label.
const (
	StatusOK              = "ok"
	StatusEmpty           = "empty"
	StatusValidationError = "validation_error"
	StatusError           = "error"
)

// Recorder owns a registry and the collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	Calculations       *prometheus.CounterVec
	CalculationErrors  *prometheus.CounterVec
	CalculationSeconds *prometheus.HistogramVec
	APICalls           *prometheus.CounterVec
	HistoryOperations  *prometheus.CounterVec
}

// New creates a Recorder backed by a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		Calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_calculations_total",
				Help: "Calculations performed by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		CalculationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_calculation_errors_total",
				Help: "Rejected calculations by kind and error type",
			},
			[]string{"kind", "error_type"},
		),
		CalculationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fincalc_calculation_duration_seconds",
				Help:    "Time spent computing a projection",
				Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
			},
			[]string{"kind"},
		),
		APICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_api_calls_total",
				Help: "HTTP API calls by endpoint and status code",
			},
			[]string{"endpoint", "code"},
		),
		HistoryOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincalc_history_operations_total",
				Help: "Saved calculation store operations by backend and outcome",
			},
			[]string{"backend", "operation", "status"},
		),
	}
}

// ObserveCalculation records one finished calculation.
func (r *Recorder) ObserveCalculation(kind, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.Calculations.WithLabelValues(kind, status).Inc()
	r.CalculationSeconds.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveCalculationError records a rejected calculation.
func (r *Recorder) ObserveCalculationError(kind, errorType string) {
	if r == nil {
		return
	}
	r.Calculations.WithLabelValues(kind, errorType).Inc()
	r.CalculationErrors.WithLabelValues(kind, errorType).Inc()
}

// ObserveAPICall records one HTTP response.
func (r *Recorder) ObserveAPICall(endpoint, code string) {
	if r == nil {
		return
	}
	r.APICalls.WithLabelValues(endpoint, code).Inc()
}

// ObserveHistory records one history store operation.
func (r *Recorder) ObserveHistory(backend, operation string, err error) {
	if r == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	r.HistoryOperations.WithLabelValues(backend, operation, status).Inc()
}

// Gatherer exposes the registry for tests and custom exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
