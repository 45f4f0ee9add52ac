// Package metrics registers and records the Prometheus metrics exposed by
// the REST server.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "solarsim_"

// Result labels shared by the counters.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	simulationTotal   *prometheus.CounterVec
	simulationLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	archiveWrites *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
)

// Init registers the solarsim metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		simulationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulations_total",
				Help: "Total simulation runs by result",
			},
			[]string{"result"},
		)
		simulationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "simulation_latency_seconds",
				Help:    "Simulation run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		archiveWrites = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "archive_writes_total",
				Help: "Total run archive writes by result",
			},
			[]string{"result"},
		)

		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		)

		prometheus.MustRegister(
			simulationTotal,
			simulationLatency,
			exportTotal,
			exportLatency,
			archiveWrites,
			httpRequests,
			httpLatency,
		)
	})
}

// ObserveSimulation records one simulation run's duration and result.
func ObserveSimulation(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if simulationTotal != nil {
		simulationTotal.WithLabelValues(result).Inc()
	}
	if simulationLatency != nil {
		simulationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport records one report export's duration, format, and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncArchiveWrite counts a run archive write.
func IncArchiveWrite(result string) {
	if result == "" {
		result = ResultSuccess
	}
	if archiveWrites != nil {
		archiveWrites.WithLabelValues(result).Inc()
	}
}

// ObserveHTTPRequest records one handled request. Route is the mux route
// template, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(route string, status int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(route).Observe(duration.Seconds())
	}
}
