package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Recommendation pipeline metrics
	PipelineDuration    prometheus.HistogramVec
	CandidatesGenerated prometheus.CounterVec
	PipelineErrors      prometheus.CounterVec
	EmptyHistoryTotal   prometheus.Counter
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			PipelineDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recommendation_pipeline_duration_seconds",
					Help:    "Time spent computing one recommendation response",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
				},
				[]string{"stage"},
			),
			CandidatesGenerated: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendation_candidates_total",
					Help: "Candidates produced per pipeline source before fusion",
				},
				[]string{"source"},
			),
			PipelineErrors: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recommendation_pipeline_errors_total",
					Help: "Pipeline stage failures propagated to the caller",
				},
				[]string{"stage"},
			),
			EmptyHistoryTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "recommendation_empty_history_total",
					Help: "Requests scored for retailers with no purchase history",
				},
			),
		}
	})

	return instance
}

// Get returns the metrics instance, initializing on first use
func Get() *Metrics {
	return Initialize()
}
