package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	latencySeconds        *prometheus.HistogramVec
	errorsTotal           *prometheus.CounterVec
	attemptsStartedTotal  *prometheus.CounterVec
	attemptsFinishedTotal *prometheus.CounterVec
	gradingSeconds        prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_requests_total",
			Help: "Total number of assessment API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assessment_latency_seconds",
			Help:    "Latency distribution for assessment API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_errors_total",
			Help: "Total number of error responses returned by assessment endpoints.",
		}, []string{"method", "route", "status"})

		attemptsStartedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_attempts_started_total",
			Help: "Total number of quiz attempts started.",
		}, []string{"quiz_type"})

		attemptsFinishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessment_attempts_finished_total",
			Help: "Total number of quiz attempts that left the in-progress state.",
		}, []string{"outcome"})

		gradingSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "assessment_grading_seconds",
			Help:    "Time spent evaluating answers during attempt submission.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			attemptsStartedTotal,
			attemptsFinishedTotal,
			gradingSeconds,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// AttemptsStarted exposes the counter for started attempts.
func AttemptsStarted() *prometheus.CounterVec {
	RegisterMetrics()
	return attemptsStartedTotal
}

// AttemptsFinished exposes the counter for finished attempts, labelled by
// outcome (submitted, graded, expired).
func AttemptsFinished() *prometheus.CounterVec {
	RegisterMetrics()
	return attemptsFinishedTotal
}

// GradingLatency exposes the histogram for answer evaluation time.
func GradingLatency() prometheus.Histogram {
	RegisterMetrics()
	return gradingSeconds
}
