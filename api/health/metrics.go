package health

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "api",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	VerificationTokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "verification",
			Name:      "tokens_issued_total",
			Help:      "Total number of verification tokens issued",
		},
	)

	VerificationTokensConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "verification",
			Name:      "tokens_confirmed_total",
			Help:      "Total number of verification tokens successfully confirmed",
		},
	)

	FeedbackSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "api",
			Subsystem: "feedback",
			Name:      "submitted_total",
			Help:      "Total number of feedback reports accepted",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		HttpRequests,
		HttpDuration,
		VerificationTokensIssued,
		VerificationTokensConfirmed,
		FeedbackSubmitted,
	)
}
