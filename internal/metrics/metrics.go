package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all Prometheus metrics for the API
type Registry struct {
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	RegistrationsTotal prometheus.Counter
	LoginsTotal        prometheus.CounterVec
	CodeEmailsTotal    prometheus.CounterVec
}

// NewRegistry initializes and returns a Registry with all metrics
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kin_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kin_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kin_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		RegistrationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kin_registrations_total",
				Help: "Total user registrations",
			},
		),
		LoginsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kin_logins_total",
				Help: "Total login attempts by outcome",
			},
			[]string{"outcome"},
		),
		CodeEmailsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kin_code_emails_total",
				Help: "Total one-time code emails by purpose",
			},
			[]string{"purpose"},
		),
	}
}
