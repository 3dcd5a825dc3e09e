package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the chat backend.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ModelCallsTotal     *prometheus.CounterVec
	MessagesStoredTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatdesk_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ModelCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatdesk_model_calls_total",
				Help: "Total number of model calls by outcome",
			},
			[]string{"outcome"},
		),
		MessagesStoredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatdesk_messages_stored_total",
				Help: "Total number of messages persisted by sender",
			},
			[]string{"sender"},
		),
	}
}

// RecordHTTPRequest records one finished HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordModelCall records the outcome of one model call ("ok" or a failure category).
func (m *Metrics) RecordModelCall(outcome string) {
	m.ModelCallsTotal.WithLabelValues(outcome).Inc()
}

// RecordMessageStored records one persisted message.
func (m *Metrics) RecordMessageStored(sender string) {
	m.MessagesStoredTotal.WithLabelValues(sender).Inc()
}
