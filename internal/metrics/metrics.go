package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SubmissionsTotal prometheus.Counter
	ApprovalsTotal   prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "natdb_http_requests_total",
			Help: "Total number of HTTP requests handled, by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "natdb_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		SubmissionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "natdb_officer_submissions_total",
			Help: "Total number of officer records accepted for review",
		}),
		ApprovalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "natdb_officer_approvals_total",
			Help: "Total number of officer records approved",
		}),
	}
}

// IncrementSubmissions increments the accepted submissions counter by 1
func (m *Metrics) IncrementSubmissions() {
	if m != nil {
		m.SubmissionsTotal.Inc()
	}
}

// IncrementApprovals increments the approvals counter by 1
func (m *Metrics) IncrementApprovals() {
	if m != nil {
		m.ApprovalsTotal.Inc()
	}
}
