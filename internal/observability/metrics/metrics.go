package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourvisit_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tourvisit_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourvisit_logins_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	recordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tourvisit_records_created_total",
		Help: "Count of created records by resource type",
	}, []string{"resource"})

	cascadeDeletedVisits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tourvisit_cascade_deleted_visits_total",
		Help: "Count of visitor/site deletes that cascaded to visits",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveLogin increments the login counter for the given result.
func ObserveLogin(result string) {
	loginsTotal.WithLabelValues(result).Inc()
}

// ObserveCreate increments the created-records counter for a resource type.
func ObserveCreate(resource string) {
	recordsCreated.WithLabelValues(resource).Inc()
}

// ObserveCascadeDelete records a delete that cascaded to dependent visits.
func ObserveCascadeDelete() {
	cascadeDeletedVisits.Inc()
}
