// Package metrics holds the Prometheus collectors for the service. All
// instrumentation is optional and wired only when [metrics] is enabled in
// the config.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector the service exports.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	DBPoolOpenConnections prometheus.Gauge
	DBPoolInUse           prometheus.Gauge
	DBPoolIdle            prometheus.Gauge

	SweepRunsTotal          *prometheus.CounterVec
	NotificationsSentTotal  *prometheus.CounterVec
	EventsDispatchedTotal   *prometheus.CounterVec
}

// New registers and returns the collectors, labelled with the service name.
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, path and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration by method and path.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total database statements by kind and outcome.",
			ConstLabels: constLabels,
		}, []string{"kind", "outcome"}),
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database statement duration by kind.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),
		DBPoolOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Open connections in the database pool.",
			ConstLabels: constLabels,
		}),
		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}),
		DBPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Idle connections in the database pool.",
			ConstLabels: constLabels,
		}),
		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_sweep_runs_total",
			Help:        "Notification sweep executions by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		NotificationsSentTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Notifications attempted by type and outcome.",
			ConstLabels: constLabels,
		}, []string{"type", "outcome"}),
		EventsDispatchedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "events_dispatched_total",
			Help:        "Domain events delivered to side-channel sinks by sink and outcome.",
			ConstLabels: constLabels,
		}, []string{"sink", "outcome"}),
	}
}
