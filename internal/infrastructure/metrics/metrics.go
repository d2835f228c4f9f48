// Package metrics exposes Prometheus collectors for HTTP traffic and the
// subscription lifecycle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nutriplan/nutriplan/internal/application/common"
)

const namespace = "nutriplan"

var _ common.Metrics = (*Metrics)(nil)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	subscriptionTransitions *prometheus.CounterVec
	quotaRejections         *prometheus.CounterVec
	integrityAnomalies      *prometheus.CounterVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		subscriptionTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "subscription_transitions_total",
				Help:      "Subscription status changes; from is empty for new requests",
			},
			[]string{"from", "to"},
		),
		quotaRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quota_rejections_total",
				Help:      "Nutrition plan creations refused by the quota guard",
			},
			[]string{"reason"},
		),
		integrityAnomalies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "integrity_anomalies_total",
				Help:      "Data integrity problems observed at read time",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) SubscriptionTransitioned(from, to string) {
	m.subscriptionTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) QuotaRejected(reason string) {
	m.quotaRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) IntegrityAnomaly(kind string) {
	m.integrityAnomalies.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
