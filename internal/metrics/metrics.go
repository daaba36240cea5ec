// Package metrics defines the Prometheus collectors of the service and the
// side server that exposes them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "auth"

// Outcome labels of AuthOutcomesTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeForbidden    = "forbidden"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Metrics holds every collector the service updates.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec

	// AuthOutcomesTotal counts register/login/me/gate results by outcome.
	AuthOutcomesTotal *prometheus.CounterVec

	BuildInfo *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			// bcrypt dominates register and login latency
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path", "status"}),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status"}),

		AuthOutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Authentication operations by outcome.",
		}, []string{"operation", "outcome"}),

		BuildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information of the running binary. Always 1.",
		}, []string{"version", "commit"}),
	}

	reg.MustRegister(
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
		m.AuthOutcomesTotal,
		m.BuildInfo,
	)

	return m
}

// Nop returns collectors registered with a throwaway registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveOutcome increments the outcome counter of operation.
func (m *Metrics) ObserveOutcome(operation, outcome string) {
	m.AuthOutcomesTotal.WithLabelValues(operation, outcome).Inc()
}

// SetBuildInfo publishes the version of the running binary.
func (m *Metrics) SetBuildInfo(version, commit string) {
	m.BuildInfo.WithLabelValues(version, commit).Set(1)
}

// NewServer returns the side server publishing /metrics from gatherer and the
// given health endpoints.
func NewServer(addr string, gatherer prometheus.Gatherer, liveness, readiness http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", liveness)
	mux.Handle("/readyz", readiness)
	return &http.Server{Addr: addr, Handler: mux}
}
