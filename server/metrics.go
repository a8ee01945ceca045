package server

import (
	"net/http"

	"github.com/jrsteele09/go-oauth-tokens/oauth2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SweepResultOK    = "ok"
	SweepResultError = "error"
)

// Metrics holds the service counters on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	tokensIssued  *prometheus.CounterVec
	requestErrors *prometheus.CounterVec
	sweeps        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_tokens_issued_total",
			Help: "Token responses issued, by grant type.",
		}, []string{"grant_type"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_request_errors_total",
			Help: "Failed engine operations, by operation and error kind.",
		}, []string{"operation", "kind"}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_expired_sweeps_total",
			Help: "Expired token sweeps, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.tokensIssued,
		m.requestErrors,
		m.sweeps,
	)
	return m
}

func (m *Metrics) TokenIssued(grant oauth2.GrantType) {
	m.tokensIssued.WithLabelValues(string(grant)).Inc()
}

func (m *Metrics) RequestError(operation, kind string) {
	m.requestErrors.WithLabelValues(operation, kind).Inc()
}

// ObserveSweep counts one sweep attempt that ended with err.
func (m *Metrics) ObserveSweep(err error) {
	result := SweepResultOK
	if err != nil {
		result = SweepResultError
	}
	m.sweeps.WithLabelValues(result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
