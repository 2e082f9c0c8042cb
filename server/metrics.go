package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"crpg-api/game"
)

// Derivation outcomes, used as the "outcome" label.
const (
	OutcomeOK               = "ok"
	OutcomeMissingAttribute = "missing_attribute"
	OutcomeInvalidAttribute = "invalid_attribute"
	OutcomeError            = "error"
)

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	derivations *prometheus.CounterVec
	handler     http.Handler
}

// NewMetrics registers the server collectors. characters is sampled on
// every scrape for the roster size gauge.
func NewMetrics(characters func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crpg_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crpg_derivations_total",
			Help: "Base attribute parses by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.derivations,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "crpg_characters",
			Help: "Characters in the roster.",
		}, func() float64 { return float64(characters()) }),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

func (m *Metrics) ObserveRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) ObserveDerivation(outcome string) {
	m.derivations.WithLabelValues(outcome).Inc()
}

// Gather returns the current metric families sorted by name.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// ServeHTTP writes the registry in the Prometheus exposition format.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func derivationOutcome(err error) string {
	var missing *game.MissingAttributeError
	var invalid *game.InvalidAttributeError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &missing):
		return OutcomeMissingAttribute
	case errors.As(err, &invalid):
		return OutcomeInvalidAttribute
	}
	return OutcomeError
}
