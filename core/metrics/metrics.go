// Package metrics defines Prometheus collectors for response dispatching.
//
// Metric naming follows Prometheus conventions:
//   - httpout_ prefix for all metrics
//   - _total suffix for counters
//
// A nil *Metrics is valid and records nothing, so callers never need nil checks.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/httpout/core/response"
)

// Metrics holds the collectors of one dispatcher.
type Metrics struct {
	ResponsesTotal      *prometheus.CounterVec
	BodyBytesTotal      *prometheus.CounterVec
	RenderFailuresTotal *prometheus.CounterVec
	WriteErrorsTotal    prometheus.Counter
	SwitchesTotal       prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResponsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpout_responses_total",
				Help: "Responses written, by status code and response variant.",
			},
			[]string{"code", "kind"},
		),
		BodyBytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpout_body_bytes_total",
				Help: "Body bytes written, by response variant.",
			},
			[]string{"kind"},
		),
		RenderFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "httpout_render_failures_total",
				Help: "Bodies replaced by a serialization diagnostic, by body kind.",
			},
			[]string{"body_kind"},
		),
		WriteErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "httpout_body_write_errors_total",
				Help: "Body write procedures that failed with an I/O error.",
			},
		),
		SwitchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "httpout_protocol_switches_total",
				Help: "Connections handed to a protocol switch session.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.ResponsesTotal,
			m.BodyBytesTotal,
			m.RenderFailuresTotal,
			m.WriteErrorsTotal,
			m.SwitchesTotal,
		)
	}
	return m
}

// ObserveResponse records a written response.
func (m *Metrics) ObserveResponse(kind response.Kind, code int, written int64) {
	if m == nil {
		return
	}
	m.ResponsesTotal.WithLabelValues(strconv.Itoa(code), kind.String()).Inc()
	if written > 0 {
		m.BodyBytesTotal.WithLabelValues(kind.String()).Add(float64(written))
	}
}

// ObserveRenderFailure records a body degraded to a diagnostic.
// Its signature matches response.WithFailureHook.
func (m *Metrics) ObserveRenderFailure(kind response.BodyKind, _ error) {
	if m == nil {
		return
	}
	m.RenderFailuresTotal.WithLabelValues(kind.String()).Inc()
}

// ObserveWriteError records a failed body write.
func (m *Metrics) ObserveWriteError() {
	if m == nil {
		return
	}
	m.WriteErrorsTotal.Inc()
}

// ObserveSwitch records a protocol switch.
func (m *Metrics) ObserveSwitch() {
	if m == nil {
		return
	}
	m.SwitchesTotal.Inc()
}
