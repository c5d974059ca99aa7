package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpout/core/metrics"
	"github.com/dmitrymomot/httpout/core/response"
)

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveResponse(response.KindOK, 200, 10)
		m.ObserveRenderFailure(response.BodyJSON, errors.New("boom"))
		m.ObserveWriteError()
		m.ObserveSwitch()
	})
}

func TestNewRegisters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveResponse(response.KindOK, 200, 1)
	m.ObserveRenderFailure(response.BodyJSON, nil)
	m.ObserveWriteError()
	m.ObserveSwitch()

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"httpout_responses_total",
		"httpout_body_bytes_total",
		"httpout_render_failures_total",
		"httpout_body_write_errors_total",
		"httpout_protocol_switches_total",
	}, names)

	assert.Panics(t, func() { metrics.New(reg) }, "registering twice must fail")
}

func TestObserve(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil)

	m.ObserveResponse(response.KindOK, 200, 12)
	m.ObserveResponse(response.KindOK, 200, 3)
	m.ObserveResponse(response.KindNotFound, 404, 0)
	m.ObserveResponse(response.KindRaw, 418, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResponsesTotal.WithLabelValues("200", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResponsesTotal.WithLabelValues("404", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResponsesTotal.WithLabelValues("418", "raw")))
	assert.Equal(t, 15.0, testutil.ToFloat64(m.BodyBytesTotal.WithLabelValues("ok")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.BodyBytesTotal.WithLabelValues("raw")))
	// Empty bodies do not create a series.
	assert.Equal(t, 3, testutil.CollectAndCount(m.ResponsesTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.BodyBytesTotal))

	m.ObserveRenderFailure(response.BodyCustom, errors.New("boom"))
	m.ObserveRenderFailure(response.BodyCustom, errors.New("boom"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RenderFailuresTotal.WithLabelValues("custom")))

	m.ObserveWriteError()
	m.ObserveSwitch()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WriteErrorsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SwitchesTotal))
}

func TestRendererFailureHook(t *testing.T) {
	t.Parallel()

	m := metrics.New(nil)
	r := response.NewRenderer(response.WithFailureHook(m.ObserveRenderFailure))

	content := r.Render(response.JSON(func() {}))
	assert.Positive(t, content.Length)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RenderFailuresTotal.WithLabelValues("json")))
}
