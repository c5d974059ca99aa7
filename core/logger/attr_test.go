package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpout/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

// ============================================================================
// HTTP Exchange Tests
// ============================================================================

func TestExchangeAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want any
	}{
		{"method", logger.Method("GET"), "method", "GET"},
		{"path", logger.Path("/users"), "path", "/users"},
		{"query", logger.Query("a=1"), "query", "a=1"},
		{"status_code", logger.StatusCode(404), "status_code", int64(404)},
		{"kind", logger.Kind("not_found"), "kind", "not_found"},
		{"body_kind", logger.BodyKind("json"), "body_kind", "json"},
		{"content_length", logger.ContentLength(-1), "content_length", int64(-1)},
		{"bytes_out", logger.BytesOut(1024), "bytes_out", int64(1024)},
		{"request_id", logger.RequestID("abc"), "request_id", "abc"},
		{"remote_addr", logger.RemoteAddr("10.0.0.1:5000"), "remote_addr", "10.0.0.1:5000"},
		{"latency", logger.Latency(time.Second), "latency", time.Second},
		{"component", logger.Component("http"), "component", "http"},
		{"event", logger.Event("request"), "event", "request"},
		{"version", logger.Version("1.0.0"), "version", "1.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.Any())
		})
	}
}

func TestEmptyOptionalAttrs(t *testing.T) {
	t.Parallel()

	for _, attr := range []slog.Attr{
		logger.RequestID(""),
		logger.RemoteAddr(""),
		logger.Query(""),
	} {
		assert.True(t, attr.Equal(slog.Attr{}))
	}
}
