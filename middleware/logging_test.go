package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpout/core/handler"
	"github.com/dmitrymomot/httpout/core/response"
	"github.com/dmitrymomot/httpout/middleware"
)

// testLogHandler captures log entries for testing
type testLogHandler struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(map[string]any)
	entry["level"] = r.Level.String()
	entry["msg"] = r.Message

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" {
			entry[a.Key] = a.Value.Any()
		}
		return true
	})

	h.mu.Lock()
	h.entries = append(h.entries, entry)
	h.mu.Unlock()
	return nil
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *testLogHandler) last() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[len(h.entries)-1]
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	fn := func(ctx handler.Context) response.Response {
		return response.OK(response.JSON(map[string]string{"status": "ok"}))
	}

	w := serve(t, fn, httptest.NewRequest(http.MethodGet, "/test?foo=bar", nil),
		middleware.LoggingWithLogger[handler.Context](slog.New(logHandler)))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, logHandler.entries, 2)

	req := logHandler.entries[0]
	assert.Equal(t, "HTTP request started", req["msg"])
	assert.Equal(t, "request", req["event"])
	assert.Equal(t, "GET", req["method"])
	assert.Equal(t, "/test", req["path"])
	assert.Equal(t, "foo=bar", req["query"])
	assert.Equal(t, "http", req["component"])

	resp := logHandler.entries[1]
	assert.Equal(t, "HTTP request completed", resp["msg"])
	assert.Equal(t, "INFO", resp["level"])
	assert.Equal(t, int64(200), resp["status_code"])
	assert.Equal(t, "ok", resp["kind"])
	assert.Contains(t, resp, "latency")
}

func TestLoggingWithRequestID(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	fn := func(ctx handler.Context) response.Response {
		return response.Accepted()
	}

	w := serve(t, fn, httptest.NewRequest(http.MethodPost, "/jobs", nil),
		middleware.RequestIDWithConfig[handler.Context](middleware.RequestIDConfig{
			Generator: func() string { return "req-1" },
		}),
		middleware.LoggingWithLogger[handler.Context](slog.New(logHandler)),
	)

	assert.Equal(t, http.StatusAccepted, w.Code)
	for _, entry := range logHandler.entries {
		assert.Equal(t, "req-1", entry["request_id"])
	}
}

func TestLoggingSkipFunction(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig[handler.Context](middleware.LoggingConfig{
		Logger: slog.New(logHandler),
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/health"
		},
	})
	fn := func(ctx handler.Context) response.Response {
		return response.OK(response.Text("ok"))
	}

	serve(t, fn, httptest.NewRequest(http.MethodGet, "/health", nil), mw)
	assert.Empty(t, logHandler.entries)

	serve(t, fn, httptest.NewRequest(http.MethodGet, "/api", nil), mw)
	assert.Len(t, logHandler.entries, 2)
}

func TestLoggingWithHeaders(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig[handler.Context](middleware.LoggingConfig{
		Logger:     slog.New(logHandler),
		LogHeaders: true,
	})
	fn := func(ctx handler.Context) response.Response {
		return response.WithCookie(response.OK(response.Text("ok")), &http.Cookie{Name: "session", Value: "secret"})
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Accept", "text/plain")
	serve(t, fn, req, mw)

	require.Len(t, logHandler.entries, 2)
	reqHeaders, ok := logHandler.entries[0]["request_headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", reqHeaders["Authorization"])
	assert.Equal(t, "text/plain", reqHeaders["Accept"])

	respHeaders, ok := logHandler.entries[1]["response_headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", respHeaders["Set-Cookie"])
	assert.Equal(t, response.ServerName, respHeaders["Server"])
}

func TestLoggingErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		resp  response.Response
		level string
	}{
		{"client error", response.BadRequest(nil), "WARN"},
		{"not found", response.NotFound(), "WARN"},
		{"server error", response.InternalServerError(), "ERROR"},
		{"raw server error", response.Raw(503, "Service Unavailable", nil, nil), "ERROR"},
		{"success", response.Created(), "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logHandler := &testLogHandler{}
			fn := func(ctx handler.Context) response.Response { return tt.resp }
			serve(t, fn, httptest.NewRequest(http.MethodGet, "/", nil),
				middleware.LoggingWithLogger[handler.Context](slog.New(logHandler)))

			entry := logHandler.last()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, int64(tt.resp.StatusCode()), entry["status_code"])
		})
	}
}

func TestLoggingSlowRequest(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig[handler.Context](middleware.LoggingConfig{
		Logger:               slog.New(logHandler),
		SlowRequestThreshold: time.Millisecond,
	})
	fn := func(ctx handler.Context) response.Response {
		time.Sleep(5 * time.Millisecond)
		return response.OK(response.Text("slow"))
	}

	serve(t, fn, httptest.NewRequest(http.MethodGet, "/slow", nil), mw)

	entry := logHandler.last()
	require.NotNil(t, entry)
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, true, entry["slow_request"])
}

func TestLoggingResponseOnly(t *testing.T) {
	t.Parallel()

	logHandler := &testLogHandler{}
	mw := middleware.LoggingWithConfig[handler.Context](middleware.LoggingConfig{
		Logger:      slog.New(logHandler),
		LogResponse: true,
		Component:   "api",
	})
	fn := func(ctx handler.Context) response.Response {
		return response.OK(response.Text("ok"))
	}

	serve(t, fn, httptest.NewRequest(http.MethodGet, "/", nil), mw)

	require.Len(t, logHandler.entries, 1)
	assert.Equal(t, "api", logHandler.entries[0]["component"])
}
