package middleware_test

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/httpout/core/handler"
	"github.com/dmitrymomot/httpout/core/response"
	"github.com/dmitrymomot/httpout/middleware"
)

func TestSecurityHeadersPresets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mw   handler.Middleware[handler.Context]
		cfg  middleware.SecurityHeadersConfig
	}{
		{"balanced", middleware.SecurityHeaders[handler.Context](), middleware.BalancedSecurity},
		{"strict", middleware.SecurityHeadersStrict[handler.Context](), middleware.StrictSecurity},
		{"relaxed", middleware.SecurityHeadersRelaxed[handler.Context](), middleware.RelaxedSecurity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(t, okHandler, httptest.NewRequest(http.MethodGet, "/", nil), tt.mw)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.cfg.ContentTypeOptions, w.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, tt.cfg.FrameOptions, w.Header().Get("X-Frame-Options"))
			assert.Equal(t, tt.cfg.XSSProtection, w.Header().Get("X-XSS-Protection"))
			assert.Equal(t, tt.cfg.StrictTransportSecurity, w.Header().Get("Strict-Transport-Security"))
			assert.Equal(t, tt.cfg.ContentSecurityPolicy, w.Header().Get("Content-Security-Policy"))
			assert.Equal(t, tt.cfg.ReferrerPolicy, w.Header().Get("Referrer-Policy"))
			assert.Equal(t, tt.cfg.CrossOriginResourcePolicy, w.Header().Get("Cross-Origin-Resource-Policy"))
			_, emptySent := w.Header()["X-Frame-Options"]
			assert.Equal(t, tt.cfg.FrameOptions != "", emptySent)
		})
	}
}

func TestSecurityHeadersCustomConfiguration(t *testing.T) {
	t.Parallel()

	cfg := middleware.SecurityHeadersConfig{
		ContentTypeOptions:      "nosniff",
		StrictTransportSecurity: "max-age=1",
		IsDevelopment:           true,
		CustomHeaders: map[string]string{
			"X-Custom-Header": "custom-value",
		},
	}
	w := serve(t, okHandler, httptest.NewRequest(http.MethodGet, "/", nil), middleware.SecurityHeadersWithConfig[handler.Context](cfg))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "custom-value", w.Header().Get("X-Custom-Header"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "development mode drops HSTS")
}

func TestSecurityHeadersHandlerWins(t *testing.T) {
	t.Parallel()

	fn := func(handler.Context) response.Response {
		return response.WithHeaders(response.OK(response.HTML("<p>embed</p>")), map[string]string{
			"X-Frame-Options": "ALLOWALL",
		})
	}
	w := serve(t, fn, httptest.NewRequest(http.MethodGet, "/", nil), middleware.SecurityHeadersStrict[handler.Context]())

	assert.Equal(t, "ALLOWALL", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecurityHeadersSkipsSwitch(t *testing.T) {
	t.Parallel()

	mw := middleware.SecurityHeaders[handler.Context]()
	h := handler.Chain(func(handler.Context) response.Response {
		return response.SwitchProtocols(map[string]string{"Upgrade": "x"}, func(c net.Conn) { _ = c.Close() })
	}, mw)

	resp := h(handler.NewContext(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, response.KindSwitchProtocols, resp.Kind())
	assert.NotContains(t, resp.Headers(), "X-Content-Type-Options")
}

func TestSecurityHeadersSkip(t *testing.T) {
	t.Parallel()

	cfg := middleware.BalancedSecurity
	cfg.Skip = func(ctx handler.Context) bool { return ctx.Request().URL.Path == "/health" }
	w := serve(t, okHandler, httptest.NewRequest(http.MethodGet, "/health", nil), middleware.SecurityHeadersWithConfig[handler.Context](cfg))

	assert.Empty(t, w.Header().Get("X-Content-Type-Options"))
}
