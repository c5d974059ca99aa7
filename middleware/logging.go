package middleware

import (
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/httpout/core/handler"
	"github.com/dmitrymomot/httpout/core/logger"
	"github.com/dmitrymomot/httpout/core/response"
)

// LoggingConfig configures the request/response logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for request logging (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogRequest enables logging of request details (default: true)
	LogRequest bool

	// LogResponse enables logging of response details (default: true)
	LogResponse bool

	// LogHeaders enables logging of request/response headers (default: false for security)
	LogHeaders bool

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request/response logging middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig creates a request/response logging middleware with custom configuration.
// The response is logged when the handler returns it: status, variant, declared
// content length and handler latency. Bytes on the wire are logged by the dispatcher.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if !cfg.LogRequest && !cfg.LogResponse {
		cfg.LogRequest = true
		cfg.LogResponse = true
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) response.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()

			requestID, _ := GetRequestID(ctx)

			if cfg.LogRequest {
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("request"),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.Query(req.URL.RawQuery),
					logger.RemoteAddr(req.RemoteAddr),
					logger.RequestID(requestID),
				}
				if cfg.LogHeaders {
					headers := make(map[string]string, len(req.Header))
					for key := range req.Header {
						headers[key] = req.Header.Get(key)
					}
					attrs = append(attrs, slog.Any("request_headers", redact(headers, cfg.SensitiveHeaders)))
				}
				cfg.Logger.LogAttrs(ctx, cfg.LogLevel, "HTTP request started", attrs...)
			}

			resp := next(ctx)

			if !cfg.LogResponse {
				return resp
			}

			// The request ID middleware may run inside this one.
			if requestID == "" {
				requestID, _ = GetRequestID(ctx)
			}

			duration := time.Since(start)
			code := resp.StatusCode()
			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("response"),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.StatusCode(code),
				logger.Kind(resp.Kind().String()),
				logger.Latency(duration),
				logger.RequestID(requestID),
			}
			if cfg.LogHeaders && !resp.IsZero() {
				attrs = append(attrs, slog.Any("response_headers", redact(resp.Headers(), cfg.SensitiveHeaders)))
			}

			level := cfg.LogLevel
			switch {
			case code >= 500 || resp.IsZero():
				level = slog.LevelError
			case code >= 400:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(ctx, level, "HTTP request completed", attrs...)
			return resp
		}
	}
}

func redact(headers map[string]string, sensitive []string) map[string]string {
	for key := range headers {
		if slices.Contains(sensitive, key) {
			headers[key] = "[REDACTED]"
		}
	}
	return headers
}
