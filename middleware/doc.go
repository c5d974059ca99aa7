// Package middleware provides handler middlewares that decorate the response
// value returned by the next handler.
//
// Every middleware is generic over the handler context, so it composes with
// handler.Chain for both the default context and custom ones:
//
//	h := handler.Chain(endpoint,
//		middleware.RequestID[handler.Context](),
//		middleware.Logging[handler.Context](),
//		middleware.CORS[handler.Context](),
//		middleware.SecurityHeaders[handler.Context](),
//	)
//	http.Handle("/", server.Handler(h))
//
// Middlewares never write to the connection. They add headers with
// response.WithHeaders, which keeps the response variant, or answer on their
// own (CORS preflight). Each middleware has a With...Config variant whose
// Skip function bypasses it for selected requests.
//
// # Request ID
//
// RequestID stores a UUID v4 in the handler context (read it back with
// GetRequestID) and returns it in the X-Request-ID header. With UseExisting
// the incoming header value is reused.
//
// # Logging
//
// Logging records a start and a completion entry per request with the status
// code, response kind and latency. Server errors and zero responses log at
// error level, client errors and slow requests at warn level.
//
// # CORS
//
// CORS answers preflight requests with 204 or 403 and adds the allow headers
// to other responses. AllowOriginWildcard and AllowOriginSubdomain build
// AllowOriginFunc values.
//
// # Security headers
//
// SecurityHeaders adds the BalancedSecurity preset; StrictSecurity,
// RelaxedSecurity and DevelopmentSecurity are the other presets. Headers the
// handler already set are not overridden.
package middleware
