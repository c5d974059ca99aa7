package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/httpout/core/handler"
	"github.com/dmitrymomot/httpout/core/response"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(ctx handler.Context) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	// If empty, defaults to common headers including Authorization and Content-Type
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed.
	// Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int

	// AllowOriginFunc provides custom origin validation logic and takes
	// precedence over AllowOrigins. It returns the origin value to send back
	// and whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS returns a CORS middleware that allows all origins.
//
//	h := handler.Chain(endpoint, middleware.CORS[handler.Context]())
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig returns a CORS middleware with custom configuration.
// Preflight requests are answered without calling the next handler: 204 with
// the allow headers, or 403 when the origin or method is not allowed. Other
// requests get the allow headers added to the handler's response.
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}

	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[origin] = true
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) response.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			origin := req.Header.Get("Origin")

			var allowedOrigin string
			allowed := false

			// Priority: custom function, then wildcard or empty list, then explicit list.
			if cfg.AllowOriginFunc != nil {
				allowedOrigin, allowed = cfg.AllowOriginFunc(origin)
			} else if len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"] {
				allowedOrigin = "*"
				allowed = true
			} else if allowOriginsMap[origin] {
				allowedOrigin = origin
				allowed = true
			}

			if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
				if !allowed || !slices.Contains(cfg.AllowMethods, req.Header.Get("Access-Control-Request-Method")) {
					return response.Forbidden()
				}

				headers := map[string]string{
					"Access-Control-Allow-Origin":  allowedOrigin,
					"Access-Control-Allow-Methods": allowMethods,
					"Vary":                         "Origin, Access-Control-Request-Method, Access-Control-Request-Headers",
				}
				if req.Header.Get("Access-Control-Request-Headers") != "" {
					headers["Access-Control-Allow-Headers"] = allowHeaders
				}
				if cfg.AllowCredentials && allowedOrigin != "*" {
					headers["Access-Control-Allow-Credentials"] = "true"
				}
				if cfg.MaxAge > 0 {
					headers["Access-Control-Max-Age"] = strconv.Itoa(cfg.MaxAge)
				}
				return response.Raw(http.StatusNoContent, http.StatusText(http.StatusNoContent), headers, nil)
			}

			resp := next(ctx)
			if !allowed || resp.IsZero() {
				return resp
			}

			headers := map[string]string{
				"Access-Control-Allow-Origin": allowedOrigin,
				"Vary":                        "Origin",
			}
			if cfg.AllowCredentials && allowedOrigin != "*" {
				headers["Access-Control-Allow-Credentials"] = "true"
			}
			if exposeHeaders != "" {
				headers["Access-Control-Expose-Headers"] = exposeHeaders
			}
			return response.WithHeaders(resp, headers)
		}
	}
}

// AllowOriginWildcard returns an AllowOriginFunc that allows any non-empty
// origin and echoes it back, so credentials can still be allowed.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}

// AllowOriginSubdomain returns an AllowOriginFunc that allows domain and all
// its subdomains, with or without a port. domain has no scheme ("example.com").
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.TrimPrefix(domain, "*.")
	domain = strings.TrimPrefix(domain, ".")
	domain = strings.ToLower(domain)
	domainWithDot := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, domainWithDot) {
			return origin, true
		}
		return "", false
	}
}
