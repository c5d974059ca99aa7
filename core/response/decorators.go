package response

import (
	"fmt"
	"net/http"
	"net/textproto"
	"time"
)

// WithHeaders returns a copy of resp with additional headers.
// They override both the defaults and the variant headers. The variant,
// status and content are unchanged.
func WithHeaders(resp Response, headers map[string]string) Response {
	if resp.IsZero() || len(headers) == 0 {
		return resp
	}
	extra := make(map[string]string, len(resp.extra)+len(headers))
	for k, v := range resp.extra {
		extra[k] = v
	}
	for k, v := range headers {
		extra[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	resp.extra = extra
	return resp
}

// WithCookie returns a copy of resp that sets cookie.
// Header values are single-valued, so a later cookie replaces an earlier one.
func WithCookie(resp Response, cookie *http.Cookie) Response {
	if cookie == nil {
		return resp
	}
	v := cookie.String()
	if v == "" {
		return resp
	}
	return WithHeaders(resp, map[string]string{"Set-Cookie": v})
}

// WithCache returns a copy of resp with cache control headers.
// If maxAge > 0 the response may be cached for that long, otherwise caching is disabled.
func WithCache(resp Response, maxAge time.Duration) Response {
	if maxAge > 0 {
		return WithHeaders(resp, map[string]string{
			"Cache-Control": fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())),
			"Expires":       time.Now().Add(maxAge).UTC().Format(http.TimeFormat),
		})
	}
	return WithHeaders(resp, map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	})
}
