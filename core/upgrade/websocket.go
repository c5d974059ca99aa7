package upgrade

import (
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/httpout/core/response"
)

// keyGUID is the magic value from RFC 6455 section 1.3.
const keyGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

type wsConfig struct {
	subprotocols []string
	checkOrigin  func(r *http.Request) bool
	headers      map[string]string
}

// Option configures a WebSocket handshake.
type Option func(*wsConfig)

// WithSubprotocols sets the server's supported subprotocols in preference order.
func WithSubprotocols(protocols ...string) Option {
	return func(c *wsConfig) {
		c.subprotocols = protocols
	}
}

// WithOriginCheck replaces the default same-origin check.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(c *wsConfig) {
		c.checkOrigin = fn
	}
}

// WithAllowAnyOrigin disables the origin check.
func WithAllowAnyOrigin() Option {
	return func(c *wsConfig) {
		c.checkOrigin = func(*http.Request) bool { return true }
	}
}

// WithHeaders adds headers to the 101 response.
func WithHeaders(headers map[string]string) Option {
	return func(c *wsConfig) {
		c.headers = headers
	}
}

// WebSocket validates the opening handshake in r and returns a protocol switch
// that hands the connection to session. The session speaks WebSocket frames on
// the raw connection. An invalid handshake yields BadRequest with a plain-text
// reason; a rejected origin yields Forbidden.
func WebSocket(r *http.Request, session response.SessionHandler, opts ...Option) response.Response {
	cfg := &wsConfig{checkOrigin: sameOrigin}
	for _, opt := range opts {
		opt(cfg)
	}

	if !websocket.IsWebSocketUpgrade(r) {
		return response.BadRequest(response.Text(ErrNotWebSocket.Error()))
	}
	if r.Method != http.MethodGet {
		return response.BadRequest(response.Text(ErrMethodNotGet.Error()))
	}
	if !headerContainsToken(r.Header, "Sec-Websocket-Version", "13") {
		return response.WithHeaders(
			response.BadRequest(response.Text(ErrUnsupportedVersion.Error())),
			map[string]string{"Sec-Websocket-Version": "13"},
		)
	}
	key := strings.TrimSpace(r.Header.Get("Sec-Websocket-Key"))
	if !validChallengeKey(key) {
		return response.BadRequest(response.Text(ErrMissingKey.Error()))
	}
	if !cfg.checkOrigin(r) {
		return response.Forbidden()
	}

	headers := make(map[string]string, len(cfg.headers)+4)
	for k, v := range cfg.headers {
		headers[k] = v
	}
	headers["Upgrade"] = "websocket"
	headers["Connection"] = "Upgrade"
	headers["Sec-Websocket-Accept"] = AcceptKey(key)
	if p := selectSubprotocol(r, cfg.subprotocols); p != "" {
		headers["Sec-Websocket-Protocol"] = p
	}
	return response.SwitchProtocols(headers, session)
}

// Protocol returns a protocol switch to an arbitrary protocol named by the
// Upgrade header. headers are sent with the 101 response.
func Protocol(name string, headers map[string]string, session response.SessionHandler) response.Response {
	h := make(map[string]string, len(headers)+2)
	for k, v := range headers {
		h[k] = v
	}
	h["Upgrade"] = name
	h["Connection"] = "Upgrade"
	return response.SwitchProtocols(h, session)
}

// AcceptKey computes Sec-WebSocket-Accept for a client challenge key.
func AcceptKey(challengeKey string) string {
	h := sha1.New()
	h.Write([]byte(challengeKey))
	h.Write([]byte(keyGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func validChallengeKey(key string) bool {
	if key == "" {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(key)
	return err == nil && len(decoded) == 16
}

func selectSubprotocol(r *http.Request, supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	requested := websocket.Subprotocols(r)
	for _, p := range supported {
		if slices.Contains(requested, p) {
			return p
		}
	}
	return ""
}

// sameOrigin accepts requests without an Origin header and requests whose
// Origin host matches the Host header.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func headerContainsToken(h http.Header, name, token string) bool {
	for _, v := range h.Values(name) {
		for _, t := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(t), token) {
				return true
			}
		}
	}
	return false
}
