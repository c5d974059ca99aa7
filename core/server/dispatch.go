package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/httpout/core/handler"
	"github.com/dmitrymomot/httpout/core/logger"
	"github.com/dmitrymomot/httpout/core/metrics"
	"github.com/dmitrymomot/httpout/core/response"
	"github.com/dmitrymomot/httpout/core/wire"
)

type dispatchConfig struct {
	logger   *slog.Logger
	renderer *response.Renderer
	metrics  *metrics.Metrics
}

// DispatchOption configures a dispatcher created by Handler.
type DispatchOption func(*dispatchConfig)

// WithDispatchLogger sets the logger for dispatch errors and traces.
func WithDispatchLogger(l *slog.Logger) DispatchOption {
	return func(c *dispatchConfig) {
		c.logger = l
	}
}

// WithRenderer sets the renderer used for OK and BadRequest bodies.
// By default a renderer sharing the dispatcher logger and metrics is used.
func WithRenderer(r *response.Renderer) DispatchOption {
	return func(c *dispatchConfig) {
		c.renderer = r
	}
}

// WithMetrics records every dispatched response in m.
func WithMetrics(m *metrics.Metrics) DispatchOption {
	return func(c *dispatchConfig) {
		c.metrics = m
	}
}

type dispatcher[C handler.Context] struct {
	handler    handler.HandlerFunc[C]
	newContext func(r *http.Request) C
	dispatchConfig
}

// Handler adapts fn to http.Handler using the default request context.
func Handler(fn handler.HandlerFunc[handler.Context], opts ...DispatchOption) http.Handler {
	return HandlerWithContext(fn, handler.NewContext, opts...)
}

// HandlerWithContext adapts fn to http.Handler. newContext builds the handler
// context for each request. The returned response is written to the client:
// status line, merged headers, Content-Length when the body length is known,
// and the body through a BodyWriter over the http.ResponseWriter. A protocol
// switch hijacks the connection and hands it to the session handler.
func HandlerWithContext[C handler.Context](fn handler.HandlerFunc[C], newContext func(r *http.Request) C, opts ...DispatchOption) http.Handler {
	d := &dispatcher[C]{handler: fn, newContext: newContext}
	for _, opt := range opts {
		opt(&d.dispatchConfig)
	}
	if d.logger == nil {
		d.logger = logger.Nop()
	}
	if d.renderer == nil {
		ropts := []response.RendererOption{response.WithLogger(d.logger)}
		if d.metrics != nil {
			ropts = append(ropts, response.WithFailureHook(d.metrics.ObserveRenderFailure))
		}
		d.renderer = response.NewRenderer(ropts...)
	}
	return d
}

func (d *dispatcher[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := d.call(r)

	if resp.Kind() == response.KindSwitchProtocols {
		d.switchProtocols(w, r, resp)
		return
	}

	if code := resp.StatusCode(); code < 100 || code > 999 {
		d.logger.LogAttrs(r.Context(), slog.LevelError, "handler returned an invalid response",
			logger.StatusCode(code),
			logger.Kind(resp.Kind().String()),
			logger.Path(r.URL.Path),
		)
		resp = response.InternalServerError()
	}

	if resp.Kind() == response.KindRaw && resp.ReasonPhrase() != http.StatusText(resp.StatusCode()) {
		if d.writeOwnStatusLine(w, r, resp, start) {
			return
		}
	}

	content := resp.ContentWith(d.renderer)
	h := w.Header()
	for k, v := range resp.Headers() {
		h.Set(k, v)
	}
	if !content.Empty() && content.Length >= 0 {
		h.Set("Content-Length", strconv.Itoa(content.Length))
	}
	w.WriteHeader(resp.StatusCode())

	var written int64
	if !content.Empty() && r.Method != http.MethodHead {
		bw := wire.NewWriter(w)
		err := content.Write(bw)
		written = bw.Written()
		if err != nil {
			d.metrics.ObserveWriteError()
			d.logger.LogAttrs(r.Context(), slog.LevelError, "response body write failed",
				logger.Error(err),
				logger.StatusCode(resp.StatusCode()),
				logger.Path(r.URL.Path),
				logger.BytesOut(written),
			)
		}
	}

	d.metrics.ObserveResponse(resp.Kind(), resp.StatusCode(), written)
	d.logger.LogAttrs(r.Context(), slog.LevelDebug, "response sent",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(resp.StatusCode()),
		logger.Kind(resp.Kind().String()),
		logger.ContentLength(content.Length),
		logger.BytesOut(written),
		logger.Latency(time.Since(start)),
	)
}

// call runs the handler. A panic or a zero response becomes a 500.
func (d *dispatcher[C]) call(r *http.Request) (resp response.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.LogAttrs(r.Context(), slog.LevelError, "handler panicked",
				logger.Error(fmt.Errorf("%w: %v", ErrHandlerPanic, rec)),
				logger.Path(r.URL.Path),
			)
			resp = response.InternalServerError()
		}
	}()
	resp = d.handler(d.newContext(r))
	if resp.IsZero() {
		d.logger.LogAttrs(r.Context(), slog.LevelError, "handler returned a zero response",
			logger.Path(r.URL.Path),
		)
		return response.InternalServerError()
	}
	return resp
}

// writeOwnStatusLine sends a Raw response whose reason phrase net/http would
// replace. The connection is hijacked, written by the wire package and closed.
// It reports false, having written nothing, when the connection cannot be hijacked.
func (d *dispatcher[C]) writeOwnStatusLine(w http.ResponseWriter, r *http.Request, resp response.Response, start time.Time) bool {
	conn, rw, err := http.NewResponseController(w).Hijack()
	if err != nil {
		d.logger.LogAttrs(r.Context(), slog.LevelDebug, "custom reason phrase replaced, connection is not hijackable",
			logger.StatusCode(resp.StatusCode()),
			logger.Path(r.URL.Path),
		)
		return false
	}
	defer func() { _ = conn.Close() }()

	res, err := wire.ServeBuffered(conn, rw, resp, wire.Options{
		Renderer: d.renderer,
		HeadOnly: r.Method == http.MethodHead,
	})
	if err != nil {
		d.metrics.ObserveWriteError()
		d.logger.LogAttrs(r.Context(), slog.LevelError, "response write failed",
			logger.Error(err),
			logger.StatusCode(resp.StatusCode()),
			logger.Path(r.URL.Path),
			logger.BytesOut(res.Written),
		)
	}

	d.metrics.ObserveResponse(resp.Kind(), resp.StatusCode(), res.Written)
	d.logger.LogAttrs(r.Context(), slog.LevelDebug, "response sent",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(resp.StatusCode()),
		logger.Kind(resp.Kind().String()),
		logger.ContentLength(res.Content.Length),
		logger.BytesOut(res.Written),
		logger.Latency(time.Since(start)),
	)
	return true
}

func (d *dispatcher[C]) switchProtocols(w http.ResponseWriter, r *http.Request, resp response.Response) {
	conn, rw, err := http.NewResponseController(w).Hijack()
	if err != nil {
		d.logger.LogAttrs(r.Context(), slog.LevelError, "protocol switch needs a hijackable connection",
			logger.Error(err),
			logger.Path(r.URL.Path),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		d.metrics.ObserveResponse(response.KindInternalServerError, http.StatusInternalServerError, 0)
		return
	}

	d.metrics.ObserveSwitch()
	d.metrics.ObserveResponse(resp.Kind(), resp.StatusCode(), 0)
	d.logger.LogAttrs(r.Context(), slog.LevelDebug, "switching protocols",
		logger.Path(r.URL.Path),
		logger.RemoteAddr(conn.RemoteAddr().String()),
	)

	if _, err := wire.ServeBuffered(conn, rw, resp, wire.Options{}); err != nil {
		d.logger.LogAttrs(r.Context(), slog.LevelError, "protocol switch failed",
			logger.Error(err),
			logger.Path(r.URL.Path),
		)
		_ = conn.Close()
	}
}
