package response

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpout/core/logger"
)

// UnknownLength marks a body whose size is not known in advance.
// Together with a nil Write it also means "no content".
const UnknownLength = -1

// diagnosticPrefix starts every body produced for a failed serialization.
const diagnosticPrefix = "Serialisation error: "

// Content is a rendered body: its length and the procedure that writes it.
type Content struct {
	Length int
	Write  WriteFunc
}

// Empty reports whether the content carries no body.
func (c Content) Empty() bool {
	return c.Write == nil
}

var noContent = Content{Length: UnknownLength}

// NoContent returns the content of a response without a body.
func NoContent() Content {
	return noContent
}

// Bytes returns content that writes data with a single Write call.
func Bytes(data []byte) Content {
	return Content{
		Length: len(data),
		Write: func(w BodyWriter) error {
			return w.Write(data)
		},
	}
}

// Renderer turns bodies into Content. The zero value is ready to use and logs nothing.
type Renderer struct {
	logger    *slog.Logger
	onFailure func(kind BodyKind, err error)
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger traces every render at debug level and logs serialization failures.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithFailureHook registers fn to be called with every swallowed serialization error.
func WithFailureHook(fn func(kind BodyKind, err error)) RendererOption {
	return func(r *Renderer) {
		r.onFailure = fn
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render serializes b. It never fails: a serialization error is replaced by a
// plain-text diagnostic body, so the exchange always has a coherent body.
// A nil body has no content.
func (r *Renderer) Render(b Body) Content {
	if b == nil {
		return noContent
	}
	data, err := renderOrDiagnostic(b)
	if err != nil && r != nil && r.onFailure != nil {
		r.onFailure(b.Kind(), err)
	}
	if log := r.log(); log != nil {
		if err != nil {
			log.LogAttrs(context.Background(), slog.LevelWarn, "body serialization failed",
				logger.BodyKind(b.Kind().String()),
				logger.Error(err),
			)
		} else {
			log.LogAttrs(context.Background(), slog.LevelDebug, "body rendered",
				logger.BodyKind(b.Kind().String()),
				logger.ContentLength(len(data)),
			)
		}
	}
	return Bytes(data)
}

func (r *Renderer) log() *slog.Logger {
	if r == nil {
		return nil
	}
	return r.logger
}

// RenderBody renders b with the zero-value Renderer.
func RenderBody(b Body) Content {
	var r *Renderer
	return r.Render(b)
}

// renderOrDiagnostic always returns bytes to send. The serialization error, if
// any, is returned alongside for instrumentation only.
func renderOrDiagnostic(b Body) ([]byte, error) {
	data, err := b.serialize()
	if err != nil {
		return []byte(diagnosticPrefix + err.Error()), err
	}
	return data, nil
}
