package response

import (
	"fmt"
	"net"
	"net/http"
	"net/textproto"
)

// Version is reported in the Server header of every response.
const Version = "1.0.0"

// ServerName is the default value of the Server header.
const ServerName = "httpout/" + Version

// Kind identifies the variant of a Response.
type Kind uint8

const (
	KindSwitchProtocols Kind = iota + 1
	KindOK
	KindCreated
	KindAccepted
	KindMovedPermanently
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInternalServerError
	KindRaw
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindSwitchProtocols:
		return "switch_protocols"
	case KindOK:
		return "ok"
	case KindCreated:
		return "created"
	case KindAccepted:
		return "accepted"
	case KindMovedPermanently:
		return "moved_permanently"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInternalServerError:
		return "internal_server_error"
	case KindRaw:
		return "raw"
	default:
		return "invalid"
	}
}

// SessionHandler takes over a raw connection after a protocol switch.
// It owns the connection and is responsible for closing it.
type SessionHandler func(conn net.Conn)

// Response is an immutable outbound HTTP response.
// Build it with one of the constructors; the zero value is not a valid response.
type Response struct {
	kind     Kind
	body     Body
	location string
	code     int
	reason   string
	header   map[string]string
	extra    map[string]string
	content  Content
	session  SessionHandler
}

// SwitchProtocols creates a 101 response. After the headers are sent the
// connection is handed to session instead of writing a body.
func SwitchProtocols(headers map[string]string, session SessionHandler) Response {
	return Response{kind: KindSwitchProtocols, header: copyHeaders(headers), session: session}
}

// OK creates a 200 response with the given body.
func OK(body Body) Response {
	return Response{kind: KindOK, body: body}
}

// Created creates an empty 201 response.
func Created() Response {
	return Response{kind: KindCreated}
}

// Accepted creates an empty 202 response.
func Accepted() Response {
	return Response{kind: KindAccepted}
}

// MovedPermanently creates a 301 redirect to location.
func MovedPermanently(location string) Response {
	return Response{kind: KindMovedPermanently, location: location}
}

// BadRequest creates a 400 response. body may be nil.
func BadRequest(body Body) Response {
	return Response{kind: KindBadRequest, body: body}
}

// Unauthorized creates an empty 401 response.
func Unauthorized() Response {
	return Response{kind: KindUnauthorized}
}

// Forbidden creates an empty 403 response.
func Forbidden() Response {
	return Response{kind: KindForbidden}
}

// NotFound creates an empty 404 response.
func NotFound() Response {
	return Response{kind: KindNotFound}
}

// InternalServerError creates an empty 500 response.
func InternalServerError() Response {
	return Response{kind: KindInternalServerError}
}

// Raw creates a response with an explicit status line, optional headers and an
// optional write procedure. The body length is unknown.
func Raw(code int, reason string, headers map[string]string, write WriteFunc) Response {
	return RawContent(code, reason, headers, Content{Length: UnknownLength, Write: write})
}

// RawContent is Raw with a caller-determined length.
func RawContent(code int, reason string, headers map[string]string, content Content) Response {
	if content.Write == nil {
		content.Length = UnknownLength
	}
	return Response{
		kind:    KindRaw,
		code:    code,
		reason:  reason,
		header:  copyHeaders(headers),
		content: content,
	}
}

// Kind returns the response variant.
func (r Response) Kind() Kind {
	return r.kind
}

// IsZero reports whether r was not built by a constructor.
func (r Response) IsZero() bool {
	return r.kind == 0
}

// Body returns the body of OK and BadRequest responses, nil otherwise.
func (r Response) Body() Body {
	return r.body
}

// StatusCode returns the status code. It depends on the variant only, except
// for Raw which carries its own.
func (r Response) StatusCode() int {
	switch r.kind {
	case KindSwitchProtocols:
		return http.StatusSwitchingProtocols
	case KindOK:
		return http.StatusOK
	case KindCreated:
		return http.StatusCreated
	case KindAccepted:
		return http.StatusAccepted
	case KindMovedPermanently:
		return http.StatusMovedPermanently
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInternalServerError:
		return http.StatusInternalServerError
	case KindRaw:
		return r.code
	default:
		return 0
	}
}

// ReasonPhrase returns the reason phrase of the status line.
func (r Response) ReasonPhrase() string {
	switch r.kind {
	case KindRaw:
		return r.reason
	case 0:
		return ""
	default:
		return http.StatusText(r.StatusCode())
	}
}

// Headers returns a fresh header map. The Server header is always present;
// variant and caller headers override defaults with the same key.
func (r Response) Headers() map[string]string {
	headers := map[string]string{"Server": ServerName}
	switch r.kind {
	case KindSwitchProtocols, KindRaw:
		for k, v := range r.header {
			headers[k] = v
		}
	case KindOK:
		switch r.body.(type) {
		case jsonBody:
			headers["Content-Type"] = "application/json"
		case htmlBody:
			headers["Content-Type"] = "text/html"
		}
	case KindMovedPermanently:
		headers["Location"] = r.location
	}
	for k, v := range r.extra {
		headers[k] = v
	}
	return headers
}

// Content renders the body with the zero-value Renderer.
func (r Response) Content() Content {
	return r.ContentWith(nil)
}

// ContentWith returns the body length and write procedure. Only OK, BadRequest
// and Raw have content; Raw content is returned verbatim. Rendering never fails.
func (r Response) ContentWith(renderer *Renderer) Content {
	switch r.kind {
	case KindOK, KindBadRequest:
		return renderer.Render(r.body)
	case KindRaw:
		return r.content
	default:
		return noContent
	}
}

// SocketSession returns the session handler of a protocol switch, nil otherwise.
func (r Response) SocketSession() SessionHandler {
	if r.kind != KindSwitchProtocols {
		return nil
	}
	return r.session
}

// Equal compares status codes only; payloads are ignored.
// For example Raw(404, ...) equals NotFound().
func (r Response) Equal(other Response) bool {
	return r.StatusCode() == other.StatusCode()
}

// String returns the status code and reason phrase.
func (r Response) String() string {
	return fmt.Sprintf("%d %s", r.StatusCode(), r.ReasonPhrase())
}

func copyHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	return out
}
