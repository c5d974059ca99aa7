package response

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error with the given status. Code and message
// default to the status text.
func NewHTTPError(status int, message string) HTTPError {
	e := httpError(status)
	if message != "" {
		e.Message = message
	}
	return e
}

func httpError(status int) HTTPError {
	text := http.StatusText(status)
	return HTTPError{
		Status:  status,
		Code:    strings.ToLower(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text)),
		Message: text,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with an error cause.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined HTTP errors.
var (
	ErrBadRequest            = httpError(http.StatusBadRequest)
	ErrUnauthorized          = httpError(http.StatusUnauthorized)
	ErrForbidden             = httpError(http.StatusForbidden)
	ErrNotFound              = httpError(http.StatusNotFound)
	ErrMethodNotAllowed      = httpError(http.StatusMethodNotAllowed)
	ErrConflict              = httpError(http.StatusConflict)
	ErrGone                  = httpError(http.StatusGone)
	ErrRequestEntityTooLarge = httpError(http.StatusRequestEntityTooLarge)
	ErrUnsupportedMediaType  = httpError(http.StatusUnsupportedMediaType)
	ErrUnprocessableEntity   = httpError(http.StatusUnprocessableEntity)
	ErrTooManyRequests       = httpError(http.StatusTooManyRequests)
	ErrInternalServerError   = httpError(http.StatusInternalServerError)
	ErrNotImplemented        = httpError(http.StatusNotImplemented)
	ErrBadGateway            = httpError(http.StatusBadGateway)
	ErrServiceUnavailable    = httpError(http.StatusServiceUnavailable)
	ErrGatewayTimeout        = httpError(http.StatusGatewayTimeout)
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError. An HTTPError in the chain is
// returned as is; otherwise the status comes from a StatusCode method and
// defaults to 500, and err is attached as the cause.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}
	if http.StatusText(status) == "" || status < 400 {
		status = http.StatusInternalServerError
	}
	return httpError(status).WithError(err)
}

// Error converts err to a plain-text error response.
func Error(err error) Response {
	e := AsHTTPError(err)
	return errorResponse(e, Text(e.Message), textContentType)
}

// JSONError converts err to a JSON error response with code, message and
// details. Details that cannot be encoded yield the plain-text diagnostic,
// labelled as text.
func JSONError(err error) Response {
	e := AsHTTPError(err)
	return errorResponse(e, JSON(e), "application/json")
}

const textContentType = "text/plain; charset=utf-8"

func errorResponse(e HTTPError, body Body, contentType string) Response {
	failed := false
	content := NewRenderer(WithFailureHook(func(BodyKind, error) { failed = true })).Render(body)
	if failed {
		contentType = textContentType
	}
	return RawContent(e.Status, http.StatusText(e.Status),
		map[string]string{"Content-Type": contentType},
		content,
	)
}
