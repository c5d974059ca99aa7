package response

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidObject is reported when a structured-data payload cannot be encoded.
	ErrInvalidObject = errors.New("invalid object")

	// ErrNotSupported is reported when a custom serializer fails or cannot handle its value.
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidRange is returned by BodyWriter implementations for out-of-bounds WriteRange calls.
	ErrInvalidRange = errors.New("invalid byte range")

	// ErrNilOpener is returned by StreamFile when no opener was supplied.
	ErrNilOpener = errors.New("file opener is nil")
)

// SerializationError describes a body that could not be rendered.
// Kind is either ErrInvalidObject or ErrNotSupported, Err holds the cause.
type SerializationError struct {
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Is reports whether target is the error kind, so errors.Is(err, ErrInvalidObject) works.
func (e *SerializationError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}
