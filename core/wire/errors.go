package wire

import "errors"

var (
	// ErrBroken is returned by every Writer call after a write has failed.
	ErrBroken = errors.New("wire: writer is broken by an earlier write error")

	// ErrNilFile is returned by WriteFile for a nil file.
	ErrNilFile = errors.New("wire: nil file")

	// ErrInvalidHeader is returned when a header name or value cannot be put on the wire.
	ErrInvalidHeader = errors.New("wire: invalid header field")

	// ErrLengthMismatch is returned when a body does not match its declared length.
	ErrLengthMismatch = errors.New("wire: body length does not match Content-Length")

	// ErrInvalidStatus is returned for status codes outside 100-999.
	ErrInvalidStatus = errors.New("wire: invalid status code")
)
