package response

import (
	"fmt"
	"io"
)

// File is a readable handle streamed by BodyWriter.WriteFile.
type File interface {
	io.Reader
}

// BodyWriter is the sink a write procedure emits body bytes through.
// It is implemented by the connection layer. Calls are applied in the order
// they are issued and an instance is never shared between concurrent writers.
// A failed call reports an error; bytes are never silently dropped.
type BodyWriter interface {
	// WriteFile streams f to the connection without loading it into memory.
	WriteFile(f File) error
	// Write writes the whole buffer.
	Write(p []byte) error
	// WriteRange writes p[start:end] without copying it.
	WriteRange(p []byte, start, end int) error
}

// WriteFunc is a body write procedure.
type WriteFunc func(w BodyWriter) error

// StreamFile returns a write procedure that opens a file, streams it through
// BodyWriter.WriteFile and closes it on every exit path.
func StreamFile(open func() (io.ReadCloser, error)) WriteFunc {
	return func(w BodyWriter) (err error) {
		if open == nil {
			return ErrNilOpener
		}
		f, err := open()
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close file: %w", cerr)
			}
		}()
		return w.WriteFile(f)
	}
}

// ValidRange reports whether p[start:end] is a valid slice expression.
// BodyWriter implementations use it to reject bad ranges before writing.
func ValidRange(p []byte, start, end int) bool {
	return start >= 0 && start <= end && end <= len(p)
}
