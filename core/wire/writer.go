package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/httpout/core/response"
)

var _ response.BodyWriter = (*Writer)(nil)

// Writer is a response.BodyWriter over an io.Writer.
// Once a write fails the writer is broken and later calls return ErrBroken.
type Writer struct {
	w     io.Writer
	n     int64
	limit int64
	err   error
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, limit: -1}
}

// NewLimitedWriter returns a Writer that accepts at most limit bytes. A write
// that would exceed it writes nothing and fails with ErrLengthMismatch.
func NewLimitedWriter(w io.Writer, limit int64) *Writer {
	return &Writer{w: w, limit: limit}
}

// Write writes the whole buffer.
func (w *Writer) Write(p []byte) error {
	if w.err != nil {
		return fmt.Errorf("%w: %w", ErrBroken, w.err)
	}
	if w.limit >= 0 && w.n+int64(len(p)) > w.limit {
		return w.overflow(int64(len(p)))
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteRange writes p[start:end].
func (w *Writer) WriteRange(p []byte, start, end int) error {
	if !response.ValidRange(p, start, end) {
		return fmt.Errorf("%w: [%d:%d] of %d bytes", response.ErrInvalidRange, start, end, len(p))
	}
	return w.Write(p[start:end])
}

// WriteFile copies f to the destination. io.Copy lets destinations that
// implement io.ReaderFrom (TCP connections, http.ResponseWriter) use sendfile.
func (w *Writer) WriteFile(f response.File) error {
	if w.err != nil {
		return fmt.Errorf("%w: %w", ErrBroken, w.err)
	}
	if f == nil {
		return ErrNilFile
	}
	if w.limit < 0 {
		n, err := io.Copy(w.w, f)
		w.n += n
		if err != nil {
			w.err = err
			return err
		}
		return nil
	}

	// net.TCPConn.ReadFrom still uses sendfile for the io.LimitedReader built by CopyN.
	n, err := io.CopyN(w.w, f, w.limit-w.n)
	w.n += n
	if err != nil && !errors.Is(err, io.EOF) {
		w.err = err
		return err
	}
	var extra [1]byte
	if m, _ := io.ReadFull(f, extra[:]); m > 0 {
		return w.overflow(int64(m))
	}
	return nil
}

func (w *Writer) overflow(extra int64) error {
	w.err = fmt.Errorf("%w: %d bytes declared, at least %d produced", ErrLengthMismatch, w.limit, w.n+extra)
	return w.err
}

// Written returns the number of body bytes written so far.
func (w *Writer) Written() int64 {
	return w.n
}

// Err returns the error that broke the writer, if any.
func (w *Writer) Err() error {
	return w.err
}
