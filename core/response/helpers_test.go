package response_test

import (
	"bytes"
	"errors"
	"io"

	"github.com/dmitrymomot/httpout/core/response"
)

// recordingWriter is a BodyWriter that keeps every byte and every call.
type recordingWriter struct {
	buf   bytes.Buffer
	calls []string
	fail  error
}

func (w *recordingWriter) WriteFile(f response.File) error {
	w.calls = append(w.calls, "file")
	if w.fail != nil {
		return w.fail
	}
	_, err := io.Copy(&w.buf, f)
	return err
}

func (w *recordingWriter) Write(p []byte) error {
	w.calls = append(w.calls, "write")
	if w.fail != nil {
		return w.fail
	}
	w.buf.Write(p)
	return nil
}

func (w *recordingWriter) WriteRange(p []byte, start, end int) error {
	w.calls = append(w.calls, "range")
	if !response.ValidRange(p, start, end) {
		return response.ErrInvalidRange
	}
	if w.fail != nil {
		return w.fail
	}
	w.buf.Write(p[start:end])
	return nil
}

// written runs the content's write procedure and returns the produced bytes.
func written(c response.Content) (string, error) {
	w := &recordingWriter{}
	if c.Write == nil {
		return "", errors.New("no content")
	}
	err := c.Write(w)
	return w.buf.String(), err
}

// trackingFile records whether it was closed.
type trackingFile struct {
	io.Reader
	closed bool
}

func (f *trackingFile) Close() error {
	f.closed = true
	return nil
}
