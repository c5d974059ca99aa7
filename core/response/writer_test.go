package response_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpout/core/response"
)

func TestStreamFile(t *testing.T) {
	t.Parallel()

	t.Run("streams_and_closes", func(t *testing.T) {
		t.Parallel()

		f := &trackingFile{Reader: strings.NewReader("file contents")}
		w := &recordingWriter{}
		err := response.StreamFile(func() (io.ReadCloser, error) { return f, nil })(w)

		require.NoError(t, err)
		assert.Equal(t, "file contents", w.buf.String())
		assert.Equal(t, []string{"file"}, w.calls)
		assert.True(t, f.closed)
	})

	t.Run("closes_on_write_failure", func(t *testing.T) {
		t.Parallel()

		writeErr := errors.New("connection reset")
		f := &trackingFile{Reader: strings.NewReader("data")}
		w := &recordingWriter{fail: writeErr}
		err := response.StreamFile(func() (io.ReadCloser, error) { return f, nil })(w)

		assert.ErrorIs(t, err, writeErr)
		assert.True(t, f.closed)
	})

	t.Run("open_failure", func(t *testing.T) {
		t.Parallel()

		openErr := errors.New("permission denied")
		w := &recordingWriter{}
		err := response.StreamFile(func() (io.ReadCloser, error) { return nil, openErr })(w)

		assert.ErrorIs(t, err, openErr)
		assert.Empty(t, w.calls)
	})

	t.Run("nil_opener", func(t *testing.T) {
		t.Parallel()

		err := response.StreamFile(nil)(&recordingWriter{})
		assert.ErrorIs(t, err, response.ErrNilOpener)
	})

	t.Run("closes_on_panic", func(t *testing.T) {
		t.Parallel()

		f := &trackingFile{Reader: strings.NewReader("data")}
		assert.Panics(t, func() {
			_ = response.StreamFile(func() (io.ReadCloser, error) { return f, nil })(panickingWriter{})
		})
		assert.True(t, f.closed)
	})
}

type panickingWriter struct{}

func (panickingWriter) WriteFile(response.File) error { panic("boom") }
func (panickingWriter) Write([]byte) error { panic("boom") }
func (panickingWriter) WriteRange([]byte, int, int) error { panic("boom") }

func TestValidRange(t *testing.T) {
	t.Parallel()

	p := []byte("hello")
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"full", 0, 5, true},
		{"middle", 1, 3, true},
		{"empty", 2, 2, true},
		{"negative_start", -1, 2, false},
		{"end_past_len", 0, 6, false},
		{"inverted", 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, response.ValidRange(p, tt.start, tt.end))
		})
	}
}

func TestWriteOrder(t *testing.T) {
	t.Parallel()

	payload := []byte("0123456789")
	w := &recordingWriter{}
	c := response.Raw(200, "OK", nil, func(bw response.BodyWriter) error {
		if err := bw.WriteRange(payload, 0, 3); err != nil {
			return err
		}
		if err := bw.Write([]byte("|")); err != nil {
			return err
		}
		if err := bw.WriteFile(strings.NewReader("file")); err != nil {
			return err
		}
		return bw.WriteRange(payload, 7, 10)
	}).Content()

	require.NoError(t, c.Write(w))
	assert.Equal(t, "012|file789", w.buf.String())
	assert.Equal(t, []string{"range", "write", "file", "range"}, w.calls)

	err := w.WriteRange(payload, 5, 11)
	assert.ErrorIs(t, err, response.ErrInvalidRange)
}
