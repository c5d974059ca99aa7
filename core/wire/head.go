package wire

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"golang.org/x/net/http/httpguts"

	"github.com/dmitrymomot/httpout/core/response"
)

// WriteHead writes the status line and headers of resp followed by the empty line.
// Content-Length is added when length is known, except for statuses that
// never carry a body (1xx, 204 and 304).
// Headers are written in key order so output is deterministic.
func WriteHead(w io.Writer, resp response.Response, length int) error {
	code := resp.StatusCode()
	if code < 100 || code > 999 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	if !httpguts.ValidHeaderFieldValue(resp.ReasonPhrase()) {
		return fmt.Errorf("%w: reason phrase %q", ErrInvalidStatus, resp.ReasonPhrase())
	}

	headers := resp.Headers()
	if length >= 0 && !bodyless(code) {
		headers["Content-Length"] = strconv.Itoa(length)
	}

	keys := make([]string, 0, len(headers))
	for k, v := range headers {
		if !httpguts.ValidHeaderFieldName(k) || !httpguts.ValidHeaderFieldValue(v) {
			return fmt.Errorf("%w: %q", ErrInvalidHeader, k)
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b bytes.Buffer
	b.Grow(64 + 32*len(keys))
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(code))
	b.WriteByte(' ')
	b.WriteString(resp.ReasonPhrase())
	b.WriteString("\r\n")
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(headers[k])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")

	_, err := w.Write(b.Bytes())
	return err
}

func bodyless(code int) bool {
	return code < 200 || code == http.StatusNoContent || code == http.StatusNotModified
}
