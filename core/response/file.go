package response

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// ServeFile creates a 200 response that streams a file opened by open.
// size may be UnknownLength. An empty contentType is detected from name,
// falling back to application/octet-stream.
func ServeFile(open func() (io.ReadCloser, error), name, contentType string, size int) Response {
	return RawContent(http.StatusOK, http.StatusText(http.StatusOK),
		map[string]string{"Content-Type": resolveContentType(name, contentType)},
		Content{Length: size, Write: StreamFile(open)},
	)
}

// Attachment is ServeFile with a Content-Disposition header that makes
// browsers download the file as filename.
func Attachment(open func() (io.ReadCloser, error), filename, contentType string, size int) Response {
	// Prevent header injection through newlines and quotes.
	sanitized := strings.NewReplacer("\n", "", "\r", "", "\"", "'").Replace(filename)
	return WithHeaders(
		ServeFile(open, sanitized, contentType, size),
		map[string]string{"Content-Disposition": contentDisposition(sanitized)},
	)
}

// contentDisposition encodes filename as a token, a quoted-string or, for
// non-ASCII names, an RFC 2231 filename* parameter.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}

func resolveContentType(name, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
