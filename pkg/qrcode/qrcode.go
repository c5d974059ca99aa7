package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/httpout/core/response"
)

// DefaultSize is used when size is not positive.
const DefaultSize = 256

var (
	ErrEmptyContent   = errors.New("qrcode: content is empty")
	ErrGenerateFailed = errors.New("qrcode: failed to generate")
)

// Generate returns a PNG QR code of content, size x size pixels,
// with medium error correction.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerateFailed, err)
	}
	return png, nil
}

// GenerateBase64Image returns the QR code as a data URI for <img src>.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Response returns a 200 image/png response with the QR code of content.
// Empty content yields BadRequest, an encoding failure InternalServerError.
func Response(content string, size int) response.Response {
	png, err := Generate(content, size)
	switch {
	case errors.Is(err, ErrEmptyContent):
		return response.BadRequest(response.Text(err.Error()))
	case err != nil:
		return response.InternalServerError()
	}
	return response.RawContent(http.StatusOK, http.StatusText(http.StatusOK),
		map[string]string{"Content-Type": "image/png"},
		response.Bytes(png),
	)
}
