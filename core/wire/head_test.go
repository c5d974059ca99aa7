package wire_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpout/core/response"
	"github.com/dmitrymomot/httpout/core/wire"
)

func TestWriteHead(t *testing.T) {
	t.Parallel()

	server := "Server: " + response.ServerName + "\r\n"

	tests := []struct {
		name   string
		resp   response.Response
		length int
		want   string
	}{
		{
			name:   "ok_json",
			resp:   response.OK(response.JSON(1)),
			length: 1,
			want:   "HTTP/1.1 200 OK\r\nContent-Length: 1\r\nContent-Type: application/json\r\n" + server + "\r\n",
		},
		{
			name:   "not_found_without_length",
			resp:   response.NotFound(),
			length: response.UnknownLength,
			want:   "HTTP/1.1 404 Not Found\r\n" + server + "\r\n",
		},
		{
			name:   "no_content_status_omits_length",
			resp:   response.Raw(204, "No Content", nil, nil),
			length: 0,
			want:   "HTTP/1.1 204 No Content\r\n" + server + "\r\n",
		},
		{
			name:   "redirect",
			resp:   response.MovedPermanently("/new"),
			length: 0,
			want:   "HTTP/1.1 301 Moved Permanently\r\nContent-Length: 0\r\nLocation: /new\r\n" + server + "\r\n",
		},
		{
			name:   "switch_protocols_never_has_length",
			resp:   response.SwitchProtocols(map[string]string{"Upgrade": "echo", "Connection": "Upgrade"}, func(net.Conn) {}),
			length: 10,
			want:   "HTTP/1.1 101 Switching Protocols\r\nConnection: Upgrade\r\n" + server + "Upgrade: echo\r\n\r\n",
		},
		{
			name:   "raw_custom_reason",
			resp:   response.Raw(299, "Fine Thanks", map[string]string{"X-A": "1"}, nil),
			length: response.UnknownLength,
			want:   "HTTP/1.1 299 Fine Thanks\r\n" + server + "X-A: 1\r\n\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, wire.WriteHead(&buf, tt.resp, tt.length))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteHeadRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp response.Response
		err  error
	}{
		{"zero_response", response.Response{}, wire.ErrInvalidStatus},
		{"status_too_low", response.Raw(99, "Low", nil, nil), wire.ErrInvalidStatus},
		{"status_too_high", response.Raw(1000, "High", nil, nil), wire.ErrInvalidStatus},
		{"reason_with_newline", response.Raw(200, "OK\r\nX-Evil: 1", nil, nil), wire.ErrInvalidStatus},
		{"header_value_with_newline", response.Raw(200, "OK", map[string]string{"X-A": "a\r\nb"}, nil), wire.ErrInvalidHeader},
		{"header_name_with_space", response.Raw(200, "OK", map[string]string{"Bad Name": "v"}, nil), wire.ErrInvalidHeader},
		{"location_injection", response.MovedPermanently("/x\r\nSet-Cookie: a=b"), wire.ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := wire.WriteHead(&buf, tt.resp, response.UnknownLength)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, buf.Len(), "nothing is written for an invalid head")
		})
	}
}
