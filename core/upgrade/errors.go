package upgrade

import "errors"

var (
	ErrNotWebSocket       = errors.New("upgrade: not a websocket handshake")
	ErrMethodNotGet       = errors.New("upgrade: websocket handshake must use GET")
	ErrUnsupportedVersion = errors.New("upgrade: unsupported websocket version")
	ErrMissingKey         = errors.New("upgrade: missing or invalid Sec-WebSocket-Key")
)
