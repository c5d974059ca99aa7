// Package upgrade builds protocol switch responses.
//
// WebSocket validates an opening handshake (RFC 6455) and returns a 101
// response whose session handler receives the raw connection once the head is
// sent. Invalid handshakes return a 400 with a plain-text reason and a
// rejected origin returns a 403, so handlers can return the result directly:
//
//	func chat(ctx handler.Context) response.Response {
//		return upgrade.WebSocket(ctx.Request(), func(conn net.Conn) {
//			defer conn.Close()
//			// speak WebSocket frames on conn
//		}, upgrade.WithSubprotocols("chat.v1"))
//	}
//
// Protocol switches to any other protocol named in the Upgrade header.
package upgrade
