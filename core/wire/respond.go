package wire

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/dmitrymomot/httpout/core/response"
)

// Options control how a response is put on the wire.
type Options struct {
	// Renderer renders OK and BadRequest bodies. Nil uses the zero-value renderer.
	Renderer *response.Renderer
	// KeepAlive asks for a persistent connection. It is honoured only when
	// the body length is known, since bodies are never chunked.
	KeepAlive bool
	// HeadOnly writes the head but no body, as for HEAD requests.
	HeadOnly bool
}

// Result describes a written response.
type Result struct {
	Content   response.Content
	Written   int64
	KeepAlive bool
	Switched  bool
}

// Respond writes resp to w: status line, headers and body.
// For a protocol switch only the head is written and Result.Switched is set;
// the caller hands the connection to the session handler.
func Respond(w io.Writer, resp response.Response, opts Options) (Result, error) {
	if resp.Kind() == response.KindSwitchProtocols {
		if err := WriteHead(w, resp, response.UnknownLength); err != nil {
			return Result{}, err
		}
		return Result{Content: response.NoContent(), Switched: true}, nil
	}

	content := resp.ContentWith(opts.Renderer)
	length := content.Length
	if content.Empty() {
		length = 0
	}

	keepAlive := opts.KeepAlive && length >= 0
	if keepAlive {
		resp = response.WithHeaders(resp, map[string]string{"Connection": "keep-alive"})
	} else {
		resp = response.WithHeaders(resp, map[string]string{"Connection": "close"})
	}
	if err := WriteHead(w, resp, length); err != nil {
		return Result{Content: content}, err
	}

	res := Result{Content: content, KeepAlive: keepAlive}
	if content.Empty() || opts.HeadOnly {
		return res, nil
	}

	bw := NewWriter(w)
	if length >= 0 {
		bw = NewLimitedWriter(w, int64(length))
	}
	err := content.Write(bw)
	res.Written = bw.Written()
	if err == nil && length >= 0 && res.Written != int64(length) {
		err = fmt.Errorf("%w: %d bytes declared, %d written", ErrLengthMismatch, length, res.Written)
	}
	if err != nil {
		res.KeepAlive = false
		return res, err
	}
	return res, nil
}

// Serve writes resp to conn through a buffer. After a protocol switch the
// session handler owns conn; without a handler conn is closed. The caller
// must not use conn once Result.Switched is true.
func Serve(conn net.Conn, resp response.Response, opts Options) (Result, error) {
	return serve(conn, bufio.NewWriter(conn), nil, resp, opts)
}

// ServeBuffered is Serve for a connection whose buffers already exist, such as
// one obtained from http.Hijacker. Bytes buffered in rw.Reader are handed to
// the session handler before further reads from conn.
func ServeBuffered(conn net.Conn, rw *bufio.ReadWriter, resp response.Response, opts Options) (Result, error) {
	return serve(conn, rw.Writer, rw.Reader, resp, opts)
}

func serve(conn net.Conn, bw *bufio.Writer, br *bufio.Reader, resp response.Response, opts Options) (Result, error) {
	res, err := Respond(bw, resp, opts)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if err != nil || !res.Switched {
		return res, err
	}

	session := resp.SocketSession()
	if session == nil {
		return res, conn.Close()
	}
	if br != nil && br.Buffered() > 0 {
		conn = &bufferedConn{Conn: conn, r: br}
	}
	session(conn)
	return res, nil
}

// bufferedConn drains bytes read ahead by a bufio.Reader before reading from the connection.
type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (c *bufferedConn) Read(p []byte) (int, error) {
	if c.r.Buffered() > 0 {
		return c.r.Read(p)
	}
	return c.Conn.Read(p)
}
