// Package server serves handlers that return response values over net/http.
//
// Handler adapts a handler.HandlerFunc to http.Handler. For every request it
// builds the handler context, calls the handler and writes the returned
// response: status line, headers, Content-Length when the body length is
// known and the body through a BodyWriter backed by the http.ResponseWriter.
// HEAD requests get the head only. A handler that panics or returns a zero
// response produces a 500.
//
// A protocol switch (response.SwitchProtocols) hijacks the connection, writes
// the 101 head and hands the connection to the session handler, which owns it
// from then on:
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /users/{id}", server.Handler(getUser,
//		server.WithDispatchLogger(log),
//		server.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
//	))
//	mux.Handle("GET /ws", server.Handler(func(ctx handler.Context) response.Response {
//		return upgrade.WebSocket(ctx.Request(), chat.Session)
//	}))
//
// Server wraps http.Server with graceful shutdown:
//
//	cfg, err := server.ConfigFromEnv()
//	if err != nil {
//		return err
//	}
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, mux))
//	return g.Wait()
//
// Configuration is read from SERVER_ADDR, SERVER_READ_TIMEOUT,
// SERVER_WRITE_TIMEOUT, SERVER_IDLE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT,
// SERVER_MAX_HEADER_BYTES, SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE.
package server
