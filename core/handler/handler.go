package handler

import "github.com/dmitrymomot/httpout/core/response"

// HandlerFunc decides the outcome of a request and returns it as a response value.
// Writing the response is the dispatcher's job.
type HandlerFunc[C Context] func(ctx C) response.Response

// Middleware wraps a handler.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// Chain wraps endpoint with middlewares so that the first one runs first.
func Chain[C Context](endpoint HandlerFunc[C], middlewares ...Middleware[C]) HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
