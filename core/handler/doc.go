// Package handler defines the handler contract: a handler receives a request
// context and returns a response.Response value. It never writes to the
// connection itself; core/server does that.
//
//	func getUser(ctx handler.Context) response.Response {
//		user, ok := users[ctx.Param("id")]
//		if !ok {
//			return response.NotFound()
//		}
//		return response.OK(response.JSON(user))
//	}
//
// Handlers are generic over the context type so applications can embed
// Context in their own struct. Middleware wraps handlers and may inspect or
// decorate the returned response:
//
//	h := handler.Chain(getUser,
//		middleware.RequestID[handler.Context](),
//		middleware.Logging[handler.Context](),
//	)
//	mux.Handle("GET /users/{id}", server.Handler(h))
package handler
