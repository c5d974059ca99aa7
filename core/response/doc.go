// Package response models outbound HTTP responses as immutable values.
//
// A handler decides the outcome of a request and returns a Response; the
// connection layer (see core/server and core/wire) turns it into bytes.
// Every response carries its status line, a header map and, for some
// variants, a body rendered on demand.
//
// # Variants
//
//	response.SwitchProtocols(headers, session) // 101, hands the connection to session
//	response.OK(body)                           // 200
//	response.Created()                          // 201
//	response.Accepted()                         // 202
//	response.MovedPermanently(location)         // 301, sets Location
//	response.BadRequest(body)                   // 400, body may be nil
//	response.Unauthorized()                     // 401
//	response.Forbidden()                        // 403
//	response.NotFound()                         // 404
//	response.InternalServerError()              // 500
//	response.Raw(code, reason, headers, write)  // anything else
//
// Every response includes a Server header. OK responses with a JSON or HTML
// body also get a Content-Type. Equal compares status codes only, so
// Raw(404, ...) equals NotFound().
//
// # Bodies
//
// A Body is one of JSON, HTML, Text or a custom body built with Custom or
// CustomSerializer. Templ and Template are custom bodies backed by a templ
// component and an html/template:
//
//	func getUser(ctx handler.Context) response.Response {
//		user, err := users.Find(ctx, ctx.Param("id"))
//		if err != nil {
//			return response.JSONError(err)
//		}
//		return response.OK(response.JSON(user))
//	}
//
// Rendering never fails. If a body cannot be serialized the client receives
// the plain text "Serialisation error: <cause>" with its exact length. Use a
// Renderer with WithLogger or WithFailureHook to observe such failures.
//
// # Writing bodies
//
// Content returns the body length and a write procedure that emits bytes
// through a BodyWriter. The length is UnknownLength when it cannot be known
// in advance, for example for Raw responses. StreamFile builds a write
// procedure that streams a file and always closes it:
//
//	resp := response.ServeFile(func() (io.ReadCloser, error) {
//		return os.Open("report.pdf")
//	}, "report.pdf", "", size)
//
// # Decorators
//
// WithHeaders, WithCookie, WithCache and WithHTMX return a copy of a response
// with extra headers. The variant, status and body are unchanged.
package response
