package response

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXBoosted  = "HX-Boosted"
	HeaderHXLocation = "HX-Location"
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// HTMXOption sets one HTMX response header.
type HTMXOption func(*htmxHeaders)

type htmxHeaders struct {
	set      map[string]string
	location any
	events   map[string]any
}

// WithHTMX returns a copy of resp carrying the HTMX headers built by opts.
// Values that cannot be encoded as JSON are left out.
func WithHTMX(resp Response, opts ...HTMXOption) Response {
	if len(opts) == 0 {
		return resp
	}
	hx := htmxHeaders{set: make(map[string]string, len(opts))}
	for _, opt := range opts {
		opt(&hx)
	}
	switch v := hx.location.(type) {
	case nil:
	case string:
		hx.set[HeaderHXLocation] = v
	default:
		if data, err := json.Marshal(v); err == nil {
			hx.set[HeaderHXLocation] = string(data)
		}
	}
	if len(hx.events) > 0 {
		if data, err := json.Marshal(hx.events); err == nil {
			hx.set[HeaderHXTrigger] = string(data)
		}
	}
	return WithHeaders(resp, hx.set)
}

// Trigger fires a client event named name with detail once the response is
// swapped in. Repeated options accumulate events.
func Trigger(name string, detail any) HTMXOption {
	return func(hx *htmxHeaders) {
		if hx.events == nil {
			hx.events = make(map[string]any)
		}
		hx.events[name] = detail
	}
}

// PushURL pushes url onto the browser history. "false" disables pushing.
func PushURL(url string) HTMXOption {
	return func(hx *htmxHeaders) {
		hx.set[HeaderHXPushURL] = url
	}
}

// Reswap overrides the swap strategy, e.g. Reswap("outerHTML", "swap:500ms").
func Reswap(method string, modifiers ...string) HTMXOption {
	return func(hx *htmxHeaders) {
		hx.set[HeaderHXReswap] = strings.Join(append([]string{method}, modifiers...), " ")
	}
}

// Retarget swaps the response into the element matched by selector.
func Retarget(selector string) HTMXOption {
	return func(hx *htmxHeaders) {
		hx.set[HeaderHXRetarget] = selector
	}
}

// Location navigates without a full reload. target is a URL string or a
// location object such as map[string]any{"path": "/x", "target": "#main"}.
func Location(target any) HTMXOption {
	return func(hx *htmxHeaders) {
		hx.location = target
	}
}

// IsHTMXRequest reports whether r was sent by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsHTMXBoosted reports whether r comes from a boosted link or form.
func IsHTMXBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// Fragment answers HTMX requests with fragment and everything else, boosted
// navigation included, with page. Both are sent as HTML.
func Fragment(r *http.Request, page, fragment string) Response {
	if IsHTMXRequest(r) && !IsHTMXBoosted(r) {
		return OK(HTML(fragment))
	}
	return OK(HTML(page))
}

// HTMXRedirect makes the client perform a full page load of url.
func HTMXRedirect(url string) Response {
	return Raw(http.StatusOK, http.StatusText(http.StatusOK), map[string]string{HeaderHXRedirect: url}, nil)
}

// HTMXRefresh makes the client reload the current page.
func HTMXRefresh() Response {
	return Raw(http.StatusOK, http.StatusText(http.StatusOK), map[string]string{HeaderHXRefresh: "true"}, nil)
}
