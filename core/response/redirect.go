package response

import (
	"net/http"
)

// Redirect creates a 301 Moved Permanently response.
func Redirect(url string) Response {
	return MovedPermanently(url)
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
// 301 maps to MovedPermanently; other codes become a Raw response with a
// Location header. A status outside 3xx falls back to 302 Found.
func RedirectWithStatus(url string, status int) Response {
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	if status == http.StatusMovedPermanently {
		return MovedPermanently(url)
	}
	return Raw(status, http.StatusText(status), map[string]string{"Location": url}, nil)
}

// RedirectSeeOther creates a 303 See Other response, used after a POST.
func RedirectSeeOther(url string) Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectTemporary creates a 307 Temporary Redirect response.
// Unlike 302, this preserves the request method.
func RedirectTemporary(url string) Response {
	return RedirectWithStatus(url, http.StatusTemporaryRedirect)
}

// RedirectFor creates a redirect suited to r. HTMX requests get 200 OK with
// an HX-Location header, since HTMX follows redirects transparently.
func RedirectFor(r *http.Request, url string, status int) Response {
	if IsHTMXRequest(r) {
		return Raw(http.StatusOK, http.StatusText(http.StatusOK), map[string]string{HeaderHXLocation: url}, nil)
	}
	return RedirectWithStatus(url, status)
}
