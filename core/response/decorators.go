package response

import (
	"net/http"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// WithHeaders wraps a response with extra HTTP headers, set before the
// wrapped response renders.
func WithHeaders(resp handler.Response, headers map[string]string) handler.Response {
	if resp == nil || len(headers) == 0 {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		return resp(w, r)
	}
}

// WithCookie wraps a response with a Set-Cookie header.
func WithCookie(resp handler.Response, cookie *http.Cookie) handler.Response {
	if resp == nil || cookie == nil {
		return resp
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		http.SetCookie(w, cookie)
		return resp(w, r)
	}
}
