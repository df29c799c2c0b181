package handler

import "net/http"

// Response renders an HTTP response. It sets headers, status code, and writes
// the body. Rendering errors are handled by the dispatcher.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a matched request. The returned value is coerced by the
// dispatcher: nil becomes 204 No Content, a Response passes through unchanged,
// a string becomes text/plain, a []byte becomes application/octet-stream, and
// anything else is serialized as JSON.
type HandlerFunc func(ctx *Context) (any, error)

// Next resumes the middleware chain and yields the response value produced by
// the deeper links. It may be invoked at most once per middleware call;
// a second invocation fails the request with ErrReentrantNext.
type Next func() (any, error)

// Middleware is one link of the request chain. Code before the next call runs
// on the way in, code after it runs on the way out. Returning a non-nil value
// overrides whatever deeper links produced; returning nil keeps the deeper
// result. Not calling next short-circuits everything deeper, handler included.
type Middleware func(ctx *Context, next Next) (any, error)
