package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Context is the per-request object threading the incoming request, extracted
// route parameters, a free-form value store for middleware-to-handler
// communication, and the staged response state consulted during coercion.
// A Context belongs to exactly one request and needs no synchronization.
type Context struct {
	w http.ResponseWriter
	r *http.Request

	params map[string]string
	values map[any]any

	// query is parsed at most once, no matter how many accessors touch it
	query       url.Values
	queryParsed bool

	status       int
	header       http.Header
	bodyConsumed bool
}

// NewContext builds a context for one request. Params may be nil; the
// dispatcher binds them after route matching via SetParams.
func NewContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{w: w, r: r, params: params}
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns a value stored with SetValue, falling back to the request's
// context for keys this context does not own.
func (c *Context) Value(key any) any {
	if v, ok := c.values[key]; ok {
		return v
	}
	return c.r.Context().Value(key)
}

// SetValue stores a request-scoped value visible to deeper chain links.
func (c *Context) SetValue(key, val any) {
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Request returns the underlying *http.Request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the underlying http.ResponseWriter. Most handlers
// should return a value instead and let the dispatcher render it.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request path without the query string.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// Param returns the captured route parameter by name, or "" when absent.
// The wildcard remainder is available under the key "*".
func (c *Context) Param(key string) string {
	return c.params[key]
}

// SetParams binds the matched route parameters. Called by the dispatcher
// once routing has succeeded.
func (c *Context) SetParams(params map[string]string) {
	c.params = params
}

// Query returns the query-string value by key, or "" when absent.
// The query string is parsed lazily and memoized on first access.
func (c *Context) Query(key string) string {
	return c.QueryValues().Get(key)
}

// QueryValues returns all parsed query parameters.
func (c *Context) QueryValues() url.Values {
	if !c.queryParsed {
		c.query, _ = url.ParseQuery(c.r.URL.RawQuery)
		c.queryParsed = true
	}
	return c.query
}

// Header returns a request header value by name, or "" when absent.
func (c *Context) Header(key string) string {
	return c.r.Header.Get(key)
}

// SetStatus stages the response status code used when the handler's return
// value is coerced. Prebuilt responses ignore it.
func (c *Context) SetStatus(code int) {
	c.status = code
}

// Status returns the staged status code, 0 when unset.
func (c *Context) Status() int {
	return c.status
}

// SetHeader stages a response header, replacing previous values for the key.
// Staged headers are applied before the response body is rendered.
func (c *Context) SetHeader(key, value string) {
	c.ResponseHeader().Set(key, value)
}

// AddHeader stages an additional response header value for the key.
func (c *Context) AddHeader(key, value string) {
	c.ResponseHeader().Add(key, value)
}

// ResponseHeader returns the staged response header map, allocating it on
// first use.
func (c *Context) ResponseHeader() http.Header {
	if c.header == nil {
		c.header = make(http.Header)
	}
	return c.header
}

// Body reads and returns the whole request body. The body may be consumed at
// most once per request; subsequent reads fail with ErrBodyConsumed.
func (c *Context) Body() ([]byte, error) {
	if c.bodyConsumed {
		return nil, ErrBodyConsumed
	}
	c.bodyConsumed = true
	if c.r.Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.r.Body)
}

// BodyText reads the request body as a string. Counts as the single body read.
func (c *Context) BodyText() (string, error) {
	b, err := c.Body()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// BindJSON decodes the request body into dst. Counts as the single body read.
func (c *Context) BindJSON(dst any) error {
	b, err := c.Body()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// FormData parses the request body as form data. Counts as the single body read.
func (c *Context) FormData() (url.Values, error) {
	if c.bodyConsumed {
		return nil, ErrBodyConsumed
	}
	c.bodyConsumed = true
	if err := c.r.ParseForm(); err != nil {
		return nil, err
	}
	return c.r.PostForm, nil
}
