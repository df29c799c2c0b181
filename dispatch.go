package kyrin

import (
	"net/http"
	"runtime/debug"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/logger"
	"github.com/kyrinjs/Kyrin/core/response"
)

const (
	notFoundBody    = "Not Found"
	serverErrorBody = "Internal Server Error"
)

// ServeHTTP dispatches one request: plugin onRequest hooks, route matching,
// chain execution, response coercion, onResponse hooks. Every failure raised
// by middleware or handlers is contained here and turned into a 500; nothing
// escapes to the transport layer.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// Matching uses the path only; the query string never participates.
	// RawPath is preferred when present to preserve URL encoding.
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	ctx := handler.NewContext(ww, r, nil)

	defer func() {
		if p := recover(); p != nil {
			a.log.Error("panic during dispatch",
				logger.Method(r.Method),
				logger.Path(path),
				"panic", p,
				"stack", string(debug.Stack()),
			)
			a.fail(ww)
		}
	}()

	// onRequest hooks run before matching and may short-circuit.
	for _, p := range a.plugins {
		if p.OnRequest == nil {
			continue
		}
		res, err := p.OnRequest(ctx)
		if err != nil {
			a.log.Error("plugin onRequest failed",
				logger.Method(r.Method), logger.Path(path),
				logger.Component(p.Name), logger.Error(err))
			a.fail(ww)
			a.observe(ctx, ww)
			return
		}
		if res != nil {
			a.render(ctx, ww, res)
			a.observe(ctx, ww)
			return
		}
	}

	h, params, ok := a.router.Match(r.Method, path)
	if !ok {
		// NotFound is a routing-level outcome; the chain never runs.
		a.render(ctx, ww, response.StringWithStatus(notFoundBody, http.StatusNotFound))
		a.observe(ctx, ww)
		return
	}
	ctx.SetParams(params)

	links := a.middlewares
	for _, p := range a.plugins {
		if p.Middleware != nil {
			links = append(links[:len(links):len(links)], p.Middleware)
		}
	}

	result, err := handler.NewChain(links, h).Run(ctx)
	if err != nil {
		a.log.Error("request failed",
			logger.Method(r.Method), logger.Path(path), logger.Error(err))
		a.fail(ww)
		a.observe(ctx, ww)
		return
	}

	a.render(ctx, ww, result)
	a.observe(ctx, ww)
}

// render coerces a handler result into a concrete response, applies the
// context's staged headers and writes it. A rendering failure still becomes
// a 500 when nothing has been written yet.
func (a *App) render(ctx *handler.Context, ww *responseWriter, result any) {
	resp := coerce(ctx, result)

	for k, vs := range ctx.ResponseHeader() {
		for _, v := range vs {
			ww.Header().Add(k, v)
		}
	}

	if err := resp(ww, ctx.Request()); err != nil {
		a.log.Error("response rendering failed",
			logger.Method(ctx.Method()), logger.Path(ctx.Path()), logger.Error(err))
		a.fail(ww)
	}
}

// coerce maps a terminal result to a concrete response. Middleware-produced
// responses are already concrete and pass through the Response arm.
func coerce(ctx *handler.Context, result any) handler.Response {
	switch v := result.(type) {
	case nil:
		return response.NoContent()
	case handler.Response:
		return v
	case func(http.ResponseWriter, *http.Request) error:
		return v
	case string:
		return response.StringWithStatus(v, ctx.Status())
	case []byte:
		return response.BytesWithStatus(v, "application/octet-stream", ctx.Status())
	default:
		return response.JSONWithStatus(v, ctx.Status())
	}
}

// fail writes the canonical 500 unless a response is already on the wire.
func (a *App) fail(ww *responseWriter) {
	if ww.Written() {
		return
	}
	ww.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ww.WriteHeader(http.StatusInternalServerError)
	_, _ = ww.Write([]byte(serverErrorBody))
}

// observe notifies onResponse hooks with the final status.
func (a *App) observe(ctx *handler.Context, ww *responseWriter) {
	for _, p := range a.plugins {
		if p.OnResponse != nil {
			p.OnResponse(ctx, ww.Status())
		}
	}
}
