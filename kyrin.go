package kyrin

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/router"
	"github.com/kyrinjs/Kyrin/core/server"
)

// App ties the router, the global middleware chain and registered plugins
// together. Configure it fully before serving traffic: registration is not
// safe against concurrent dispatch.
type App struct {
	router      *router.Router
	middlewares []handler.Middleware
	plugins     []Plugin
	log         *slog.Logger
}

// Option configures an App during creation.
type Option func(*App)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithMiddleware adds global middleware during creation.
func WithMiddleware(mw ...handler.Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// New creates an App with the given options. The default logger discards
// everything.
func New(opts ...Option) *App {
	a := &App{
		router: router.New(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Use appends global middleware. Middleware runs in registration order on
// the way in and reverse order on the way out, for every matched route.
func (a *App) Use(mw ...handler.Middleware) {
	a.middlewares = append(a.middlewares, mw...)
}

// Register adds plugins. A plugin's middleware joins the chain after global
// middleware; its hooks run around dispatch in registration order.
func (a *App) Register(plugins ...Plugin) {
	a.plugins = append(a.plugins, plugins...)
}

// On registers a handler for one method and pattern. Registration problems
// are startup misconfiguration and panic.
func (a *App) On(method, pattern string, h handler.HandlerFunc) {
	if err := a.router.Register(method, pattern, h); err != nil {
		panic(err)
	}
}

// Get registers a handler for GET requests.
func (a *App) Get(pattern string, h handler.HandlerFunc) { a.On("GET", pattern, h) }

// Post registers a handler for POST requests.
func (a *App) Post(pattern string, h handler.HandlerFunc) { a.On("POST", pattern, h) }

// Put registers a handler for PUT requests.
func (a *App) Put(pattern string, h handler.HandlerFunc) { a.On("PUT", pattern, h) }

// Delete registers a handler for DELETE requests.
func (a *App) Delete(pattern string, h handler.HandlerFunc) { a.On("DELETE", pattern, h) }

// Patch registers a handler for PATCH requests.
func (a *App) Patch(pattern string, h handler.HandlerFunc) { a.On("PATCH", pattern, h) }

// Options registers a handler for OPTIONS requests.
func (a *App) Options(pattern string, h handler.HandlerFunc) { a.On("OPTIONS", pattern, h) }

// Head registers a handler for HEAD requests.
func (a *App) Head(pattern string, h handler.HandlerFunc) { a.On("HEAD", pattern, h) }

// All registers the same handler for every supported method.
func (a *App) All(pattern string, h handler.HandlerFunc) {
	for _, m := range router.Methods {
		a.On(m, pattern, h)
	}
}

// Routes returns all registrations in registration order.
func (a *App) Routes() []router.Entry {
	return a.router.Routes()
}

// Route mounts a sub-app under prefix by re-registering each of its routes
// with the prefix prepended. The sub-app's own middleware is preserved by
// composing it into each re-registered handler; its plugins are not carried
// over.
func (a *App) Route(prefix string, sub *App) {
	if sub == nil {
		panic(errors.New("kyrin: nil sub-app"))
	}

	for _, e := range sub.router.Routes() {
		h := e.Handler
		if len(sub.middlewares) > 0 {
			h = handler.NewChain(sub.middlewares, e.Handler).Run
		}
		a.On(e.Method, joinPattern(prefix, e.Pattern), h)
	}
}

// Run serves the app on addr until ctx is canceled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context, addr string) error {
	srv := server.New(addr, server.WithLogger(a.log))

	err := srv.Start(ctx, a)
	if errors.Is(err, context.Canceled) {
		return srv.Stop()
	}
	return err
}

func joinPattern(prefix, pattern string) string {
	if len(prefix) > 1 && prefix[len(prefix)-1] == '/' {
		prefix = prefix[:len(prefix)-1]
	}
	if prefix == "/" {
		return pattern
	}
	return prefix + pattern
}
