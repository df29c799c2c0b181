package middleware

import (
	"github.com/google/uuid"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// requestIDContextKey keys the request ID in the context value store.
type requestIDContextKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip bypasses the middleware for specific requests.
	Skip func(ctx *handler.Context) bool

	// Generator creates new request IDs (default: UUID v4).
	Generator func() string

	// HeaderName for the request ID (default: "X-Request-ID").
	HeaderName string

	// UseExisting reuses an incoming request ID header when present.
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration:
// a fresh UUID per request, exposed in the context store and staged as a
// response header.
func RequestID() handler.Middleware {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig(cfg RequestIDConfig) handler.Middleware {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		var id string
		if cfg.UseExisting {
			id = ctx.Header(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}

		ctx.SetValue(requestIDContextKey{}, id)
		ctx.SetHeader(cfg.HeaderName, id)

		return next()
	}
}

// GetRequestID retrieves the request ID stored by the middleware.
func GetRequestID(ctx *handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
