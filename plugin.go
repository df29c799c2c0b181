package kyrin

import "github.com/kyrinjs/Kyrin/core/handler"

// Plugin bundles the optional hooks an extension can contribute. Every field
// may be nil; a zero Plugin is a no-op.
type Plugin struct {
	// Name identifies the plugin in logs.
	Name string

	// Middleware joins the request chain after globally registered
	// middleware, in plugin registration order.
	Middleware handler.Middleware

	// OnRequest runs before route matching. Returning a non-nil value
	// short-circuits dispatch: the value is coerced and written exactly
	// like a handler result, and neither routing nor the chain runs.
	OnRequest func(ctx *handler.Context) (any, error)

	// OnResponse runs after a response has been written, with the final
	// status code. It observes only; the response cannot be replaced here.
	OnResponse func(ctx *handler.Context, status int)
}
