// Package kyrin is a minimal HTTP server framework built around three pieces:
// a segment-trie router with a static fast path, an onion-model middleware
// chain with single-invocation continuations, and a dispatcher that coerces
// handler return values into wire responses.
//
// A handler returns a plain value and the dispatcher does the rest:
//
//	app := kyrin.New()
//	app.Get("/users/:id", func(ctx *handler.Context) (any, error) {
//		return map[string]any{"id": ctx.Param("id")}, nil // application/json
//	})
//	app.Get("/ping", func(ctx *handler.Context) (any, error) {
//		return "pong", nil // text/plain
//	})
//	err := app.Run(ctx, ":8080")
//
// Strings become text/plain, nil becomes 204 No Content, prebuilt responses
// from the core/response package pass through unchanged, and everything else
// is serialized as JSON. Unmatched routes yield a canonical 404; any panic or
// error raised inside the chain is contained and becomes a canonical 500.
//
// Package organization follows core/* for framework building blocks
// (handler, router, response, config, logger, server, database) with
// cross-cutting request middleware under middleware/.
package kyrin
