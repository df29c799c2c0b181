// Package handler defines the request-handling contracts of the framework:
// the per-request Context, the HandlerFunc and Middleware function shapes,
// and the Chain that composes middleware around a terminal handler.
//
// Middleware follows the onion model. Each link receives the context and a
// continuation; work before the continuation call runs outer-to-inner, work
// after it runs inner-to-outer:
//
//	func timing(ctx *handler.Context, next handler.Next) (any, error) {
//		start := time.Now()
//		res, err := next()
//		log.Printf("took %s", time.Since(start))
//		return res, err
//	}
//
// A middleware may short-circuit by returning a value without calling next,
// or override the deeper result by returning a non-nil value after next
// completes. Calling next more than once fails the request.
package handler
