// Package response provides builders for the concrete responses handlers
// return: plain text, HTML, JSON, redirects, raw bytes and empty statuses,
// plus decorators for headers and cookies.
//
// A builder returns a handler.Response, which the dispatcher passes through
// unchanged during coercion. Handlers that return plain values instead rely
// on the dispatcher to pick the matching builder for them.
package response
