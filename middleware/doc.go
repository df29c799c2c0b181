// Package middleware provides chain links for cross-cutting concerns:
// request logging, request IDs, CORS and panic recovery. Each follows the
// Config/WithConfig convention; the zero config gives sensible defaults.
package middleware
