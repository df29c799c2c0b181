// Package server wraps http.Server with graceful shutdown, functional
// options and environment-driven configuration. The socket layer and wire
// parsing stay net/http's job; the framework core only hands it an
// http.Handler.
package server
