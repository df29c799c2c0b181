package handler

import "errors"

var (
	// ErrReentrantNext indicates a middleware invoked its continuation more
	// than once. The chain refuses to re-enter deeper links.
	ErrReentrantNext = errors.New("middleware invoked next more than once")

	// ErrBodyConsumed is returned by body accessors after the request body
	// has already been read.
	ErrBodyConsumed = errors.New("request body already consumed")

	// ErrNilTerminal is returned when a chain is built without a terminal handler.
	ErrNilTerminal = errors.New("nil terminal handler")
)
