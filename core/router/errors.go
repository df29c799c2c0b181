package router

import "errors"

var (
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilHandler       = errors.New("nil route handler")
	ErrRouteConflict    = errors.New("route already registered")
	ErrWildcardPosition = errors.New("wildcard segment must be last")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
	ErrParamConflict    = errors.New("conflicting parameter names at the same position")
)
