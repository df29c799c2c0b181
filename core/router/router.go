package router

import (
	"fmt"
	"strings"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// Methods lists the HTTP methods the router accepts, and the set a
// catch-all registration covers.
var Methods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"}

// Entry records one registration. The router keeps entries in registration
// order so a table can be deterministically re-registered under a prefix.
type Entry struct {
	Method  string
	Pattern string
	Handler handler.HandlerFunc
}

// Router maps (method, path) to handlers. One trie per method, plus a flat
// exact-match table for patterns without params or wildcards. The flat table
// is a lookup accelerator only; every static route is also present in the
// trie, which stays the single source of truth.
//
// Registration must finish before the router is exposed to concurrent
// lookups: Register is not safe against concurrent Match. Match itself is a
// pure read and safe to share across requests.
type Router struct {
	trees  map[string]*tree
	static map[string]map[string]handler.HandlerFunc
	routes []Entry
}

// New creates an empty router.
func New() *Router {
	return &Router{
		trees:  make(map[string]*tree),
		static: make(map[string]map[string]handler.HandlerFunc),
	}
}

// Register adds a route. The method tree is created lazily on first use.
// Static patterns additionally populate the exact-match table; both tables
// are populated from this single call so they can never diverge.
func (r *Router) Register(method, pattern string, h handler.HandlerFunc) error {
	method = strings.ToUpper(method)
	if !validMethod(method) {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	if h == nil {
		return fmt.Errorf("%w: %s %q", ErrNilHandler, method, pattern)
	}

	t, ok := r.trees[method]
	if !ok {
		t = &tree{}
		r.trees[method] = t
	}
	if err := t.insert(pattern, h); err != nil {
		return err
	}

	if !strings.ContainsAny(pattern, ":*") {
		m, ok := r.static[method]
		if !ok {
			m = make(map[string]handler.HandlerFunc)
			r.static[method] = m
		}
		m[pattern] = h
	}

	r.routes = append(r.routes, Entry{Method: method, Pattern: pattern, Handler: h})
	return nil
}

// Match finds the handler for a concrete request path. The exact-match table
// is consulted first; a hit there carries no parameters by construction. The
// fast path and the trie agree for any genuinely static path.
func (r *Router) Match(method, path string) (handler.HandlerFunc, map[string]string, bool) {
	if m, ok := r.static[method]; ok {
		if h, ok := m[path]; ok {
			return h, nil, true
		}
	}

	t, ok := r.trees[method]
	if !ok {
		return nil, nil, false
	}
	return t.lookup(path)
}

// Routes returns all registrations in registration order.
func (r *Router) Routes() []Entry {
	out := make([]Entry, len(r.routes))
	copy(out, r.routes)
	return out
}

// Mount re-registers every route of sub with prefix prepended. There is no
// structural sharing: mounting is exactly equivalent to registering each
// route again under the longer pattern.
func (r *Router) Mount(prefix string, sub *Router) error {
	if prefix == "" || prefix[0] != '/' {
		return fmt.Errorf("%w: mount prefix %q", ErrInvalidPattern, prefix)
	}
	prefix = strings.TrimSuffix(prefix, "/")

	for _, e := range sub.Routes() {
		if err := r.Register(e.Method, prefix+e.Pattern, e.Handler); err != nil {
			return err
		}
	}
	return nil
}

func validMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}
