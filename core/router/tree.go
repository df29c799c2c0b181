package router

import (
	"fmt"
	"strings"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// The routing tree is a trie over path segments rather than a byte-compressed
// radix tree: siblings are keyed by exact segment text, which keeps branching
// bounded by segment granularity and the lookup loop trivial. Each node has
// any number of static children, at most one param child, and at most one
// wildcard child. Nodes are exclusively owned by their parent.

type node struct {
	static   map[string]*node
	param    *node
	wildcard *node

	// paramName is set on param children only
	paramName string

	// handler marks a terminal node for some registered pattern
	handler handler.HandlerFunc
	pattern string
}

type tree struct {
	root node
}

// splitPath splits a leading-slash path into segments. A trailing slash
// yields an empty final segment, which is matched literally: /users and
// /users/ are distinct and no normalization happens here.
func splitPath(path string) []string {
	return strings.Split(path[1:], "/")
}

// insert registers a pattern. Patterns mix static literals, :name params and
// at most one trailing * wildcard. Registration conflicts are reported, never
// silently merged: a duplicate terminal, a non-final wildcard, a duplicate
// param name within one pattern, and two different param names at the same
// tree position are all errors.
func (t *tree) insert(pattern string, h handler.HandlerFunc) error {
	if pattern == "" || pattern[0] != '/' {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	segs := splitPath(pattern)
	n := &t.root
	var seen []string

	for i, seg := range segs {
		switch {
		case seg == "*":
			if i != len(segs)-1 {
				return fmt.Errorf("%w: %q", ErrWildcardPosition, pattern)
			}
			if n.wildcard == nil {
				n.wildcard = &node{}
			}
			n = n.wildcard

		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			if name == "" || strings.ContainsAny(name, ":*") {
				return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
			}
			for _, s := range seen {
				if s == name {
					return fmt.Errorf("%w: %q has duplicate key %q", ErrDuplicateParam, pattern, name)
				}
			}
			seen = append(seen, name)
			if n.param == nil {
				n.param = &node{paramName: name}
			} else if n.param.paramName != name {
				return fmt.Errorf("%w: %q conflicts with existing %q in %q",
					ErrParamConflict, name, n.param.paramName, pattern)
			}
			n = n.param

		default:
			if strings.ContainsAny(seg, ":*") {
				return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
			}
			if n.static == nil {
				n.static = make(map[string]*node)
			}
			child, ok := n.static[seg]
			if !ok {
				child = &node{}
				n.static[seg] = child
			}
			n = child
		}
	}

	if n.handler != nil {
		return fmt.Errorf("%w: %q", ErrRouteConflict, pattern)
	}
	n.handler = h
	n.pattern = pattern
	return nil
}

// lookup walks the trie for a concrete path and returns the matched handler
// with its captured parameters. Lookups are pure reads over the tree and are
// safe to run concurrently once registration has finished.
func (t *tree) lookup(path string) (handler.HandlerFunc, map[string]string, bool) {
	if path == "" || path[0] != '/' {
		return nil, nil, false
	}

	var params map[string]string
	n := t.root.match(splitPath(path), &params)
	if n == nil {
		return nil, nil, false
	}
	return n.handler, params, true
}

// match tries children in priority order: exact static, then param, then
// wildcard. When a chosen branch dead-ends deeper down it backtracks to the
// next priority at this depth, so a more specific static route always beats
// a param or wildcard route regardless of registration order. Param bindings
// are written only on the success path, so backtracking never leaves stale
// captures behind.
func (n *node) match(segs []string, params *map[string]string) *node {
	if len(segs) == 0 {
		if n.handler != nil {
			return n
		}
		return nil
	}

	seg := segs[0]

	if child, ok := n.static[seg]; ok {
		if m := child.match(segs[1:], params); m != nil {
			return m
		}
	}

	// a param never captures the empty segment of a trailing slash
	if n.param != nil && seg != "" {
		if m := n.param.match(segs[1:], params); m != nil {
			bindParam(params, n.param.paramName, seg)
			return m
		}
	}

	if n.wildcard != nil && n.wildcard.handler != nil {
		bindParam(params, "*", strings.Join(segs, "/"))
		return n.wildcard
	}

	return nil
}

func bindParam(params *map[string]string, key, value string) {
	if *params == nil {
		*params = make(map[string]string)
	}
	(*params)[key] = value
}
