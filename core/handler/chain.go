package handler

import "fmt"

// Chain composes an ordered middleware stack around a terminal handler.
// Build once at startup, run once per request; all per-run state lives on
// the stack of Run, so a single Chain is safe for concurrent requests.
type Chain struct {
	links    []Middleware
	terminal HandlerFunc
}

// NewChain builds a chain from the given links and terminal handler.
// Links execute in slice order on the way in and reverse order on the way out.
func NewChain(links []Middleware, terminal HandlerFunc) *Chain {
	return &Chain{links: links, terminal: terminal}
}

// Run executes the chain for one request. The returned value is the last
// response assigned by any link: the terminal handler's result unless an
// outer middleware overrides it with a non-nil return after its continuation
// completes, or short-circuits without calling the continuation at all.
func (c *Chain) Run(ctx *Context) (any, error) {
	if c.terminal == nil {
		return nil, ErrNilTerminal
	}

	// The cursor only ever moves forward. A middleware calling its
	// continuation twice would re-enter an index already dispatched.
	index := -1
	var result any

	var dispatch func(i int) (any, error)
	dispatch = func(i int) (any, error) {
		if i <= index {
			return nil, fmt.Errorf("%w: link %d", ErrReentrantNext, i)
		}
		index = i

		if i == len(c.links) {
			res, err := c.terminal(ctx)
			if err != nil {
				return nil, err
			}
			result = res
			return res, nil
		}

		res, err := c.links[i](ctx, func() (any, error) {
			return dispatch(i + 1)
		})
		if err != nil {
			return nil, err
		}
		if res != nil {
			result = res
		}
		return result, nil
	}

	if _, err := dispatch(0); err != nil {
		return nil, err
	}
	return result, nil
}
