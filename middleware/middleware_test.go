package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kyrinjs/Kyrin/core/handler"
)

// runChain executes a single middleware around a terminal handler for the
// given request and returns the context alongside the chain's outcome.
func runChain(t *testing.T, mw handler.Middleware, terminal handler.HandlerFunc, r *http.Request) (*handler.Context, any, error) {
	t.Helper()
	ctx := handler.NewContext(httptest.NewRecorder(), r, nil)
	res, err := handler.NewChain([]handler.Middleware{mw}, terminal).Run(ctx)
	return ctx, res, err
}

func okHandler(ctx *handler.Context) (any, error) {
	return "ok", nil
}
