package middleware_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/middleware"
)

func TestRecoverConvertsPanicToError(t *testing.T) {
	t.Parallel()

	terminal := func(ctx *handler.Context) (any, error) {
		panic("something broke")
	}

	req := httptest.NewRequest("GET", "/", nil)
	_, res, err := runChain(t, middleware.Recover(), terminal, req)

	require.Error(t, err)
	assert.Nil(t, res)

	var pe middleware.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "something broke", pe.Value())
	assert.NotEmpty(t, pe.Stack())
	assert.Contains(t, err.Error(), "something broke")
}

func TestRecoverUnwrapsErrorPanics(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("wrapped cause")
	terminal := func(ctx *handler.Context) (any, error) {
		panic(sentinel)
	}

	req := httptest.NewRequest("GET", "/", nil)
	_, _, err := runChain(t, middleware.Recover(), terminal, req)

	assert.ErrorIs(t, err, sentinel, "error panics stay reachable via errors.Is")
}

func TestRecoverPassesThroughNormally(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/", nil)
	_, res, err := runChain(t, middleware.Recover(), okHandler, req)

	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestRecoverKeepsOuterMiddlewareOnUnwind(t *testing.T) {
	t.Parallel()

	sawError := false
	observer := func(ctx *handler.Context, next handler.Next) (any, error) {
		res, err := next()
		if err != nil {
			sawError = true
		}
		return res, err
	}
	terminal := func(ctx *handler.Context) (any, error) {
		panic("late failure")
	}

	req := httptest.NewRequest("GET", "/", nil)
	ctx := handler.NewContext(httptest.NewRecorder(), req, nil)
	chain := handler.NewChain([]handler.Middleware{observer, middleware.Recover()}, terminal)
	_, err := chain.Run(ctx)

	require.Error(t, err)
	assert.True(t, sawError, "the panic reaches outer middleware as an error, not a panic")
}
