package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/middleware"
)

func TestCORSActualRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/data", nil)
	req.Header.Set("Origin", "https://app.example.com")

	handlerRan := false
	terminal := func(ctx *handler.Context) (any, error) {
		handlerRan = true
		return "ok", nil
	}

	ctx, res, err := runChain(t, middleware.CORS(), terminal, req)
	require.NoError(t, err)

	assert.True(t, handlerRan, "actual requests continue down the chain")
	assert.Equal(t, "ok", res)
	assert.Equal(t, "*", ctx.ResponseHeader().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, ctx.ResponseHeader().Values("Vary"), "Origin")
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/data", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom")

	handlerRan := false
	terminal := func(ctx *handler.Context) (any, error) {
		handlerRan = true
		return "ok", nil
	}

	mw := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"https://app.example.com"},
		MaxAge:       600,
	})
	ctx, res, err := runChain(t, mw, terminal, req)
	require.NoError(t, err)

	assert.False(t, handlerRan, "preflight must not reach the handler")
	assert.IsType(t, handler.Response(nil), res)

	h := ctx.ResponseHeader()
	assert.Equal(t, "https://app.example.com", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, HEAD, PUT, PATCH, POST, DELETE", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "X-Custom", h.Get("Access-Control-Allow-Headers"),
		"requested headers are echoed when none are configured")
	assert.Equal(t, "600", h.Get("Access-Control-Max-Age"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	t.Parallel()

	mw := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"https://app.example.com"},
	})

	t.Run("actual request continues without headers", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest("GET", "/data", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		ctx, res, err := runChain(t, mw, okHandler, req)
		require.NoError(t, err)
		assert.Equal(t, "ok", res)
		assert.Empty(t, ctx.ResponseHeader().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight refused without headers", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodOptions, "/data", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		req.Header.Set("Access-Control-Request-Method", "GET")

		handlerRan := false
		terminal := func(ctx *handler.Context) (any, error) {
			handlerRan = true
			return nil, nil
		}

		ctx, res, err := runChain(t, mw, terminal, req)
		require.NoError(t, err)
		assert.False(t, handlerRan)
		assert.NotNil(t, res)
		assert.Empty(t, ctx.ResponseHeader().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSNoOriginHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/data", nil)
	ctx, res, err := runChain(t, middleware.CORS(), okHandler, req)
	require.NoError(t, err)

	assert.Equal(t, "ok", res)
	assert.Empty(t, ctx.ResponseHeader().Get("Access-Control-Allow-Origin"),
		"same-origin requests get no CORS headers")
}

func TestCORSCredentials(t *testing.T) {
	t.Parallel()

	t.Run("explicit origin", func(t *testing.T) {
		t.Parallel()
		mw := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{"https://app.example.com"},
			AllowCredentials: true,
		})
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://app.example.com")

		ctx, _, err := runChain(t, mw, okHandler, req)
		require.NoError(t, err)
		assert.Equal(t, "true", ctx.ResponseHeader().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("ignored for wildcard", func(t *testing.T) {
		t.Parallel()
		mw := middleware.CORSWithConfig(middleware.CORSConfig{AllowCredentials: true})
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", "https://anything.example.com")

		ctx, _, err := runChain(t, mw, okHandler, req)
		require.NoError(t, err)
		assert.Empty(t, ctx.ResponseHeader().Get("Access-Control-Allow-Credentials"))
	})
}

func TestCORSAllowOriginFunc(t *testing.T) {
	t.Parallel()

	mw := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (string, bool) {
			return origin, origin == "https://trusted.example.com"
		},
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://trusted.example.com")

	ctx, _, err := runChain(t, mw, okHandler, req)
	require.NoError(t, err)
	assert.Equal(t, "https://trusted.example.com",
		ctx.ResponseHeader().Get("Access-Control-Allow-Origin"))
}
