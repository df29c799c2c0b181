package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/response"
)

// CORSConfig configures Cross-Origin Resource Sharing handling.
type CORSConfig struct {
	// Skip bypasses CORS handling for specific requests.
	Skip func(ctx *handler.Context) bool

	// AllowOrigins specifies allowed origins. Defaults to ["*"].
	AllowOrigins []string

	// AllowMethods specifies allowed methods for preflight responses.
	// Defaults to GET, HEAD, PUT, PATCH, POST, DELETE.
	AllowMethods []string

	// AllowHeaders specifies allowed request headers for preflight
	// responses. When empty, the requested headers are echoed back.
	AllowHeaders []string

	// ExposeHeaders lists headers exposed to the client.
	ExposeHeaders []string

	// AllowCredentials permits cookies and authorization headers.
	// Ignored for the wildcard origin.
	AllowCredentials bool

	// MaxAge caches preflight results for the given number of seconds.
	MaxAge int

	// AllowOriginFunc overrides AllowOrigins with custom validation.
	// It returns the origin value to send back and whether it is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS creates a CORS middleware allowing all origins. Meant for development;
// production deployments should pass explicit origins via CORSWithConfig.
func CORS() handler.Middleware {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig creates a CORS middleware. Preflight OPTIONS requests are
// answered directly with 204, short-circuiting the rest of the chain; actual
// requests get their CORS headers staged on the context and continue.
func CORSWithConfig(cfg CORSConfig) handler.Middleware {
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"*"}
	}
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet, http.MethodHead, http.MethodPut,
			http.MethodPatch, http.MethodPost, http.MethodDelete,
		}
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		origin := ctx.Header("Origin")
		if origin == "" {
			return next()
		}

		allowed, ok := resolveOrigin(cfg, origin)
		preflight := ctx.Method() == http.MethodOptions &&
			ctx.Header("Access-Control-Request-Method") != ""

		if !ok {
			if preflight {
				// refuse the preflight without CORS headers
				return response.NoContent(), nil
			}
			return next()
		}

		ctx.SetHeader("Access-Control-Allow-Origin", allowed)
		ctx.AddHeader("Vary", "Origin")
		if cfg.AllowCredentials && allowed != "*" {
			ctx.SetHeader("Access-Control-Allow-Credentials", "true")
		}

		if !preflight {
			if len(cfg.ExposeHeaders) > 0 {
				ctx.SetHeader("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
			}
			return next()
		}

		ctx.SetHeader("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
		if len(cfg.AllowHeaders) > 0 {
			ctx.SetHeader("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
		} else if reqHeaders := ctx.Header("Access-Control-Request-Headers"); reqHeaders != "" {
			ctx.SetHeader("Access-Control-Allow-Headers", reqHeaders)
		}
		if cfg.MaxAge > 0 {
			ctx.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		return response.NoContent(), nil
	}
}

func resolveOrigin(cfg CORSConfig, origin string) (string, bool) {
	if cfg.AllowOriginFunc != nil {
		return cfg.AllowOriginFunc(origin)
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		return "*", true
	}
	if slices.Contains(cfg.AllowOrigins, origin) {
		return origin, true
	}
	return "", false
}
