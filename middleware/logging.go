package middleware

import (
	"log/slog"
	"time"

	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip bypasses logging for specific requests, e.g. health checks.
	Skip func(ctx *handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo).
	LogLevel slog.Level

	// SlowRequestThreshold logs slower requests at warning level (default: 5s).
	SlowRequestThreshold time.Duration

	// Component name attached to every record (default: "http").
	Component string
}

// Logging creates a request logging middleware with default configuration.
func Logging() handler.Middleware {
	return LoggingWithConfig(LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger(log *slog.Logger) handler.Middleware {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware. It logs method,
// path, duration and the chain's error, if any. Errors are logged and
// propagated unchanged so the dispatcher still produces the 500.
func LoggingWithConfig(cfg LoggingConfig) handler.Middleware {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(ctx *handler.Context, next handler.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return next()
		}

		start := time.Now()
		res, err := next()
		elapsed := time.Since(start)

		attrs := []any{
			logger.Component(cfg.Component),
			logger.Method(ctx.Method()),
			logger.Path(ctx.Path()),
			logger.Duration(elapsed),
		}

		switch {
		case err != nil:
			cfg.Logger.Error("request failed", append(attrs, logger.Error(err))...)
		case elapsed > cfg.SlowRequestThreshold:
			cfg.Logger.Warn("slow request", attrs...)
		default:
			cfg.Logger.Log(ctx, cfg.LogLevel, "request completed", attrs...)
		}

		return res, err
	}
}
