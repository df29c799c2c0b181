// Package logger builds slog loggers from environment-driven configuration
// and provides nil-safe attribute helpers shared across the framework.
package logger
