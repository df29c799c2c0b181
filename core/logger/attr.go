package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety, so call sites
// never need explicit nil checks.

// Error creates an attribute for a single error under the key "error".
// Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the emitting subsystem.
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}

// Method creates an attribute for an HTTP method.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path creates an attribute for a request path.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Status creates an attribute for a response status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed logs the duration since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}
