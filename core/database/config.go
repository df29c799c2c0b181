package database

import (
	"fmt"
	"time"
)

// Config holds database settings with environment variable mapping.
type Config struct {
	Path        string        `env:"DATABASE_PATH" envDefault:"kyrin.db"`
	BusyTimeout time.Duration `env:"DATABASE_BUSY_TIMEOUT" envDefault:"5s"`
}

// DSN renders the connection string for the embedded driver.
func (c Config) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", c.Path, c.BusyTimeout.Milliseconds())
}
