package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("nil config pointer")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> parsed value
)

// Load parses environment variables into cfg. A .env file, if present, is
// loaded once per process before the first parse. Each concrete type is
// parsed once and cached; later loads of the same type return the first
// result, so configuration is stable for the application lifetime.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse %T from environment: %w", cfg, err)
	}

	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load panicking on failure, for use at startup where a broken
// environment is fatal.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
