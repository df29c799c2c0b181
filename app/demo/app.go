// Package demo assembles a small task-list service out of the framework
// pieces: environment configuration, structured logging, the embedded
// database, routing with middleware and a metrics plugin. It doubles as a
// living usage example.
package demo

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	kyrin "github.com/kyrinjs/Kyrin"
	"github.com/kyrinjs/Kyrin/core/config"
	"github.com/kyrinjs/Kyrin/core/database"
	"github.com/kyrinjs/Kyrin/core/handler"
	"github.com/kyrinjs/Kyrin/core/logger"
	"github.com/kyrinjs/Kyrin/middleware"
)

type App struct {
	config Config
	db     *database.Client
	web    *kyrin.App
}

type AppOption func(*App) error

// NewApp builds the demo application from the environment. Options override
// the configured defaults.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.db == nil {
		db, err := database.OpenFromConfig(cfg.DB)
		if err != nil {
			return nil, err
		}
		app.db = db
	}
	if err := migrate(app.db); err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log).With("app", cfg.AppName, "env", cfg.Env)

	web := kyrin.New(kyrin.WithLogger(log))
	web.Use(
		middleware.RequestID(),
		middleware.LoggingWithLogger(log),
		middleware.Recover(),
		middleware.CORS(),
	)
	web.Register(statusCounter(log))

	registerRoutes(web, app.db)
	app.web = web

	return app, nil
}

// WithDatabase replaces the configured database, mainly for tests.
func WithDatabase(db *database.Client) AppOption {
	return func(app *App) error {
		if db == nil {
			return errors.New("database cannot be nil")
		}
		app.db = db
		return nil
	}
}

// Web exposes the underlying router application, so tests can drive it
// through httptest without a listener.
func (a *App) Web() *kyrin.App {
	return a.web
}

// Run serves the application until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()
	return a.web.Run(ctx, a.config.Server.Addr)
}

func migrate(db *database.Client) error {
	return db.Run(`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0
	)`)
}

// statusCounter tallies responses per status class and reports the counts
// through the logger on every 100th request.
func statusCounter(log *slog.Logger) kyrin.Plugin {
	var mu sync.Mutex
	counts := map[int]int{}
	total := 0
	return kyrin.Plugin{
		Name: "status-counter",
		OnResponse: func(ctx *handler.Context, status int) {
			mu.Lock()
			defer mu.Unlock()
			counts[status/100]++
			total++
			if total%100 == 0 {
				log.Info("response stats",
					"total", total,
					"2xx", counts[2],
					"4xx", counts[4],
					"5xx", counts[5],
				)
			}
		},
	}
}
