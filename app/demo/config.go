package demo

import (
	"github.com/kyrinjs/Kyrin/core/database"
	"github.com/kyrinjs/Kyrin/core/logger"
	"github.com/kyrinjs/Kyrin/core/server"
)

type Config struct {
	DB     database.Config
	Log    logger.Config
	Server server.Config

	AppName string `env:"APP_NAME" envDefault:"kyrin-demo"`
	Env     string `env:"APP_ENV" envDefault:"development"`
}
