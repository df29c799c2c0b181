// Package config provides type-safe environment variable loading with
// per-type caching. It autoloads .env files on first use and parses
// struct fields via caarlos0/env tags:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
