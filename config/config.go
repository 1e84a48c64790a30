package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"3002"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	Redis    Redis
	Elastic  Elastic
	Docs     Docs
}

type Redis struct {
	URL             string `env:"REDIS_URL"`
	MaxNumberCached int    `env:"REDIS_MAX_CACHED" envDefault:"3"`
}

type Elastic struct {
	URL       string `env:"ELASTIC_URL"`
	IndexName string `env:"ELASTIC_INDEX" envDefault:"books"`
}

type Docs struct {
	Title   string `env:"DOCS_TITLE" envDefault:"Books API Documentation"`
	Version string `env:"DOCS_VERSION" envDefault:"1.0.0"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}

	if cfg.Redis.MaxNumberCached <= 0 {
		return nil, fmt.Errorf("invalid REDIS_MAX_CACHED %d", cfg.Redis.MaxNumberCached)
	}

	return cfg, nil
}

// Addr is the host:port the server listens on.
func (cfg *Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
