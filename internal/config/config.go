// Package config loads wishlist settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	Backend    string `env:"WISHLIST_BACKEND" envDefault:"file"`
	DataDir    string `env:"WISHLIST_DATA_DIR"`
	SQLitePath string `env:"WISHLIST_SQLITE_PATH"`
	KeyPrefix  string `env:"WISHLIST_KEY_PREFIX" envDefault:"wishlist_"`

	Redis RedisConfig

	LogLevel  string `env:"WISHLIST_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"WISHLIST_LOG_FORMAT" envDefault:"text"`

	Theme   string `env:"WISHLIST_THEME" envDefault:"classic"`
	NoColor bool   `env:"NO_COLOR"`
}

type RedisConfig struct {
	Addr     string `env:"WISHLIST_REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"WISHLIST_REDIS_PASSWORD"`
	DB       int    `env:"WISHLIST_REDIS_DB" envDefault:"0"`
}

// Load reads envFile (when it exists) into the process environment without
// overriding variables already set, then parses the environment.
// An empty envFile means ".env" in the working directory.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "wishlist.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("WISHLIST_BACKEND: unknown backend %q", c.Backend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("WISHLIST_LOG_LEVEL: unknown level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("WISHLIST_LOG_FORMAT: unknown format %q", c.LogFormat)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("WISHLIST_REDIS_DB: must be >= 0, got %d", c.Redis.DB)
	}
	return nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".wishlist"), nil
}
