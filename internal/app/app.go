// Package app wires configuration to a storage backend and a repository.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/wishlist/internal/config"
	"github.com/idilsaglam/wishlist/internal/repository"
	"github.com/idilsaglam/wishlist/internal/store"
	"github.com/idilsaglam/wishlist/internal/store/jsonstore"
	"github.com/idilsaglam/wishlist/internal/store/memory"
	"github.com/idilsaglam/wishlist/internal/store/redisstore"
	"github.com/idilsaglam/wishlist/internal/store/sqlite"
)

type App struct {
	Config *config.Config
	Repo   *repository.Repository
	Log    *slog.Logger
	store  store.Store
}

// Open connects the configured backend.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	kv, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("storage opened", "backend", cfg.Backend, "prefix", cfg.KeyPrefix)

	repo := repository.New(kv,
		repository.WithKeyPrefix(cfg.KeyPrefix),
		repository.WithLogger(log),
	)
	return &App{Config: cfg, Repo: repo, Log: log, store: kv}, nil
}

// OpenStore returns the backend named by cfg.Backend.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendFile:
		s, err := jsonstore.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		s, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

func (a *App) Close() error {
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}
