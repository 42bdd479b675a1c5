package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wishlist/internal/config"
	"github.com/idilsaglam/wishlist/internal/model"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestOpen_EachBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	cases := map[string]*config.Config{
		config.BackendFile:   {Backend: config.BackendFile, DataDir: filepath.Join(dir, "files"), KeyPrefix: "wishlist_"},
		config.BackendSQLite: {Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "w.db"), KeyPrefix: "wishlist_"},
		config.BackendRedis:  {Backend: config.BackendRedis, Redis: config.RedisConfig{Addr: mr.Addr()}, KeyPrefix: "wishlist_"},
		config.BackendMemory: {Backend: config.BackendMemory, KeyPrefix: "wishlist_"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a, err := Open(ctx, cfg, discard())
			require.NoError(t, err)
			defer a.Close()

			saved, err := a.Repo.Upsert(ctx, model.Item{Name: "Headphones", Category: "electronics"})
			require.NoError(t, err)
			got, ok := a.Repo.Get(ctx, saved.ID)
			require.True(t, ok)
			assert.Equal(t, saved, got)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "files", "wishlist_items.json"))
	require.NoError(t, err, "file backend writes <prefix>items.json")
	assert.True(t, mr.Exists("wishlist_items"))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Backend: "tape"}, discard())
	require.Error(t, err)
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendRedis, Redis: config.RedisConfig{Addr: "127.0.0.1:1"}}
	_, err := Open(context.Background(), cfg, discard())
	require.Error(t, err)
}

func TestOpenStore_SQLiteOnFreshDataDir(t *testing.T) {
	cfg := &config.Config{Backend: config.BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "fresh", "wishlist.db")}
	s, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	_, err = os.Stat(cfg.SQLitePath)
	require.NoError(t, err)
}
