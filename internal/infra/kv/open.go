package kv

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/bryanwahyu/truthlens/internal/config"
	domkv "github.com/bryanwahyu/truthlens/internal/domain/kv"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/memory"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/mysql"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/postgres"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/redis"
	"github.com/bryanwahyu/truthlens/internal/infra/kv/sqlite"
)

// Open returns the backend named by cfg.KV.Driver.
func Open(ctx context.Context, cfg *config.Config) (domkv.Store, error) {
	switch cfg.KV.Driver {
	case "", "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.Open(ctx, cfg.KV.DSN)
	case "mysql":
		return mysql.Connect(ctx, cfg.KV.DSN)
	case "redis":
		return redis.Connect(ctx, cfg.KV.DSN)
	case "sqlite":
		path := cfg.KV.DSN
		if path == "" {
			path = "truthlens.db"
		}
		return sqlite.Open(ctx, path)
	default:
		return nil, eris.Errorf("unknown kv driver %q", cfg.KV.Driver)
	}
}
