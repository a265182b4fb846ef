package kvstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/carrental/config"
)

// Open builds the configured store. The returned close func releases the
// backend connection.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemory(), func() {}, nil
	case "redis":
		r := NewRedis(cfg.Redis)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return r, func() { _ = r.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		p := NewPostgres(pool)
		if err := p.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return p, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
