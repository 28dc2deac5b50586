package roster

import (
	"context"
	"fmt"

	"CasinoBlackjack/internal/storage"
)

// StoreConfig picks and reaches the saved game backend.
type StoreConfig struct {
	Kind     string // file | memory | redis | postgres
	SaveFile string
	Name     string // redis key suffix

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
}

// Open builds the Repo for c, bringing up the shared storage clients it needs.
func Open(ctx context.Context, c StoreConfig) (Repo, error) {
	switch c.Kind {
	case "", "file":
		return NewFileRepo(c.SaveFile), nil
	case "memory":
		return NewMemoryRepo(), nil
	case "redis":
		if err := storage.InitRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB); err != nil {
			return nil, fmt.Errorf("roster: redis: %w", err)
		}
		return NewRedisRepo(storage.Rdb, c.Name), nil
	case "postgres":
		if err := storage.InitPostgres(ctx, c.PostgresDSN); err != nil {
			return nil, fmt.Errorf("roster: postgres: %w", err)
		}
		if err := Migrate(ctx, storage.DB); err != nil {
			return nil, fmt.Errorf("roster: migrate: %w", err)
		}
		return NewPostgresRepo(storage.DB), nil
	}
	return nil, fmt.Errorf("roster: unknown store %q", c.Kind)
}
