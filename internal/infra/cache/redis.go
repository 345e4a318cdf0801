package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/uniteam-dev/uniteam/internal/config"
)

// New builds the redis client used by the backup progress store.
func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}
