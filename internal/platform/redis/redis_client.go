// Package redis creates the Redis client used by the ephemeris cache.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"astrology_backend/internal/platform/config"
)

// NewRedisClient connects to Redis and verifies the connection with PING.
// It returns nil, nil when no host is configured so callers can run without a cache.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		slog.Info("Redis disabled, ephemeris cache off")
		return nil, nil
	}
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
