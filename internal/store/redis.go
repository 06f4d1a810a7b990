package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client for cfg and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("error pinging redis at %s: %w", cfg.Address, err)
	}

	log.Info().Str("address", cfg.Address).Int("db", cfg.DB).Msg("connected to redis")
	return rdb, nil
}
