package database

import (
	"context"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedis connects the session store. Master working copies, conversion
// records and progress keys all live here with TTLs.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
