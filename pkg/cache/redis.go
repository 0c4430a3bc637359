package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"movie-favorites/pkg/utils"
)

// NewRedisClient builds a client from config. Returns nil when no address
// is configured or the server cannot be reached, so callers degrade to
// uncached operation instead of failing startup.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, response cache disabled",
			zap.String("addr", config.Addr),
			zap.Error(err),
		)
		return nil
	}

	log.Info("Redis connected", zap.String("addr", config.Addr))
	return client
}
