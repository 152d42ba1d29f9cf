// Package cache manages the Redis client used for rate limiting and health checks.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"prompthub/internal/middleware"
)

var client *redis.Client

// InitRedis connects to Redis at the given address. If the connection fails
// the application continues without Redis; consumers must tolerate a nil client.
func InitRedis(addr string) {
	client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection failed, continuing without it", slog.String("error", err.Error()))
		client = nil
		return
	}
	middleware.Logger.Info("Redis connected successfully")
}

// GetClient returns the shared Redis client, or nil when Redis is unavailable.
func GetClient() *redis.Client {
	return client
}
