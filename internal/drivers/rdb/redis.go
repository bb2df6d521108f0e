package rdb

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vlatan/transcript-relay/internal/config"
)

type Service struct {
	Client *redis.Client
}

// New creates a Redis client for the configured address.
// No connection is made until the first command.
func New(cfg *config.Config) (*Service, error) {

	if cfg == nil {
		return nil, errors.New("unable to create Redis service with nil config")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return &Service{rdb}, nil
}

// Health pings Redis and reports its state in one round trip.
// The timeout keeps the health page responsive when Redis hangs.
func (rs *Service) Health(ctx context.Context) map[string]any {

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	start := time.Now()

	pipe := rs.Client.Pipeline()
	ping := pipe.Ping(ctx)
	size := pipe.DBSize(ctx)
	serverTime := pipe.Time(ctx)

	if _, err := pipe.Exec(ctx); err != nil {
		return map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		}
	}

	return map[string]any{
		"status":      "healthy",
		"ping":        ping.Val(),
		"response_ms": time.Since(start).Milliseconds(),
		"total_keys":  size.Val(),
		"server_time": serverTime.Val().Unix(),
	}
}

// Close closes the Redis client
func (rs *Service) Close() error {
	return rs.Client.Close()
}
