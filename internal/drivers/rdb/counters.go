package rdb

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Incr increments a counter by one
func (rs *Service) Incr(ctx context.Context, key string) error {
	if err := rs.Client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to increment '%s'; %w", key, err)
	}
	return nil
}

// Counters gets the values of the counters in one round trip.
// Missing counters are zero.
func (rs *Service) Counters(ctx context.Context, keys ...string) (map[string]int64, error) {

	result := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	pipe := rs.Client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	// A missing key makes Exec return redis.Nil
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get counters; %w", err)
	}

	for i, cmd := range cmds {
		val, err := cmd.Int64()
		if err == redis.Nil {
			val = 0
		} else if err != nil {
			return nil, fmt.Errorf("failed to read counter '%s'; %w", keys[i], err)
		}
		result[keys[i]] = val
	}

	return result, nil
}
