// Package containers spins up throwaway service containers for tests
package containers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/vlatan/transcript-relay/internal/config"
)

const redisImage = "redis:8.0.3"

// runRedis starts the container. Without a container runtime
// testcontainers panics instead of returning an error.
var runRedis = func(ctx context.Context) (*tcredis.RedisContainer, error) {
	return tcredis.Run(ctx, redisImage)
}

// SetupTestRedis starts a Redis container and points the Redis host
// and port of the supplied config at it. The returned func removes the container.
func SetupTestRedis(ctx context.Context, cfg *config.Config) (terminate func(), err error) {

	if cfg == nil {
		return nil, errors.New("unable to setup Redis container with nil config")
	}

	defer func() {
		if r := recover(); r != nil {
			terminate, err = nil, fmt.Errorf("container runtime unavailable: %v", r)
		}
	}()

	container, err := runRedis(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	terminate = func() {
		if err := container.Terminate(context.Background()); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}

	// i.e. redis://localhost:32768
	conn, err := container.ConnectionString(ctx)
	if err != nil {
		terminate()
		return nil, fmt.Errorf("failed to get container connection string: %w", err)
	}

	u, err := url.Parse(conn)
	if err != nil {
		terminate()
		return nil, fmt.Errorf("failed to parse connection string %q: %w", conn, err)
	}

	port, err := strconv.Atoi(u.Port())
	if err != nil {
		terminate()
		return nil, fmt.Errorf("invalid container port in %q: %w", conn, err)
	}

	cfg.RedisHost = u.Hostname()
	cfg.RedisPort = port

	return terminate, nil
}
