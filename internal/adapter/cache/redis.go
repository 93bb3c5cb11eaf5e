package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a redis server, shared between proxy replicas.
// Keys are written as namespace:key.
type Redis struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
	logger    *slog.Logger
}

// NewRedisClient connects to a single redis node.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

// NewRedis wraps client as a Store.
func NewRedis(client redis.UniversalClient, namespace string, ttl time.Duration, logger *slog.Logger) *Redis {
	return &Redis{client: client, namespace: namespace, ttl: ttl, logger: logger}
}

func (r *Redis) key(k string) string { return r.namespace + ":" + k }

// Get returns the cached value. Redis errors are logged and read as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return b, true
}

// Set stores value with the store TTL. Failures are logged only.
func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		r.logger.Warn("redis cache set failed", "key", key, "error", err)
	}
}

// CheckReadiness pings redis.
func (r *Redis) CheckReadiness(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
