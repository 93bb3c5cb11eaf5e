// Package cache stores encoded proxy responses, in process or in redis.
package cache

import "context"

// Store is a byte-valued cache with a store-wide TTL. Lookups never fail: an
// unreachable backend reads as a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}
