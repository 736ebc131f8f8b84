package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shirshak001/JEWEL/config"
	"github.com/shirshak001/JEWEL/pkg/apperr"
	"github.com/shirshak001/JEWEL/pkg/metrics"
)

var RDB *redis.Client

// Connect initialises the Redis client and verifies the connection with a ping.
// Returns an error so the caller can react (log warning, fall back, or abort).
func Connect(ctx context.Context) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil // mark as unavailable: reads miss, writes fail
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Available reports whether Redis is reachable. Carts and admin sessions
// require it; the catalog merely degrades without it.
func Available() bool { return RDB != nil }

// Close releases the Redis client.
func Close() error {
	if RDB == nil {
		return nil
	}
	return RDB.Close()
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMiss(key)
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMiss(key)
		return false
	}

	metrics.CacheHit(key)
	return true
}

// Set stores value in Redis under key for the given TTL.
// A zero TTL stores the key without expiry. Writing with Redis down is an
// error; a write that silently vanishes would let callers hand out state
// (sessions, carts) that no later read can ever see.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return fmt.Errorf("cache: set %s: %w", key, apperr.ErrUnavailable)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys from Redis.
func Del(ctx context.Context, keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, keys...).Err()
}

// Forget is an alias for Del (Laravel-style).
func Forget(ctx context.Context, key string) error {
	return Del(ctx, key)
}
