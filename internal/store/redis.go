package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix is prepended to the kind to form the Redis key.
const DefaultRedisKeyPrefix = "folio:"

// RedisBackend keeps each document as a string value under <prefix><kind>.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to redisURL and verifies the connection.
func NewRedisBackend(ctx context.Context, redisURL, keyPrefix string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewRedisBackendFromClient(client, keyPrefix), nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, keyPrefix string) *RedisBackend {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisBackend{client: client, prefix: keyPrefix}
}

// Key returns the Redis key that holds kind.
func (b *RedisBackend) Key(kind Kind) string {
	return b.prefix + string(kind)
}

// Read returns the stored document for kind.
func (b *RedisBackend) Read(ctx context.Context, kind Kind) ([]byte, error) {
	data, err := b.client.Get(ctx, b.Key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", kind, ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", kind, err)
	}
	return data, nil
}

// Write replaces the document for kind. Documents never expire.
func (b *RedisBackend) Write(ctx context.Context, kind Kind, data []byte) error {
	if err := b.client.Set(ctx, b.Key(kind), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", kind, err)
	}
	return nil
}

// Exists reports whether the key for kind is present.
func (b *RedisBackend) Exists(ctx context.Context, kind Kind) (bool, error) {
	n, err := b.client.Exists(ctx, b.Key(kind)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", kind, err)
	}
	return n > 0, nil
}

// Ping checks Redis connectivity.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
