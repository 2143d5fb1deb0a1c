package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkarlovic/gitfolio/pkg/observability"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int
}

// RedisStore is a Redis-backed Store for production deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get returns the value for key, or ErrNotFound when absent.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		err = ErrNotFound
	}
	observability.Store().OnStoreRead(ctx, key, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value under key with no expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	err := s.client.Set(ctx, key, value, 0).Err()
	observability.Store().OnStoreWrite(ctx, key, err)
	return err
}

// SetTTL stores value under key, expiring after ttl.
func (s *RedisStore) SetTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	err := s.client.Set(ctx, key, value, ttl).Err()
	observability.Store().OnStoreWrite(ctx, key, err)
	return err
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
