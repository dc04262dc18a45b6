// Package redis persists recent queries in Redis.
package redis

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch/recent"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by Storage.
const DefaultPrefix = "tripsearch:"

// Storage is a recent.Storage backed by Redis.
type Storage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ recent.Storage = (*Storage)(nil)

// Option configures a Storage.
type Option func(*Storage)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Storage) {
		s.prefix = prefix
	}
}

// WithTTL expires stored values after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Storage) {
		s.ttl = ttl
	}
}

// New connects to redisURL and verifies the connection.
func New(ctx context.Context, redisURL string, opts ...Option) (*Storage, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "connect to redis")
	}

	return NewWithClient(client, opts...), nil
}

// NewWithClient creates a Storage from an existing Redis client.
func NewWithClient(client *redis.Client, opts ...Option) *Storage {
	s := &Storage{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) key(key string) string {
	return s.prefix + key
}

// Get implements recent.Storage.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return value, true, nil
}

// Set implements recent.Storage.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

// Remove implements recent.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Storage) Close() error {
	return s.client.Close()
}
