// Package redis provides a Redis-backed key-value store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "alonix"

const dialTimeout = 3 * time.Second

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStorage implements storage.Store on a Redis server. Keys are stored
// under the "alonix:" namespace without expiry.
type RedisStorage struct {
	store cmdable
	raw   *redis.Client
}

// NewRedisStorage connects to addr (host:port or redis:// URL) and pings it.
func NewRedisStorage(addr string) (*RedisStorage, error) {
	opts, err := optionsFor(addr)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("redis storage: ping: %w", err)
	}
	return &RedisStorage{store: raw, raw: raw}, nil
}

func optionsFor(addr string) (*redis.Options, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redis storage: address is required")
	}
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis storage: parse url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr, DialTimeout: dialTimeout}, nil
}

// Key returns the namespaced Redis key for a store key.
func Key(key string) string {
	return keyNamespace + ":" + key
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.store.Get(ctx, Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis storage: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis storage: set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := s.store.Del(ctx, Key(key)).Err(); err != nil {
		return fmt.Errorf("redis storage: delete %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}

func (s *RedisStorage) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
