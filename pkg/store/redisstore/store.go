// Package redisstore provides a Redis-backed store.KV so several processes
// can share one set of handler toggles.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/getmockd/mockswitch/pkg/store"
)

// Store implements store.KV with plain Redis strings.
type Store struct {
	client *redis.Client
	prefix string
	owned  bool
}

// Options configures a connection opened by Open.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, for sharing one database between
	// projects.
	Prefix string
}

// New wraps an existing client. The caller keeps ownership of client; Close
// does not close it.
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	return &Store{client: client, prefix: opts.Prefix, owned: true}, nil
}

// Key returns the Redis key used for key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Get implements store.KV.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", s.Key(key), err)
	}
	return v, true, nil
}

// Set implements store.KV. Values never expire.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(key), err)
	}
	return nil
}

// Close implements store.KV. Clients passed to New are left open.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}

var _ store.KV = (*Store)(nil)
