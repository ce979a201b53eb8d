// Package redisstorage persists session tokens in Redis, for deployments where
// the session outlives a single rendering process and must be shared across
// instances.
package redisstorage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/tipspace/go-auth-client/session"
)

var _ session.Storage = (*Storage)(nil)

// Storage is a Redis-backed session.Storage. Keys are namespaced per session
// owner so multiple clients can share one Redis instance.
type Storage struct {
	client *redis.Client
	prefix string
}

// New creates a Redis storage. prefix namespaces this client's keys and may be
// empty for single-tenant use.
func New(client *redis.Client, prefix string) (*Storage, error) {
	if client == nil {
		return nil, errors.New("[redisstorage.New] client is required")
	}
	return &Storage{client: client, prefix: prefix}, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrap(err, "[Storage.Set] redis set")
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[Storage.Get] redis get")
	}
	return value, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrap(err, "[Storage.Delete] redis del")
	}
	return nil
}

func (s *Storage) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
