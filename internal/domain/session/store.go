// internal/domain/session/store.go
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(redis *redis.Client) *RedisStore {
	return &RedisStore{
		redis: redis,
	}
}

func storageKey(clientID, key string) string {
	return "storage:" + clientID + ":" + key
}

func (s *RedisStore) GetItem(ctx context.Context, clientID, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, storageKey(clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

// SetItem stores without expiry, like local storage.
func (s *RedisStore) SetItem(ctx context.Context, clientID, key, value string) error {
	if err := s.redis.Set(ctx, storageKey(clientID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) RemoveItem(ctx context.Context, clientID, key string) error {
	if err := s.redis.Del(ctx, storageKey(clientID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
