package implementation

import (
	"context"
	"errors"

	"erp-agent-nexus/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisKeyValueStore struct {
	client *redis.Client
	prefix string
}

func NewRedisKeyValueStore(client *redis.Client, prefix string) contract.KeyValueStore {
	return &RedisKeyValueStore{client: client, prefix: prefix}
}

func (s *RedisKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores without expiry.
func (s *RedisKeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}
