package memory

import (
	"context"

	"erp-agent-nexus/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// KeyValueStore keeps slots in process memory. Values never expire.
type KeyValueStore struct {
	cache *cache.Cache
}

var _ contract.KeyValueStore = (*KeyValueStore)(nil)

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *KeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *KeyValueStore) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}
