// pkg/cache/cache.go
package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value      string
	expiration int64
}

// Store is an in-process TTL key-value store. It backs the session and
// verification-code caches when Redis is disabled, and the test suites.
type Store struct {
	items map[string]item
	mu    sync.RWMutex
}

func NewStore() *Store {
	store := &Store{
		items: make(map[string]item),
	}
	go store.startGC()
	return store
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = item{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, found := s.items[key]
	if !found {
		return "", false, nil
	}

	if time.Now().UnixNano() > it.expiration {
		return "", false, nil
	}

	return it.value, true, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, found, err := s.Get(ctx, key)
	return found, err
}

// CompareAndDelete removes the key only when its live value equals expected.
// The check and the delete happen under one lock.
func (s *Store) CompareAndDelete(ctx context.Context, key, expected string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, found := s.items[key]
	if !found || time.Now().UnixNano() > it.expiration {
		return false, nil
	}
	if it.value != expected {
		return false, nil
	}

	delete(s.items, key)
	return true, nil
}

func (s *Store) startGC() {
	ticker := time.NewTicker(time.Minute)
	for {
		<-ticker.C
		s.mu.Lock()
		for k, v := range s.items {
			if time.Now().UnixNano() > v.expiration {
				delete(s.items, k)
			}
		}
		s.mu.Unlock()
	}
}
