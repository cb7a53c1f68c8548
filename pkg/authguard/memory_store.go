package authguard

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory counter store with lazy expiry. Suitable for
// tests and single-process deployments.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
}

type counter struct {
	value     int64
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]*counter)}
}

func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c, ok := s.counters[key]
	if !ok || now.After(c.expiresAt) {
		c = &counter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}
	c.value++
	return c.value, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || time.Now().After(c.expiresAt) {
		return 0, nil
	}
	return c.value, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counters, key)
	return nil
}
