package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose entries default to ttl and are swept every ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := ttl
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}
	return &MemoryStore{cache: cache.New(ttl, cleanup)}
}

// Get returns a copy of the payload for id, or [ErrNotFound].
func (m *MemoryStore) Get(_ context.Context, id string) ([]byte, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	data := v.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of data under id. A non-positive ttl uses the store default.
func (m *MemoryStore) Set(_ context.Context, id string, data []byte, ttl time.Duration) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.cache.Set(id, buf, ttl)
	return nil
}

// Delete removes id.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until swept.
func (m *MemoryStore) Len() int {
	return m.cache.ItemCount()
}
