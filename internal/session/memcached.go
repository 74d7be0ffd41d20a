package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// maxRelativeExpiration is the longest expiration memcached reads as seconds from now.
// Larger values are taken as absolute Unix times.
const maxRelativeExpiration = 30 * 24 * time.Hour

// MemcachedStore keeps sessions in memcached.
//
// The memcache client has no context support, so ctx is only checked before each call.
type MemcachedStore struct {
	client *memcache.Client
}

// NewMemcachedStore creates a store backed by the memcached server at host:port.
func NewMemcachedStore(server string) *MemcachedStore {
	return &MemcachedStore{client: memcache.New(server)}
}

// Get returns the payload for id, or [ErrNotFound] on a cache miss.
func (m *MemcachedStore) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := m.client.Get(keyPrefix + id)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("memcached get: %w", err)
	}
	return item.Value, nil
}

// Set stores data under id for ttl. A non-positive ttl never expires.
func (m *MemcachedStore) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	item := &memcache.Item{Key: keyPrefix + id, Value: data, Expiration: expiration(ttl, time.Now())}
	if err := m.client.Set(item); err != nil {
		return fmt.Errorf("memcached set: %w", err)
	}
	return nil
}

// Delete removes id. Deleting a missing id is not an error.
func (m *MemcachedStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.client.Delete(keyPrefix + id); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("memcached delete: %w", err)
	}
	return nil
}

// expiration converts ttl to memcached's expiration field, switching to an absolute
// Unix time past [maxRelativeExpiration].
func expiration(ttl time.Duration, now time.Time) int32 {
	switch {
	case ttl <= 0:
		return 0
	case ttl > maxRelativeExpiration:
		return int32(now.Add(ttl).Unix())
	case ttl < time.Second:
		return 1
	default:
		return int32(ttl / time.Second)
	}
}
