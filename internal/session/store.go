// package session keeps per-browser state behind a cookie in a process-external key/value store
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/muse/internal/shared"
)

// keyPrefix namespaces session keys in shared backends.
const keyPrefix = "muse:session:"

// ErrNotFound is returned by [Store.Get] when no value exists for the key.
var ErrNotFound = shared.ErrSessionNotFound

// Store persists opaque session payloads by id.
type Store interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Set(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// NewStore builds the backend named by cfg.Backend. Clients connect lazily.
func NewStore(cfg shared.SessionConfig) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", "memory":
		return NewMemoryStore(cfg.TTL()), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case "memcached":
		return NewMemcachedStore(cfg.MemcachedAddr), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}
