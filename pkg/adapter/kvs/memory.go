package kvs

import (
	"context"
	"sync"
	"time"

	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/utils/clock"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// Memory is an in-process KeyValueStore for tests and development. Expiry is
// evaluated lazily on read against the context clock.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

var _ interfaces.KeyValueStore = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

func (x *Memory) Set(ctx context.Context, key, value string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries[key] = entry{value: value}
	return nil
}

func (x *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	x.mu.RLock()
	e, ok := x.entries[key]
	x.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !clock.Now(ctx).Before(e.expiresAt) {
		x.mu.Lock()
		// A Set may have replaced the entry between the read lock and here;
		// only drop it if it is still expired.
		if cur, ok := x.entries[key]; ok &&
			!cur.expiresAt.IsZero() && !clock.Now(ctx).Before(cur.expiresAt) {
			delete(x.entries, key)
		}
		x.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (x *Memory) Expire(ctx context.Context, key string, ttl time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	e, ok := x.entries[key]
	if !ok {
		return nil
	}
	e.expiresAt = clock.Now(ctx).Add(ttl)
	x.entries[key] = e
	return nil
}
