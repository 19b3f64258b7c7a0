package interfaces

import (
	"context"
	"time"
)

// KeyValueStore is the content-addressed cache backing both the snapshot
// cache and the roster cache. Each operation may fail independently; callers
// must not let store failure break the triggering operation.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string) error
	// Get returns the stored value, or ok=false when the key is missing or
	// expired. Absence is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// NotificationTransport posts a serialized payload to a webhook endpoint.
type NotificationTransport interface {
	Post(ctx context.Context, url string, payload []byte) error
}
