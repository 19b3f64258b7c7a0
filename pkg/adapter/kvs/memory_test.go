package kvs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/modwatch-lab/tattler/pkg/adapter/kvs"
	"github.com/modwatch-lab/tattler/pkg/utils/clock"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := kvs.NewMemory()

	t.Run("set and get", func(t *testing.T) {
		gt.NoError(t, store.Set(ctx, "k1", "v1"))
		v, ok, err := store.Get(ctx, "k1")
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.Value(t, v).Equal("v1")
	})

	t.Run("missing key is absent, not an error", func(t *testing.T) {
		_, ok, err := store.Get(ctx, "nope")
		gt.NoError(t, err)
		gt.False(t, ok)
	})

	t.Run("overwrite wins", func(t *testing.T) {
		gt.NoError(t, store.Set(ctx, "k1", "v2"))
		v, ok, err := store.Get(ctx, "k1")
		gt.NoError(t, err)
		gt.True(t, ok)
		gt.Value(t, v).Equal("v2")
	})

	t.Run("read of an expired key never drops a concurrent overwrite", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		pinned := clock.With(ctx, func() time.Time { return now })

		for i := 0; i < 100; i++ {
			gt.NoError(t, store.Set(pinned, "race", "stale"))
			gt.NoError(t, store.Expire(pinned, "race", -time.Second))

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _, _ = store.Get(pinned, "race")
			}()
			go func() {
				defer wg.Done()
				_ = store.Set(pinned, "race", "fresh")
			}()
			wg.Wait()

			v, ok, err := store.Get(pinned, "race")
			gt.NoError(t, err)
			gt.True(t, ok)
			gt.Value(t, v).Equal("fresh")
		}
	})

	t.Run("expiry honors the context clock", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		ctx := clock.With(ctx, func() time.Time { return now })

		gt.NoError(t, store.Set(ctx, "ttl", "soon gone"))
		gt.NoError(t, store.Expire(ctx, "ttl", 14*24*time.Hour))

		_, ok, err := store.Get(ctx, "ttl")
		gt.NoError(t, err)
		gt.True(t, ok)

		later := clock.With(ctx, func() time.Time { return now.Add(14*24*time.Hour + time.Second) })
		_, ok, err = store.Get(later, "ttl")
		gt.NoError(t, err)
		gt.False(t, ok)
	})
}
