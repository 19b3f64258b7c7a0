package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/modwatch-lab/tattler/pkg/adapter/kvs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/repository"
	"github.com/modwatch-lab/tattler/pkg/utils/clock"
)

func TestSnapshotRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return now })
	snapshots := repository.NewSnapshots(kvs.NewMemory())

	post := &event.Post{
		ID:       types.ContentID("t3_abc123"),
		Title:    "Help needed",
		Selftext: "please help",
		URL:      "http://example.com/x",
	}
	snapshots.PutPost(ctx, post)

	t.Run("read back before expiry", func(t *testing.T) {
		snap, ok := snapshots.GetPost(ctx, post.ID)
		gt.True(t, ok)
		gt.Value(t, snap.Title).Equal("Help needed")
		gt.Value(t, snap.Body).Equal("please help")
		gt.Value(t, snap.URL).Equal("http://example.com/x")
	})

	t.Run("just inside the retention window", func(t *testing.T) {
		almost := clock.With(ctx, func() time.Time { return now.Add(types.SnapshotTTL - time.Minute) })
		_, ok := snapshots.GetPost(almost, post.ID)
		gt.True(t, ok)
	})

	t.Run("absent after expiry", func(t *testing.T) {
		expired := clock.With(ctx, func() time.Time { return now.Add(types.SnapshotTTL + time.Minute) })
		_, ok := snapshots.GetPost(expired, post.ID)
		gt.False(t, ok)
	})
}

func TestSnapshotComments(t *testing.T) {
	ctx := context.Background()
	snapshots := repository.NewSnapshots(kvs.NewMemory())

	snapshots.PutComment(ctx, &event.Comment{
		ID:   types.ContentID("t1_xyz789"),
		Body: "a fine comment",
	})

	body, ok := snapshots.GetComment(ctx, types.ContentID("t1_xyz789"))
	gt.True(t, ok)
	gt.Value(t, body).Equal("a fine comment")

	_, ok = snapshots.GetComment(ctx, types.ContentID("t1_missing"))
	gt.False(t, ok)
}

func TestSnapshotSkipsEmptyContent(t *testing.T) {
	ctx := context.Background()
	snapshots := repository.NewSnapshots(kvs.NewMemory())

	snapshots.PutPost(ctx, &event.Post{ID: types.ContentID("t3_none")})
	_, ok := snapshots.GetPost(ctx, types.ContentID("t3_none"))
	gt.False(t, ok)

	snapshots.PutComment(ctx, &event.Comment{ID: types.ContentID("t1_none")})
	_, ok2 := snapshots.GetComment(ctx, types.ContentID("t1_none"))
	gt.False(t, ok2)
}
