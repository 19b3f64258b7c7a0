package repository

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
	"github.com/modwatch-lab/tattler/pkg/domain/model/snapshot"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
)

// Snapshots is the short-lived content cache keyed by content fullname.
// Posts are stored JSON-encoded, comments as raw body text; both expire
// after the retention window. Writes never surface failure: caching must not
// block the event pipeline that produced the content.
type Snapshots struct {
	kv interfaces.KeyValueStore
}

func NewSnapshots(kv interfaces.KeyValueStore) *Snapshots {
	return &Snapshots{kv: kv}
}

func (x *Snapshots) put(ctx context.Context, id types.ContentID, value string) {
	if err := x.kv.Set(ctx, id.String(), value); err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to cache content", goerr.V("id", id)))
		return
	}
	if err := x.kv.Expire(ctx, id.String(), types.SnapshotTTL); err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to set snapshot expiry", goerr.V("id", id)))
	}
}

// PutPost snapshots a post's title, body and url. No-op for title-less
// payloads.
func (x *Snapshots) PutPost(ctx context.Context, post *event.Post) {
	if post == nil || post.Title == "" {
		return
	}
	data, err := json.Marshal(snapshot.Post{
		Title: post.Title,
		Body:  post.Selftext,
		URL:   post.URL,
	})
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to encode post snapshot", goerr.V("id", post.ID)))
		return
	}
	x.put(ctx, post.ID, string(data))
}

// PutComment snapshots a comment's body text.
func (x *Snapshots) PutComment(ctx context.Context, comment *event.Comment) {
	if comment == nil || comment.Body == "" {
		return
	}
	x.put(ctx, comment.ID, comment.Body)
}

// GetPost returns the cached post snapshot, or absent. Store failure is
// logged and reported as absent: recovery is best effort.
func (x *Snapshots) GetPost(ctx context.Context, id types.ContentID) (*snapshot.Post, bool) {
	raw, ok, err := x.kv.Get(ctx, id.String())
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to read post snapshot", goerr.V("id", id)))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var snap snapshot.Post
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to decode post snapshot", goerr.V("id", id)))
		return nil, false
	}
	return &snap, true
}

// GetComment returns the cached comment body, or absent.
func (x *Snapshots) GetComment(ctx context.Context, id types.ContentID) (string, bool) {
	raw, ok, err := x.kv.Get(ctx, id.String())
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to read comment snapshot", goerr.V("id", id)))
		return "", false
	}
	return raw, ok
}
