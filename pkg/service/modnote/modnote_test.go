package modnote_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/service/modnote"
)

type fakeNoteWriter struct {
	err   error
	calls []noteCall
}

type noteCall struct {
	subreddit string
	username  string
	contentID types.ContentID
	label     string
	text      string
}

func (x *fakeNoteWriter) AddNote(ctx context.Context, subreddit, username string, contentID types.ContentID, label, text string) error {
	x.calls = append(x.calls, noteCall{subreddit, username, contentID, label, text})
	return x.err
}

func removalRecord() *alert.Record {
	return &alert.Record{
		Action:      types.ActionRemoveLink,
		Actor:       types.AntiEvilOperations,
		DisplayName: types.AntiEvilOperations,
		Subreddit:   "golang",
		TargetID:    types.ContentID("t3_abc123"),
		TargetUser:  "bob",
	}
}

func TestEligible(t *testing.T) {
	svc := modnote.New(&fakeNoteWriter{})

	t.Run("removal with a target user qualifies", func(t *testing.T) {
		gt.True(t, svc.Eligible(removalRecord()))
	})

	t.Run("non-removal action does not qualify", func(t *testing.T) {
		rec := removalRecord()
		rec.Action = types.ActionAddModerator
		gt.False(t, svc.Eligible(rec))
	})

	t.Run("no target user", func(t *testing.T) {
		rec := removalRecord()
		rec.TargetUser = ""
		gt.False(t, svc.Eligible(rec))
	})

	t.Run("automoderator content is skipped", func(t *testing.T) {
		rec := removalRecord()
		rec.TargetUser = types.AutoModerator
		gt.False(t, svc.Eligible(rec))
	})

	t.Run("user-only action has no content to annotate", func(t *testing.T) {
		rec := removalRecord()
		rec.TargetID = ""
		gt.False(t, svc.Eligible(rec))
	})
}

func TestAnnotate(t *testing.T) {
	ctx := context.Background()

	t.Run("writes an abuse warning with the bare display name", func(t *testing.T) {
		writer := &fakeNoteWriter{}
		modnote.New(writer).Annotate(ctx, removalRecord())

		gt.A(t, writer.calls).Length(1)
		call := writer.calls[0]
		gt.Value(t, call.subreddit).Equal("golang")
		gt.Value(t, call.username).Equal("bob")
		gt.Value(t, call.contentID).Equal(types.ContentID("t3_abc123"))
		gt.Value(t, call.label).Equal("ABUSE_WARNING")
		gt.Value(t, call.text).Equal("Anti-Evil Operations Removal")
	})

	t.Run("ineligible record writes nothing", func(t *testing.T) {
		writer := &fakeNoteWriter{}
		rec := removalRecord()
		rec.TargetUser = ""
		modnote.New(writer).Annotate(ctx, rec)
		gt.A(t, writer.calls).Length(0)
	})

	t.Run("write failure does not panic or propagate", func(t *testing.T) {
		writer := &fakeNoteWriter{err: goerr.New("notes api down")}
		modnote.New(writer).Annotate(ctx, removalRecord())
		gt.A(t, writer.calls).Length(1)
	})
}
