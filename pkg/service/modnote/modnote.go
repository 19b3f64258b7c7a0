package modnote

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/alert"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

const noteLabel = "ABUSE_WARNING"

// Service tags users actioned by admins with an internal mod note. A pure
// side effect: failure is logged, never propagated.
type Service struct {
	writer interfaces.NoteWriter
}

func New(writer interfaces.NoteWriter) *Service {
	return &Service{writer: writer}
}

// Eligible reports whether the record qualifies for a note: a content
// removal with a real target user.
func (x *Service) Eligible(rec *alert.Record) bool {
	return rec.Action.Removal() &&
		rec.TargetUser != "" &&
		rec.TargetUser != types.AutoModerator &&
		rec.TargetID != ""
}

// Annotate writes an abuse-warning note against the actioned content. The
// note text carries the bare display name, not the "u/"-prefixed form.
func (x *Service) Annotate(ctx context.Context, rec *alert.Record) {
	if !x.Eligible(rec) {
		return
	}

	text := rec.DisplayName + " Removal"
	if err := x.writer.AddNote(ctx, rec.Subreddit, rec.TargetUser, rec.TargetID, noteLabel, text); err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to add mod note",
			goerr.T(errs.TagProvider),
			goerr.V("user", rec.TargetUser),
			goerr.V("content", rec.TargetID),
		))
		return
	}

	logging.From(ctx).Info("Added mod note", "user", rec.TargetUser, "content", rec.TargetID)
}
