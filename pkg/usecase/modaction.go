package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/model/event"
	"github.com/modwatch-lab/tattler/pkg/utils/logging"
)

// HandleModAction processes one moderation-action event end to end:
// validation, settings check, classification, fan-out and annotation. Only
// malformed events and configuration errors abort; everything downstream
// degrades gracefully.
func (x *UseCases) HandleModAction(ctx context.Context, ev *event.ModAction) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	s, err := x.settings.GetAll(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load settings", goerr.T(errs.TagConfig))
	}
	if err := s.Validate(); err != nil {
		return err
	}

	rec, err := x.classifier.Classify(ctx, ev)
	if err != nil {
		return err
	}
	if rec == nil {
		logging.From(ctx).Debug("Not admin activity",
			"action", ev.Action, "actor", ev.Moderator.Name)
		return nil
	}

	x.dispatcher.Dispatch(ctx, rec, s)

	if s.AddModNote {
		x.notes.Annotate(ctx, rec)
	}
	return nil
}
